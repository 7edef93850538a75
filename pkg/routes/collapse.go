package routes

import (
	"slices"
	"strings"
)

const indexKey = "index"

// Collapse finalizes a built forest in place and returns it:
//
//   - optional markers are removed from parameters that sit at the same
//     depth as an index page of the same branch, making them required;
//   - the index suffix is stripped from route names, and a root "index"
//     loses its name entirely;
//   - a route with a child on the empty sub-path loses its own name;
//   - children get paths relative to their parent (no leading separator).
//
// nested is false for the forest roots.
func Collapse(routes []*Route, nested bool, splitter string) []*Route {
	indexSuffix := splitter + indexKey

	// anchor is the smallest position of "index" across indexed names
	anchor := -1
	var indexed [][]string
	for _, r := range routes {
		if r.Name != indexKey && !strings.HasSuffix(r.Name, indexSuffix) {
			continue
		}
		parts := strings.Split(r.Name, splitter)
		pos := slices.Index(parts, indexKey)
		if anchor == -1 || pos < anchor {
			anchor = pos
		}
		indexed = append(indexed, parts)
	}

	for _, r := range routes {
		if nested {
			r.Path = strings.Replace(r.Path, "/", "", 1)
		}

		if strings.Contains(r.Path, "?") {
			r.Path = bindOptional(r, nested, splitter, indexed, anchor)
		}

		if r.Name == indexKey {
			r.Name = ""
		} else {
			r.Name = strings.TrimSuffix(r.Name, indexSuffix)
		}

		if len(r.Children) > 0 {
			if slices.ContainsFunc(r.Children, func(c *Route) bool { return c.Path == "" }) {
				r.Name = ""
			}
			r.Children = Collapse(r.Children, true, splitter)
		}
	}

	return routes
}

// bindOptional strips the optional marker from the path token each indexed
// sibling points at, relative to the anchor. The walk towards that token
// stops early as soon as the route's name diverges from the indexed name.
func bindOptional(r *Route, nested bool, splitter string, indexed [][]string, anchor int) string {
	names := strings.Split(r.Name, splitter)
	paths := strings.Split(r.Path, "/")
	if !nested {
		paths = paths[1:]
	}

	for _, idx := range indexed {
		i := slices.Index(idx, indexKey) - anchor
		if i >= len(paths) {
			continue
		}
		for a := 0; a <= i; a++ {
			if a == i {
				paths[a] = strings.Replace(paths[a], "?", "", 1)
			}
			if a < i && tokenAt(names, a) != idx[a] {
				break
			}
		}
	}

	if nested {
		return strings.Join(paths, "/")
	}
	return "/" + strings.Join(paths, "/")
}
