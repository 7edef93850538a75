package routes

import (
	"iter"
	"regexp"
	"slices"
	"strings"
)

// prefix made only of separators
var onlySlashesRe = regexp.MustCompile(`^/+$`)

// Flatten returns the full paths represented by a route forest, one per leaf
// route. The sequence is lazy and can be ranged over any number of times.
func Flatten(routes []*Route) iter.Seq[string] {
	return FlattenFunc(routes, nil)
}

// FlattenFunc is like Flatten but skips every route (and its subtree) for
// which keep returns false. A nil keep keeps everything.
func FlattenFunc(routes []*Route, keep func(*Route) bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		flatten(routes, "", keep, yield)
	}
}

// StaticPaths lists the concrete paths of a forest, skipping parameterized
// and catch-all routes. Useful for static generation.
func StaticPaths(routes []*Route) []string {
	return slices.Collect(FlattenFunc(routes, func(r *Route) bool {
		return !IsDynamic(r.Path)
	}))
}

func flatten(routes []*Route, prefix string, keep func(*Route) bool, yield func(string) bool) bool {
	for _, r := range routes {
		if keep != nil && !keep(r) {
			continue
		}

		if len(r.Children) > 0 {
			if prefix == "" && r.Path == "/" {
				if !yield("/") {
					return false
				}
			}
			if !flatten(r.Children, prefix+r.Path+"/", keep, yield) {
				return false
			}
			continue
		}

		p := onlySlashesRe.ReplaceAllString(prefix, "/")
		if r.Path == "" && strings.HasSuffix(p, "/") {
			p = p[:len(p)-1]
		}
		full := p + r.Path
		if full == "" {
			// index child of the root branch, already yielded as "/"
			continue
		}
		if !yield(full) {
			return false
		}
	}
	return true
}
