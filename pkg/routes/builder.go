package routes

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Builder folds page files into a route forest. Files sharing a name prefix
// with an existing route are merged under it, so a parent page must be added
// before the pages nested below it. Compile takes care of that ordering.
type Builder struct {
	opts   Options
	routes []*Route
	sorter *sorter

	// names indexes each sibling list by route name; the nil key holds roots.
	names map[*Route]map[string]*Route
}

// NewBuilder creates a Builder with the given options.
func NewBuilder(opts Options) *Builder {
	return &Builder{
		opts:   opts.withDefaults(),
		sorter: newSorter(),
		names:  make(map[*Route]map[string]*Route),
	}
}

// Add tokenizes file and inserts it into the forest.
func (b *Builder) Add(file string) error {
	segments, err := Tokenize(file, b.opts)
	if err != nil {
		return err
	}
	b.insert(FileEntry{
		File:      file,
		Component: b.opts.Resolve(b.opts.SrcDir, file),
		Segments:  segments,
	})
	return nil
}

func (b *Builder) insert(entry FileEntry) {
	route := &Route{
		Component: entry.Component,
		ChunkName: b.opts.chunkName(entry.File),
	}

	var parent *Route
	last := len(entry.Segments) - 1

	for i, seg := range entry.Segments {
		if route.Name == "" {
			route.Name = seg.NameText()
		} else {
			route.Name += b.opts.NameSplitter + seg.NameText()
		}

		if child := b.lookup(parent, route.Name); child != nil {
			parent = child
			route.Path = ""
			continue
		}

		if seg.Type == SegmentIndex && i == last {
			if i == 0 {
				route.Path += "/"
			}
			continue
		}
		route.Path += "/" + seg.Pattern()
	}

	b.attach(parent, route)
}

func (b *Builder) lookup(parent *Route, name string) *Route {
	return b.names[parent][name]
}

// attach appends route to parent's children (or the roots) and re-sorts the
// whole sibling list.
func (b *Builder) attach(parent *Route, route *Route) {
	if parent == nil {
		b.routes = append(b.routes, route)
		b.sorter.sort(b.routes)
	} else {
		parent.Children = append(parent.Children, route)
		b.sorter.sort(parent.Children)
	}

	index, ok := b.names[parent]
	if !ok {
		index = make(map[string]*Route)
		b.names[parent] = index
	}
	if _, taken := index[route.Name]; !taken {
		index[route.Name] = route
	}
}

// Tree returns the forest as built so far, before index collapsing.
func (b *Builder) Tree() []*Route {
	return b.routes
}

// Build runs the index collapser over the forest and applies the trailing
// slash policy. The builder must not be used afterwards.
func (b *Builder) Build() []*Route {
	routes := Collapse(b.routes, false, b.opts.NameSplitter)
	if b.opts.TrailingSlash != nil {
		applyTrailingSlash(routes, *b.opts.TrailingSlash, false)
	}
	b.names = nil
	return routes
}

func applyTrailingSlash(routes []*Route, trailing, nested bool) {
	for _, r := range routes {
		r.Strict = true
		if r.Path != "" || !nested {
			p := strings.TrimRight(r.Path, "/")
			if trailing && p != "" {
				p += "/"
			}
			if p == "" && !nested {
				p = "/"
			}
			r.Path = p
		}
		applyTrailingSlash(r.Children, trailing, true)
	}
}

// Compile builds the route forest for a set of page files. Every path is
// validated first; the first violation is returned and nothing is built.
// The result depends only on the set of files, not on their order.
func Compile(files []string, opts Options) ([]*Route, error) {
	opts = opts.withDefaults()

	for _, f := range files {
		if err := Validate(f, opts); err != nil {
			return nil, err
		}
	}

	ordered := lo.Uniq(lo.Map(files, func(f string, _ int) string {
		return multiSlashRe.ReplaceAllString(filepath.ToSlash(f), "/")
	}))
	// Lexical order puts "users.vue" before "users/..." so parents exist
	// before their children are merged in.
	slices.Sort(ordered)

	b := NewBuilder(opts)
	for _, f := range ordered {
		if err := b.Add(f); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}
