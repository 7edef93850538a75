// Package routes compiles a flat list of page files into the nested, ordered
// route tree consumed by a client-side router, and flattens such a tree back
// into canonical route strings.
//
// Page file naming follows the underscore convention:
//
//	pages/index.vue            -> /
//	pages/users/_id.vue        -> /users/:id?
//	pages/users/_id/edit.vue   -> /users/:id/edit
//	pages/_.vue                -> /*
package routes

import (
	"path"
	"path/filepath"
	"strings"
)

// SegmentType represents the routing role of a path token.
type SegmentType int

const (
	// SegmentStatic is a literal path component (e.g., "users")
	SegmentStatic SegmentType = iota
	// SegmentDynamic is a required parameter (e.g., _id -> :id)
	SegmentDynamic
	// SegmentOptionalDynamic is an optional parameter (e.g., :id?)
	SegmentOptionalDynamic
	// SegmentCatchAll is the rest-of-path wildcard (_ -> *)
	SegmentCatchAll
	// SegmentIndex is a token literally named "index"
	SegmentIndex
)

// String returns a short name for the segment type.
func (t SegmentType) String() string {
	switch t {
	case SegmentStatic:
		return "static"
	case SegmentDynamic:
		return "dynamic"
	case SegmentOptionalDynamic:
		return "optional"
	case SegmentCatchAll:
		return "catch-all"
	case SegmentIndex:
		return "index"
	}
	return "unknown"
}

// Segment is one classified token of a page file path.
type Segment struct {
	// Raw is the token as it appears in the file path (e.g., "_id")
	Raw string
	// Name is the token with the dynamic sigil removed (e.g., "id")
	Name string
	// Type is the routing role
	Type SegmentType
}

// NameText returns the text this segment contributes to a route name.
func (s Segment) NameText() string {
	if s.Type == SegmentCatchAll {
		return s.Name + "all"
	}
	return s.Name
}

// Pattern returns the router-pattern token for this segment, without the
// leading separator. Dynamic segments are emitted optional; the collapser
// decides whether the marker survives.
func (s Segment) Pattern() string {
	switch s.Type {
	case SegmentCatchAll:
		return "*"
	case SegmentDynamic, SegmentOptionalDynamic:
		return ":" + s.Name + "?"
	}
	return s.Raw
}

// FileEntry is one input page file with its derived segments.
type FileEntry struct {
	// File is the page path as supplied (e.g., "pages/users/_id.vue")
	File string
	// Component is the resolved absolute path of the page module
	Component string
	// Segments are the classified path tokens
	Segments []Segment
}

// Route is a node of the compiled route tree.
type Route struct {
	// Name is unique among siblings; empty on pass-through wrappers.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Path is the router pattern relative to the parent route.
	Path string `json:"path" yaml:"path"`
	// Component is the page module this route renders.
	Component string `json:"component,omitempty" yaml:"component,omitempty"`
	// ChunkName groups the page for the bundler; carried through unchanged.
	ChunkName string `json:"chunkName,omitempty" yaml:"chunkName,omitempty"`
	// Strict is set when trailing slashes are significant.
	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty"`
	// Children are ordered by matching specificity.
	Children []*Route `json:"children,omitempty" yaml:"children,omitempty"`
}

// Resolver turns a page path relative to base into an absolute path.
type Resolver func(base, rel string) string

// Options configures tokenization and tree building.
type Options struct {
	// SrcDir is the base used to resolve each route's Component.
	SrcDir string
	// PagesDir is the prefix every input path must start with. Empty means
	// inputs are already relative to the pages root.
	PagesDir string
	// Extensions are the recognized page extensions, without dots.
	Extensions []string
	// NameSplitter joins segment texts into route names (default "-").
	NameSplitter string
	// TrailingSlash, when set, normalizes every path to end with (true) or
	// without (false) a slash and marks routes Strict.
	TrailingSlash *bool
	// Resolve builds Component paths (default DefaultResolver).
	Resolve Resolver
}

// DefaultExtensions are the page extensions recognized when none are set.
var DefaultExtensions = []string{"vue", "js"}

// DefaultOptions returns the options a project starts from when its config
// leaves them unset.
func DefaultOptions() Options {
	return Options{
		SrcDir:       ".",
		PagesDir:     "pages",
		Extensions:   DefaultExtensions,
		NameSplitter: "-",
		Resolve:      DefaultResolver,
	}
}

func (o Options) withDefaults() Options {
	if len(o.Extensions) == 0 {
		o.Extensions = DefaultExtensions
	}
	if o.NameSplitter == "" {
		o.NameSplitter = "-"
	}
	if o.Resolve == nil {
		o.Resolve = DefaultResolver
	}
	o.PagesDir = strings.Trim(filepath.ToSlash(o.PagesDir), "/")
	if o.PagesDir != "" {
		o.PagesDir = path.Clean(o.PagesDir)
		if o.PagesDir == "." {
			o.PagesDir = ""
		}
	}
	return o
}

// Walk calls fn for every route in the forest, parents before children.
// Returning false from fn skips that route's children.
func Walk(routes []*Route, fn func(r *Route, depth int) bool) {
	walk(routes, 0, fn)
}

func walk(routes []*Route, depth int, fn func(*Route, int) bool) {
	for _, r := range routes {
		if fn(r, depth) {
			walk(r.Children, depth+1, fn)
		}
	}
}

// Count returns the number of routes in the forest.
func Count(routes []*Route) int {
	n := 0
	Walk(routes, func(*Route, int) bool {
		n++
		return true
	})
	return n
}
