package routes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func TestCompareRoutes(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "/about", -1},
		{"/about", "", 1},
		{"/", "/about", -1},
		{"/about", "/", 1},
		{"/", "/:id?", -1},
		{"/about", "/:id?", -1},
		{"/:id?", "/*", -1},
		{"/*", "/about", 1},
		{"/about", "/users", -1},
		{"/users", "/users/:id", -1},
		{"/users/:id", "/users", 1},
		{"/users/:id", "/users/*", -1},
		{"/a/b", "/a/b/c", -1},
		{"/a/*", "/a/b/c", 1},
		{"/users/new", "/users/:id", -1},
		{"/about", "/about", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			got := sign(CompareRoutes(&Route{Path: tt.a}, &Route{Path: tt.b}))
			if got != tt.want {
				t.Errorf("CompareRoutes(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSortRoutes(t *testing.T) {
	routes := []*Route{
		{Path: "/*"},
		{Path: "/users/:id?"},
		{Path: "/:slug?"},
		{Path: "/users"},
		{Path: "/about"},
		{Path: "/"},
	}

	SortRoutes(routes)

	var got []string
	for _, r := range routes {
		got = append(got, r.Path)
	}
	want := []string{"/", "/about", "/users", "/users/:id?", "/:slug?", "/*"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortRoutes() mismatch (-want +got):\n%s", diff)
	}
}

func TestSortRoutes_Stable(t *testing.T) {
	a := &Route{Name: "a", Path: ""}
	b := &Route{Name: "b", Path: ""}
	routes := []*Route{a, b}

	SortRoutes(routes)

	if routes[0] != a || routes[1] != b {
		t.Error("SortRoutes() reordered routes that compare equal")
	}
}

func TestIsDynamic(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/about", false},
		{"", false},
		{"/users/:id", true},
		{":id?", true},
		{"/*", true},
	}

	for _, tt := range tests {
		if got := IsDynamic(tt.path); got != tt.want {
			t.Errorf("IsDynamic(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
