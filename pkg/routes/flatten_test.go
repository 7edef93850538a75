package routes

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleForest() []*Route {
	return []*Route{
		{Path: "/"},
		{Path: "/users", Children: []*Route{
			{Name: "users", Path: ""},
			{Name: "users-id", Path: ":id", Children: []*Route{
				{Name: "users-id-edit", Path: "edit"},
			}},
		}},
		{Name: "about", Path: "/about"},
		{Name: "all", Path: "/*"},
	}
}

func TestFlatten(t *testing.T) {
	got := slices.Collect(Flatten(sampleForest()))
	want := []string{"/", "/users", "/users/:id/edit", "/about", "/*"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_Restartable(t *testing.T) {
	seq := Flatten(sampleForest())
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second walk differs (-first +second):\n%s", diff)
	}
}

func TestFlatten_EarlyStop(t *testing.T) {
	var got []string
	for p := range Flatten(sampleForest()) {
		got = append(got, p)
		if len(got) == 2 {
			break
		}
	}
	if diff := cmp.Diff([]string{"/", "/users"}, got); diff != "" {
		t.Errorf("early stop mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_RootBranch(t *testing.T) {
	routes := []*Route{
		{Path: "/", Children: []*Route{
			{Name: "index", Path: ""},
			{Name: "faq", Path: "faq"},
		}},
	}

	got := slices.Collect(Flatten(routes))
	want := []string{"/", "/faq"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_RootIndexDirectory(t *testing.T) {
	routes, err := Compile([]string{
		"pages/index.vue",
		"pages/index/index.vue",
		"pages/index/faq.vue",
	}, Options{PagesDir: "pages"})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	got := slices.Collect(Flatten(routes))
	want := []string{"/", "/faq"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
	}
	for _, p := range got {
		if !strings.HasPrefix(p, "/") {
			t.Errorf("Flatten() yielded non-canonical path %q", p)
		}
	}
}

func TestStaticPaths(t *testing.T) {
	got := StaticPaths(sampleForest())
	want := []string{"/", "/users", "/about"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("StaticPaths() mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenFunc_Empty(t *testing.T) {
	if got := slices.Collect(Flatten(nil)); len(got) != 0 {
		t.Errorf("Flatten(nil) = %v, want empty", got)
	}
}
