package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writePages creates empty files below dir.
func writePages(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(p, []byte("<template></template>\n"), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", f, err)
		}
	}
}

func TestScan_MissingPagesDir(t *testing.T) {
	result, err := NewScanner(t.TempDir(), "pages").Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(result.Files) != 0 {
		t.Errorf("Files = %v, want empty", result.Files)
	}
}

func TestScan_CollectsPages(t *testing.T) {
	dir := t.TempDir()
	writePages(t, dir,
		"pages/index.vue",
		"pages/users/_id.vue",
		"pages/users/index.js",
		"pages/about.vue",
		"pages/README.md",
		"pages/.hidden.vue",
		"pages/node_modules/pkg/index.vue",
		"pages/.cache/page.vue",
	)

	result, err := NewScanner(dir, "pages").Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := []string{
		"pages/about.vue",
		"pages/index.vue",
		"pages/users/_id.vue",
		"pages/users/index.js",
	}
	if diff := cmp.Diff(want, result.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1 (README.md)", result.Skipped)
	}
}

func TestScan_Extensions(t *testing.T) {
	dir := t.TempDir()
	writePages(t, dir, "pages/a.tsx", "pages/b.vue")

	s := NewScanner(dir, "pages")
	s.SetExtensions([]string{"tsx"})
	result, err := s.Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if diff := cmp.Diff([]string{"pages/a.tsx"}, result.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_Ignore(t *testing.T) {
	dir := t.TempDir()
	writePages(t, dir,
		"pages/about.vue",
		"pages/about.spec.js",
		"pages/drafts/post.vue",
		"pages/drafts/deep/post.vue",
	)

	s := NewScanner(dir, "pages")
	s.SetIgnore([]string{"**/*.spec.js", "drafts/**"})
	result, err := s.Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if diff := cmp.Diff([]string{"pages/about.vue"}, result.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_EmptyPagesDir(t *testing.T) {
	dir := t.TempDir()
	writePages(t, dir, "about.vue")

	result, err := NewScanner(dir, ".").Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if diff := cmp.Diff([]string{"about.vue"}, result.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_Conflicts(t *testing.T) {
	dir := t.TempDir()
	writePages(t, dir,
		"pages/users/_id.vue",
		"pages/users/_slug.vue",
		"pages/about.vue",
		"pages/about.js",
		"pages/blog.vue",
		"pages/blog/index.vue",
	)

	result, err := NewScanner(dir, "pages").Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(result.Conflicts) != 2 {
		t.Fatalf("Conflicts = %+v, want 2", result.Conflicts)
	}

	patterns := map[string]bool{}
	for _, c := range result.Conflicts {
		patterns[c.Pattern] = true
	}
	if !patterns["/about"] || !patterns["/users/:"] {
		t.Errorf("Conflict patterns = %v, want /about and /users/:", patterns)
	}
}

func TestScan_Warnings(t *testing.T) {
	dir := t.TempDir()
	writePages(t, dir,
		"pages/_/extra.vue",
		"pages/posts/_1st.vue",
	)

	result, err := NewScanner(dir, "pages").Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(result.Warnings) != 2 {
		t.Fatalf("Warnings = %+v, want 2", result.Warnings)
	}
}

func TestIsPrivateFolder(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".git", true},
		{".nuxt", true},
		{"node_modules", true},
		{"users", false},
		{"_id", false},
		{"_", false},
	}

	for _, tt := range tests {
		if got := IsPrivateFolder(tt.name); got != tt.want {
			t.Errorf("IsPrivateFolder(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestURLShape(t *testing.T) {
	tests := []struct {
		stem string
		want string
	}{
		{"index", "/"},
		{"users/index", "/users"},
		{"users/_id", "/users/:"},
		{"users/_id/edit", "/users/:/edit"},
		{"_", "/*"},
		{"index/about", "/index/about"},
	}

	for _, tt := range tests {
		if got := urlShape(tt.stem); got != tt.want {
			t.Errorf("urlShape(%q) = %q, want %q", tt.stem, got, tt.want)
		}
	}
}
