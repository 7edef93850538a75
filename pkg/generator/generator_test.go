package generator

import (
	"context"
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/abdul-hamid-achik/pagetree/internal/version"
	"github.com/abdul-hamid-achik/pagetree/pkg/routes"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func sampleRoutes() []*routes.Route {
	return []*routes.Route{
		{Path: "/", Component: "/src/pages/index.vue", ChunkName: "pages/index"},
		{
			Path:      "/users",
			Component: "/src/pages/users.vue",
			ChunkName: "pages/users",
			Children: []*routes.Route{
				{Name: "users", Path: "", Component: "/src/pages/users/index.vue", ChunkName: "pages/users/index"},
				{Name: "users-id", Path: ":id", Component: "/src/pages/users/_id.vue", ChunkName: "pages/users/_id"},
			},
		},
		{Name: "all", Path: "/*", Component: "/src/pages/_.vue", ChunkName: "pages/_"},
	}
}

func compile(t *testing.T, files ...string) []*routes.Route {
	t.Helper()
	rs, err := routes.Compile(files, routes.Options{
		SrcDir:   "/src",
		PagesDir: "pages",
		Resolve:  func(base, rel string) string { return base + "/" + rel },
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return rs
}

func TestNewGenerator_Format(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"", false},
		{"json", false},
		{"YAML", false},
		{"js", false},
		{"openapi", false},
		{"xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			_, err := NewGenerator(Config{Format: tt.format})
			if (err != nil) != tt.wantErr {
				t.Errorf("NewGenerator(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestGenerate_JSON(t *testing.T) {
	g, err := NewGenerator(Config{Format: "json"})
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}

	result, err := g.Generate(sampleRoutes())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(result.Files) != 0 {
		t.Errorf("Files = %v, want none without Output", result.Files)
	}
	if result.Routes != 5 {
		t.Errorf("Routes = %d, want 5", result.Routes)
	}

	var m Manifest
	if err := json.Unmarshal(result.Data, &m); err != nil {
		t.Fatalf("Failed to decode manifest: %v", err)
	}
	if m.SchemaVersion != version.ManifestSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", m.SchemaVersion, version.ManifestSchemaVersion)
	}
	if diff := cmp.Diff(sampleRoutes(), m.Routes); diff != "" {
		t.Errorf("Routes mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(result.Data), `"chunkName": "pages/users/_id"`) {
		t.Error("JSON manifest should use chunkName")
	}
}

func TestGenerate_EmptyForest(t *testing.T) {
	g, _ := NewGenerator(Config{Format: "json"})

	result, err := g.Generate(nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(string(result.Data), `"routes": []`) {
		t.Errorf("Data = %s, want an empty routes array", result.Data)
	}
}

func TestGenerate_YAML(t *testing.T) {
	g, _ := NewGenerator(Config{Format: "yaml"})

	result, err := g.Generate(sampleRoutes())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(result.Data, &m); err != nil {
		t.Fatalf("Failed to decode manifest: %v", err)
	}
	if diff := cmp.Diff(sampleRoutes(), m.Routes); diff != "" {
		t.Errorf("Routes mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_JS(t *testing.T) {
	g, _ := NewGenerator(Config{Format: "js"})

	result, err := g.Generate(sampleRoutes())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	content := string(result.Data)

	want := []string{
		"DO NOT EDIT",
		"export const schemaVersion = 1",
		"export const routes = [",
		`  {
    path: "/",
    component: () => import(/* webpackChunkName: "pages/index" */ "/src/pages/index.vue"),
  },`,
		`    children: [
      {
        path: "",
        component: () => import(/* webpackChunkName: "pages/users/index" */ "/src/pages/users/index.vue"),
        name: "users",
      },`,
		`path: ":id",`,
		`name: "all",`,
	}
	for _, s := range want {
		if !strings.Contains(content, s) {
			t.Errorf("Router module missing %q\n%s", s, content)
		}
	}

	// the root index and the wrapper have no name
	if strings.Count(content, "name:") != 3 {
		t.Errorf("Expected 3 named routes, got %d", strings.Count(content, "name:"))
	}
}

func TestGenerate_JSStrict(t *testing.T) {
	g, _ := NewGenerator(Config{Format: "js"})

	rs := []*routes.Route{{Name: "about", Path: "/about/", Strict: true}}
	result, err := g.Generate(rs)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(string(result.Data), "pathToRegexpOptions: { strict: true }") {
		t.Errorf("Strict route should set pathToRegexpOptions\n%s", result.Data)
	}
	if strings.Contains(string(result.Data), "component:") {
		t.Error("Route without component should not import one")
	}
}

func TestGenerate_WritesOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), ".pagetree", "routes.json")
	g, _ := NewGenerator(Config{Format: "json", Output: out})

	result, err := g.Generate(sampleRoutes())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if diff := cmp.Diff([]string{out}, result.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(data) != string(result.Data) {
		t.Error("Written file should match rendered data")
	}
}

func TestOpenAPI(t *testing.T) {
	rs := compile(t, "pages/index.vue", "pages/users/_id.vue", "pages/_.vue")
	g, _ := NewGenerator(Config{Format: "openapi", Title: "Shop"})

	doc := g.OpenAPI(rs)

	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if doc.Info.Title != "Shop" {
		t.Errorf("Title = %q, want Shop", doc.Info.Title)
	}

	got := slices.Sorted(maps.Keys(doc.Paths.Map()))
	want := []string{"/", "/users", "/users/{id}", "/{pathMatch}"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Paths mismatch (-want +got):\n%s", diff)
	}

	op := doc.Paths.Value("/users/{id}").Get
	if len(op.Parameters) != 1 || op.Parameters[0].Value.Name != "id" {
		t.Errorf("Parameters = %+v, want id", op.Parameters)
	}
	if op.Tags[0] != "users" {
		t.Errorf("Tags = %v, want [users]", op.Tags)
	}
	if doc.Paths.Value("/").Get.Parameters != nil {
		t.Error("Root path should have no parameters")
	}
}

func TestGenerate_OpenAPIFormats(t *testing.T) {
	dir := t.TempDir()
	rs := compile(t, "pages/about.vue")

	jsonOut := filepath.Join(dir, "openapi.json")
	g, _ := NewGenerator(Config{Format: "openapi", Output: jsonOut})
	result, err := g.Generate(rs)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(string(result.Data), `"openapi": "3.0.3"`) {
		t.Errorf("Expected JSON document, got:\n%s", result.Data)
	}

	yamlOut := filepath.Join(dir, "openapi.yaml")
	g, _ = NewGenerator(Config{Format: "openapi", Output: yamlOut})
	result, err = g.Generate(rs)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(string(result.Data), "openapi: 3.0.3") {
		t.Errorf("Expected YAML document, got:\n%s", result.Data)
	}
}

func TestExpandOptional(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"/"}},
		{"/about", []string{"/about"}},
		{"/users/:id", []string{"/users/:id"}},
		{"/users/:id?", []string{"/users", "/users/:id"}},
		{"/:a?/:b?", []string{"/", "/:a", "/:b", "/:a/:b"}},
		{"/users/:id?/", []string{"/users/", "/users/:id/"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, expandOptional(tt.path)); diff != "" {
				t.Errorf("expandOptional(%q) mismatch (-want +got):\n%s", tt.path, diff)
			}
		})
	}
}

func TestToOpenAPIPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"/users/:id", "/users/{id}"},
		{"/docs/*", "/docs/{pathMatch}"},
		{"/blog/:slug/comments", "/blog/{slug}/comments"},
	}

	for _, tt := range tests {
		if got := toOpenAPIPath(tt.path); got != tt.want {
			t.Errorf("toOpenAPIPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestExtractTag(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "default"},
		{"/users/{id}", "users"},
		{"/{pathMatch}", "default"},
	}

	for _, tt := range tests {
		if got := extractTag(tt.path); got != tt.want {
			t.Errorf("extractTag(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
