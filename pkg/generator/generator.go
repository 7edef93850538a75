// Package generator renders compiled route trees into manifest files and
// scaffolds new page files.
package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/abdul-hamid-achik/pagetree/internal/version"
	"github.com/abdul-hamid-achik/pagetree/pkg/routes"
	"gopkg.in/yaml.v3"
)

// Formats lists the supported manifest formats.
var Formats = []string{"json", "yaml", "js", "openapi"}

// Config holds configuration for manifest generation.
type Config struct {
	Format string // Manifest format (json, yaml, js, openapi)
	Output string // File to write; empty keeps the manifest in memory
	Title  string // OpenAPI document title (default: "Pages")
}

// Result holds the result of a generation operation.
type Result struct {
	Files   []string `json:"files"`
	Format  string   `json:"format,omitempty"`
	Routes  int      `json:"routes,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	// Data is the rendered manifest
	Data []byte `json:"-"`
}

// Manifest is the document written for the json and yaml formats.
type Manifest struct {
	SchemaVersion int             `json:"schemaVersion" yaml:"schemaVersion"`
	Generator     string          `json:"generator" yaml:"generator"`
	Routes        []*routes.Route `json:"routes" yaml:"routes"`
}

// Generator renders route trees.
type Generator struct {
	config Config
}

// NewGenerator creates a new Generator.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.Format == "" {
		cfg.Format = "json"
	}
	if cfg.Title == "" {
		cfg.Title = "Pages"
	}
	cfg.Format = strings.ToLower(cfg.Format)

	switch cfg.Format {
	case "json", "yaml", "js", "openapi":
	default:
		return nil, fmt.Errorf("unsupported format: %s (use json, yaml, js or openapi)", cfg.Format)
	}
	return &Generator{config: cfg}, nil
}

// Generate renders the route forest and writes it to the configured output.
func (g *Generator) Generate(rs []*routes.Route) (*Result, error) {
	data, err := g.Render(rs)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files:  []string{},
		Format: g.config.Format,
		Routes: routes.Count(rs),
		Data:   data,
	}

	if g.config.Output == "" {
		return result, nil
	}

	if err := os.MkdirAll(filepath.Dir(g.config.Output), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(g.config.Output, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", g.config.Output, err)
	}
	result.Files = append(result.Files, g.config.Output)

	return result, nil
}

// Render returns the manifest bytes without touching the filesystem.
func (g *Generator) Render(rs []*routes.Route) ([]byte, error) {
	if rs == nil {
		rs = []*routes.Route{}
	}

	switch g.config.Format {
	case "yaml":
		return yaml.Marshal(newManifest(rs))
	case "js":
		return renderJS(rs)
	case "openapi":
		doc := g.OpenAPI(rs)
		if ext := strings.ToLower(filepath.Ext(g.config.Output)); ext == ".yaml" || ext == ".yml" {
			return yaml.Marshal(doc)
		}
		return marshalJSON(doc)
	}
	return marshalJSON(newManifest(rs))
}

func newManifest(rs []*routes.Route) Manifest {
	return Manifest{
		SchemaVersion: version.ManifestSchemaVersion,
		Generator:     "pagetree " + version.GetVersion(),
		Routes:        rs,
	}
}

func marshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// jsRoute is a route prepared for the router module template.
type jsRoute struct {
	Indent    string
	Name      string
	Path      string
	Component string
	ChunkName string
	Strict    bool
	Children  []jsRoute
}

func toJSRoutes(rs []*routes.Route, indent string) []jsRoute {
	out := make([]jsRoute, 0, len(rs))
	for _, r := range rs {
		out = append(out, jsRoute{
			Indent:    indent,
			Name:      r.Name,
			Path:      r.Path,
			Component: r.Component,
			ChunkName: r.ChunkName,
			Strict:    r.Strict,
			Children:  toJSRoutes(r.Children, indent+"    "),
		})
	}
	return out
}

var jsFuncs = template.FuncMap{
	"escape": routes.EscapePath,
}

func renderJS(rs []*routes.Route) ([]byte, error) {
	tmpl, err := template.New("routes.js").Funcs(jsFuncs).Parse(routerModuleTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	data := routerModuleData{
		Banner:        version.Banner(),
		SchemaVersion: version.ManifestSchemaVersion,
		Routes:        toJSRoutes(rs, "  "),
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}
