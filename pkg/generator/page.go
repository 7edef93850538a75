package generator

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/abdul-hamid-achik/pagetree/pkg/routes"
)

// PageConfig holds configuration for page generation.
type PageConfig struct {
	Path     string // Page path in file naming (e.g., "users/_id")
	PagesDir string // Pages directory (default: "pages")
	Ext      string // File extension without dot (default: "vue")
}

// GeneratePage scaffolds a page file. Existing files are never overwritten.
func GeneratePage(cfg PageConfig) (*Result, error) {
	if cfg.PagesDir == "" {
		cfg.PagesDir = "pages"
	}
	if cfg.Ext == "" {
		cfg.Ext = "vue"
	}
	cfg.Ext = strings.TrimPrefix(cfg.Ext, ".")

	tmplContent, ok := pageTemplates[cfg.Ext]
	if !ok {
		return nil, fmt.Errorf("no page template for .%s files", cfg.Ext)
	}

	rel := strings.Trim(path.Clean(filepath.ToSlash(cfg.Path)), "/")
	if rel == "" || rel == "." {
		rel = "index"
	}
	if strings.HasPrefix(rel, "..") {
		return nil, fmt.Errorf("page path %q escapes the pages directory", cfg.Path)
	}
	rel = strings.TrimSuffix(rel, "."+cfg.Ext)

	pattern, err := pagePattern(rel + "." + cfg.Ext)
	if err != nil {
		return nil, err
	}

	filePath := filepath.Join(cfg.PagesDir, filepath.FromSlash(rel)+"."+cfg.Ext)

	// Create directory
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Check if file exists
	if _, err := os.Stat(filePath); err == nil {
		return nil, fmt.Errorf("file already exists: %s", filePath)
	}

	data := pageTemplateData{
		Title:  pageTitle(rel),
		Params: pageParams(rel),
	}
	if err := executeTemplate(filePath, tmplContent, data); err != nil {
		return nil, err
	}

	return &Result{
		Files:   []string{filePath},
		Pattern: pattern,
	}, nil
}

// pagePattern compiles a single page on its own to report its URL.
func pagePattern(file string) (string, error) {
	ext := strings.TrimPrefix(path.Ext(file), ".")
	rs, err := routes.Compile([]string{file}, routes.Options{
		Extensions: []string{ext},
		Resolve:    func(_, rel string) string { return rel },
	})
	if err != nil {
		return "", err
	}
	for p := range routes.Flatten(rs) {
		return p, nil
	}
	return "/", nil
}

// pageParams lists the parameter names a page receives.
func pageParams(rel string) []string {
	var params []string
	for _, key := range strings.Split(rel, "/") {
		seg := routes.ParseSegment(key)
		switch seg.Type {
		case routes.SegmentDynamic:
			params = append(params, seg.Name)
		case routes.SegmentCatchAll:
			params = append(params, "pathMatch")
		}
	}
	return slices.Compact(params)
}

// pageTitle derives a display title from the last static segment.
func pageTitle(rel string) string {
	keys := strings.Split(rel, "/")
	for i := len(keys) - 1; i >= 0; i-- {
		seg := routes.ParseSegment(keys[i])
		if seg.Type == routes.SegmentStatic {
			return toTitle(strings.NewReplacer("-", " ", "_", " ").Replace(seg.Name))
		}
	}
	return "Home"
}

func executeTemplate(filePath, tmplContent string, data any) error {
	tmpl, err := template.New(filepath.Base(filePath)).Parse(tmplContent)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return nil
}

// toTitle converts a string to title case (first letter of each word capitalized)
func toTitle(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
