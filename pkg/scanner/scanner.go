package scanner

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/abdul-hamid-achik/pagetree/pkg/routes"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
)

// knownPrivateFolders contains folder names that should be skipped
var knownPrivateFolders = map[string]bool{
	"node_modules": true,
	".git":         true,
	".pagetree":    true,
}

// paramNameRe matches a usable route parameter name
var paramNameRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Scanner walks a pages directory and collects page files.
type Scanner struct {
	srcDir     string
	pagesDir   string
	extensions []string
	ignore     []string
	logger     *log.Logger
}

// NewScanner creates a Scanner for srcDir/pagesDir.
func NewScanner(srcDir, pagesDir string) *Scanner {
	pagesDir = strings.Trim(filepath.ToSlash(filepath.Clean(pagesDir)), "/")
	if pagesDir == "." {
		pagesDir = ""
	}
	return &Scanner{
		srcDir:     srcDir,
		pagesDir:   pagesDir,
		extensions: routes.DefaultExtensions,
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
	}
}

// SetExtensions sets the recognized page extensions (without dots).
func (s *Scanner) SetExtensions(exts []string) {
	if len(exts) > 0 {
		s.extensions = exts
	}
}

// SetIgnore sets doublestar patterns matched against paths relative to the
// pages directory (e.g., "**/*.spec.js", "drafts/**").
func (s *Scanner) SetIgnore(patterns []string) {
	s.ignore = patterns
}

// SetLogger sets the logger used for debug output.
func (s *Scanner) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// IsPrivateFolder checks if a directory should be skipped during scanning.
func IsPrivateFolder(name string) bool {
	// Hidden directories
	if strings.HasPrefix(name, ".") {
		return true
	}
	return knownPrivateFolders[name]
}

// Scan walks the pages directory. A missing directory yields an empty
// result, not an error.
func (s *Scanner) Scan() (*ScanResult, error) {
	root := filepath.Join(s.srcDir, filepath.FromSlash(s.pagesDir))
	result := &ScanResult{Root: root, Files: []string{}}

	if _, err := os.Stat(root); os.IsNotExist(err) {
		s.logger.Debug("pages directory not found", "dir", root)
		return result, nil
	}

	dirs := make(map[string]bool)

	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if IsPrivateFolder(d.Name()) || s.ignored(rel, true) {
				s.logger.Debug("skipping directory", "dir", rel)
				return filepath.SkipDir
			}
			dirs[rel] = true
			if d.Name() == "_" {
				result.Warnings = append(result.Warnings, Warning{
					FilePath: s.pagePath(rel),
					Message:  "catch-all directory; pages below it are matched by the wildcard first",
				})
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		ext := strings.TrimPrefix(path.Ext(rel), ".")
		if !slices.Contains(s.extensions, ext) || s.ignored(rel, false) {
			result.Skipped++
			return nil
		}

		file := s.pagePath(rel)
		result.Files = append(result.Files, file)
		s.logger.Debug("found page", "file", file)

		result.Warnings = append(result.Warnings, checkNames(file, rel)...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	slices.Sort(result.Files)
	result.Conflicts = s.detectConflicts(result.Files, dirs)

	return result, nil
}

// pagePath turns a path relative to the pages directory into one relative
// to the source directory.
func (s *Scanner) pagePath(rel string) string {
	if s.pagesDir == "" {
		return rel
	}
	return s.pagesDir + "/" + rel
}

// ignored returns true if rel matches an ignore pattern. For directories it
// also probes a synthetic child so that "drafts/**" skips the whole tree.
func (s *Scanner) ignored(rel string, isDir bool) bool {
	for _, pattern := range s.ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if isDir {
			if ok, _ := doublestar.Match(pattern, rel+"/x"); ok {
				return true
			}
		}
	}
	return false
}

// checkNames reports parameter names the router cannot bind.
func checkNames(file, rel string) []Warning {
	var warnings []Warning

	stem := strings.TrimSuffix(rel, path.Ext(rel))
	for _, key := range strings.Split(stem, "/") {
		seg := routes.ParseSegment(key)
		if seg.Type != routes.SegmentDynamic {
			continue
		}
		if !paramNameRe.MatchString(seg.Name) {
			warnings = append(warnings, Warning{
				FilePath: file,
				Message:  fmt.Sprintf("parameter %q is not a valid identifier", seg.Name),
			})
		}
	}
	return warnings
}

// detectConflicts finds leaf pages that answer the same URL shape. Parent
// pages (a file with a directory of the same name) render layouts and are
// not compared.
func (s *Scanner) detectConflicts(files []string, dirs map[string]bool) []Conflict {
	var conflicts []Conflict
	seen := make(map[string]string) // url shape -> file

	for _, file := range files {
		rel := strings.TrimPrefix(file, s.pagesDir+"/")
		stem := strings.TrimSuffix(rel, path.Ext(rel))
		if dirs[stem] {
			continue
		}

		shape := urlShape(stem)
		if existing, ok := seen[shape]; ok {
			conflicts = append(conflicts, Conflict{
				Pattern: shape,
				File1:   existing,
				File2:   file,
				Message: fmt.Sprintf("Duplicate page for %s", shape),
			})
			continue
		}
		seen[shape] = file
	}

	return conflicts
}

// urlShape renders a page stem as a URL with parameter names erased, so
// "_id" and "_slug" at the same position collide.
func urlShape(stem string) string {
	var parts []string
	keys := strings.Split(stem, "/")
	for i, key := range keys {
		seg := routes.ParseSegment(key)
		switch seg.Type {
		case routes.SegmentIndex:
			if i == len(keys)-1 {
				continue
			}
			parts = append(parts, key)
		case routes.SegmentDynamic:
			parts = append(parts, ":")
		case routes.SegmentCatchAll:
			parts = append(parts, "*")
		default:
			parts = append(parts, key)
		}
	}
	return "/" + strings.Join(parts, "/")
}
