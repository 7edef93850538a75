// Package scanner enumerates page files under a pages directory.
// It only discovers files; compiling them into routes is done by package
// routes.
package scanner

// ScanResult holds all discovered page files from a scan.
type ScanResult struct {
	// Root is the scanned directory (SrcDir joined with PagesDir)
	Root string `json:"root"`
	// Files are page paths relative to SrcDir, forward-slash separated and
	// sorted (e.g., "pages/users/_id.vue")
	Files []string `json:"files"`
	// Skipped counts files ignored because of their extension or an
	// ignore pattern
	Skipped int `json:"skipped"`
	// Warnings are non-fatal issues encountered during scanning
	Warnings []Warning `json:"warnings,omitempty"`
	// Conflicts are pages that resolve to the same URL
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

// Warning represents a non-fatal issue during scanning.
type Warning struct {
	FilePath string `json:"file"`
	Message  string `json:"message"`
}

// Conflict represents two pages answering the same URL.
type Conflict struct {
	Pattern string `json:"pattern"`
	File1   string `json:"file1"`
	File2   string `json:"file2"`
	Message string `json:"message"`
}
