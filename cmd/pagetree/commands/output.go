package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/pagetree/pkg/scanner"
	"github.com/fatih/color"
)

// jsonOutput is the global flag for JSON output mode
var jsonOutput bool

// JSONResponse is the standard response wrapper for JSON output
type JSONResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BuildOutput represents the JSON output for the build command
type BuildOutput struct {
	Output    string             `json:"output,omitempty"`
	Format    string             `json:"format"`
	Pages     int                `json:"pages"`
	Routes    int                `json:"routes"`
	Warnings  []scanner.Warning  `json:"warnings,omitempty"`
	Conflicts []scanner.Conflict `json:"conflicts,omitempty"`
}

// RoutesOutput represents the JSON output for the routes command
type RoutesOutput struct {
	Routes []string `json:"routes"`
	Total  int      `json:"total"`
}

// GenerateOutput represents the JSON output for generate commands
type GenerateOutput struct {
	Command string   `json:"command"`
	Path    string   `json:"path,omitempty"`
	Files   []string `json:"files"`
	Pattern string   `json:"pattern,omitempty"`
}

// InitOutput represents the JSON output for the init command
type InitOutput struct {
	Config   string `json:"config"`
	PagesDir string `json:"pages_dir"`
	Format   string `json:"format"`
}

// ServeOutput represents the JSON output for the serve command
type ServeOutput struct {
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
	Routes int    `json:"routes"`
}

// VersionOutput represents the JSON output for the version command
type VersionOutput struct {
	Version       string `json:"version"`
	SchemaVersion int    `json:"schema_version"`
}

func newJSONEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc
}

// printJSON outputs data as formatted JSON to stdout
func printJSON(v any) {
	enc := newJSONEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}

// printSuccess outputs a successful JSON response
func printSuccess(data any) {
	printJSON(JSONResponse{Success: true, Data: data})
}

// printJSONError outputs an error as JSON
func printJSONError(err error) {
	printJSON(JSONResponse{Success: false, Error: err.Error()})
}

// exitWithError reports err in the active output mode and exits with 1.
func exitWithError(err error) {
	if jsonOutput {
		printJSONError(err)
	} else {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Printf("  %s %v\n", red("Error:"), err)
	}
	os.Exit(1)
}

// printScanIssues prints scanner warnings and conflicts in text mode.
func printScanIssues(warnings []scanner.Warning, conflicts []scanner.Conflict) {
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, w := range warnings {
		fmt.Printf("  %s %s: %s\n", yellow("⚠"), w.FilePath, w.Message)
	}
	for _, c := range conflicts {
		fmt.Printf("  %s %s (%s, %s)\n", red("✗"), c.Message, c.File1, c.File2)
	}
}
