package commands

import (
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/pagetree/internal/project"
	"github.com/abdul-hamid-achik/pagetree/pkg/generator"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the pages directory and write the route manifest",
	Long: `Scan the pages directory, compile the route tree and write it as a manifest.

Formats:
  json     Route tree with schema version (default)
  yaml     Same document as YAML
  js       Router module with lazily imported page chunks
  openapi  OpenAPI 3 document with one GET per page URL

Examples:
  pagetree build
  pagetree build --format js --output src/router/routes.js
  pagetree build --stdout --format yaml
  pagetree build --json`,
	Run: runBuild,
}

var (
	buildFlags  projectFlags
	buildFormat string
	buildOut    string
	buildStdout bool
)

func init() {
	buildFlags.register(buildCmd)
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", "", "Manifest format: json, yaml, js, openapi (overrides format)")
	buildCmd.Flags().StringVarP(&buildOut, "output", "o", "", "Manifest path (overrides output)")
	buildCmd.Flags().BoolVar(&buildStdout, "stdout", false, "Print the manifest instead of writing it")
}

func runBuild(cmd *cobra.Command, args []string) {
	p, err := buildFlags.load(cmd)
	if err != nil {
		exitWithError(err)
	}
	if cmd.Flags().Changed("format") {
		p.Config.Format = buildFormat
	}
	if cmd.Flags().Changed("output") {
		p.Config.Output = buildOut
	}
	if err := p.Config.Validate(); err != nil {
		exitWithError(err)
	}

	out, data, err := buildManifest(p, buildStdout)
	if err != nil {
		exitWithError(err)
	}

	if buildStdout {
		_, _ = os.Stdout.Write(data)
		return
	}

	if jsonOutput {
		printSuccess(out)
		return
	}

	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Printf("\n  %s Route Manifest\n\n", cyan("pagetree"))
	fmt.Printf("  %s Scanned %d pages in %s/\n", green("✓"), out.Pages, p.Config.PagesDir)
	printScanIssues(out.Warnings, out.Conflicts)
	fmt.Printf("  %s Compiled %d routes\n", green("✓"), out.Routes)
	fmt.Printf("  %s Wrote %s (%s)\n\n", green("✓"), out.Output, out.Format)
}

// buildManifest compiles the project and renders its manifest. When
// inMemory is set nothing is written and Output stays empty.
func buildManifest(p *project.Project, inMemory bool) (*BuildOutput, []byte, error) {
	snap, err := p.Compile()
	if err != nil {
		return nil, nil, err
	}

	output := ""
	if !inMemory {
		output = p.OutputPath()
	}

	g, err := generator.NewGenerator(generator.Config{
		Format: p.Config.Format,
		Output: output,
	})
	if err != nil {
		return nil, nil, err
	}

	result, err := g.Generate(snap.Routes)
	if err != nil {
		return nil, nil, err
	}

	return &BuildOutput{
		Output:    output,
		Format:    result.Format,
		Pages:     len(snap.Scan.Files),
		Routes:    result.Routes,
		Warnings:  snap.Scan.Warnings,
		Conflicts: snap.Scan.Conflicts,
	}, result.Data, nil
}
