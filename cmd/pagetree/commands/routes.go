package commands

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/pagetree/pkg/routes"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the compiled routes",
	Long: `Compile the pages directory and print one line per route.

By default the flattened full paths are printed in matching order. Use --tree
to see the nested route table with names and components.

Examples:
  pagetree routes
  pagetree routes --static
  pagetree routes --tree
  pagetree routes --json`,
	Run: runRoutes,
}

var (
	routesFlags  projectFlags
	routesStatic bool
	routesTree   bool
)

func init() {
	routesFlags.register(routesCmd)
	routesCmd.Flags().BoolVar(&routesStatic, "static", false, "Only list routes without parameters or wildcards")
	routesCmd.Flags().BoolVar(&routesTree, "tree", false, "Print the nested route tree")
}

func runRoutes(cmd *cobra.Command, args []string) {
	p, err := routesFlags.load(cmd)
	if err != nil {
		exitWithError(err)
	}

	snap, err := p.Compile()
	if err != nil {
		exitWithError(err)
	}

	if routesTree {
		if jsonOutput {
			printSuccess(snap.Routes)
			return
		}
		fmt.Println()
		fmt.Print(formatTree(snap.Routes))
		fmt.Println()
		return
	}

	paths := snap.Paths
	if routesStatic {
		paths = routes.StaticPaths(snap.Routes)
	}
	if paths == nil {
		paths = []string{}
	}

	if jsonOutput {
		printSuccess(RoutesOutput{Routes: paths, Total: len(paths)})
		return
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Printf("\n  %s Routes (%d)\n\n", cyan("pagetree"), len(paths))
	for _, r := range paths {
		fmt.Printf("  %s\n", highlightParams(r))
	}
	fmt.Println()
	printScanIssues(snap.Scan.Warnings, snap.Scan.Conflicts)
}

// formatTree renders a route forest, one route per line, children indented.
func formatTree(rs []*routes.Route) string {
	var b strings.Builder
	routes.Walk(rs, func(r *routes.Route, depth int) bool {
		name := r.Name
		if name == "" {
			name = "(unnamed)"
			if len(r.Children) > 0 {
				name = "(wrapper)"
			}
		}
		path := r.Path
		if path == "" {
			path = `""`
		}
		fmt.Fprintf(&b, "  %s%-24s %s\n", strings.Repeat("  ", depth), path, name)
		return true
	})
	return b.String()
}

// highlightParams colors parameter and wildcard tokens.
func highlightParams(path string) string {
	yellow := color.New(color.FgYellow).SprintFunc()
	parts := strings.Split(path, "/")
	for i, tok := range parts {
		if routes.IsDynamic(tok) {
			parts[i] = yellow(tok)
		}
	}
	return strings.Join(parts, "/")
}
