// Package commands provides the CLI commands for pagetree.
package commands

import (
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/pagetree/internal/version"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pagetree",
	Short: "pagetree - compile a pages directory into router routes",
	Long: `pagetree turns a directory of page files into the nested, ordered route
table a client-side router consumes.

  pages/index.vue          ->  /
  pages/users/_id.vue      ->  /users/:id?
  pages/users/_id/edit.vue ->  /users/:id/edit
  pages/_.vue              ->  /*

Quick Start:
  pagetree init            Create pagetree.yaml
  pagetree routes          List the compiled routes
  pagetree build           Write the route manifest
  pagetree watch           Rebuild the manifest on every change
  pagetree serve           Preview the route table over HTTP`,
	Version: version.GetVersion(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

var (
	verbose bool
	workdir string

	// logger writes diagnostics to stderr; debug output needs --verbose
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "pagetree"})
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger() {
	if verbose {
		logger.SetLevel(log.DebugLevel)
		logger.SetReportTimestamp(true)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for automation and LLM agents)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed scanning and rebuild info")
	rootCmd.PersistentFlags().StringVarP(&workdir, "dir", "C", ".", "Project directory")

	// Commands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
