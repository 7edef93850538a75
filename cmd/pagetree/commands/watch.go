package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/pagetree/internal/project"
	"github.com/abdul-hamid-achik/pagetree/internal/watch"
	"github.com/abdul-hamid-achik/pagetree/pkg/scanner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the route manifest whenever pages change",
	Long: `Build the route manifest, then watch the pages directory and rebuild it
after every burst of changes.

Example:
  pagetree watch
  pagetree watch --delay 250ms
  pagetree watch --json`,
	Run: runWatch,
}

var (
	watchFlags projectFlags
	watchDelay time.Duration
)

func init() {
	watchFlags.register(watchCmd)
	watchCmd.Flags().DurationVar(&watchDelay, "delay", watch.DefaultDelay, "Time to wait for changes to settle")
}

func runWatch(cmd *cobra.Command, args []string) {
	p, err := watchFlags.load(cmd)
	if err != nil {
		exitWithError(err)
	}

	if _, err := os.Stat(p.PagesDir()); os.IsNotExist(err) {
		exitWithError(fmt.Errorf("pages directory %s not found", p.PagesDir()))
	}

	if !jsonOutput {
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Printf("\n  %s Watch Mode\n\n", cyan("pagetree"))
	}

	rebuild := func() { rebuildManifest(p) }
	rebuild()

	w, err := watch.New(p.PagesDir(), watchDelay, scanner.IsPrivateFolder, rebuild)
	if err != nil {
		exitWithError(fmt.Errorf("failed to create file watcher: %w", err))
	}
	w.SetLogger(logger)

	if !jsonOutput {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("  %s Watching %s for changes...\n\n", green("✓"), p.PagesDir())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil {
		exitWithError(err)
	}
	if !jsonOutput {
		fmt.Println("\n  Shutting down...")
	}
}

// rebuildManifest runs one build and reports it without exiting on failure.
func rebuildManifest(p *project.Project) {
	timestamp := time.Now().Format("15:04:05")

	out, _, err := buildManifest(p, false)
	if jsonOutput {
		if err != nil {
			printJSONError(err)
		} else {
			printSuccess(out)
		}
		return
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	if err != nil {
		fmt.Printf("  [%s] %s build failed: %v\n", timestamp, red("✗"), err)
		return
	}
	printScanIssues(out.Warnings, out.Conflicts)
	fmt.Printf("  [%s] %s %d routes -> %s\n", timestamp, green("✓"), out.Routes, out.Output)
}
