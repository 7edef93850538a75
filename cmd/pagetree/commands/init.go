package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/pagetree/internal/config"
	"github.com/abdul-hamid-achik/pagetree/pkg/generator"
	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a pagetree.yaml config file",
	Long: `Create pagetree.yaml in the project directory.

When run in a terminal, a short form asks for the pages directory, page
extensions, manifest format and trailing slash policy. Use --yes to accept
the defaults (and any flags) without prompting.

Examples:
  pagetree init
  pagetree init --yes --pages-dir src/pages --format js
  pagetree init --force`,
	Run: runInit,
}

var (
	initForce    bool
	initYes      bool
	initPagesDir string
	initFormat   string
)

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing pagetree.yaml")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Do not prompt; use defaults and flags")
	initCmd.Flags().StringVarP(&initPagesDir, "pages-dir", "p", "", "Pages directory")
	initCmd.Flags().StringVarP(&initFormat, "format", "f", "", "Manifest format: json, yaml, js, openapi")
}

func runInit(cmd *cobra.Command, args []string) {
	cfg := config.Default()
	if initPagesDir != "" {
		cfg.PagesDir = initPagesDir
	}
	if initFormat != "" {
		cfg.Format = initFormat
	}

	interactive := !initYes && !jsonOutput &&
		(isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()))

	if interactive {
		if err := runInitForm(cfg); err != nil {
			yellow := color.New(color.FgYellow).SprintFunc()
			fmt.Printf("  %s Cancelled\n", yellow("!"))
			return
		}
	}

	if err := cfg.Validate(); err != nil {
		exitWithError(err)
	}

	path, err := cfg.Write(workdir, initForce)
	if err != nil {
		exitWithError(err)
	}

	if jsonOutput {
		printSuccess(InitOutput{Config: path, PagesDir: cfg.PagesDir, Format: cfg.Format})
		return
	}

	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Printf("\n  %s Created %s\n", green("✓"), path)
	fmt.Printf("\n  Next steps:\n")
	fmt.Printf("    %s\n", cyan("pagetree new page index"))
	fmt.Printf("    %s\n\n", cyan("pagetree build"))
}

// runInitForm asks for the main settings and stores the answers in cfg.
func runInitForm(cfg *config.Config) error {
	extensions := strings.Join(cfg.Extensions, ", ")
	trailing := "keep"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Pages directory").
				Description("Relative to the project directory").
				Value(&cfg.PagesDir),
			huh.NewInput().
				Title("Page extensions").
				Description("Comma separated, without dots").
				Value(&extensions),
			huh.NewSelect[string]().
				Title("Manifest format").
				Options(huh.NewOptions(generator.Formats...)...).
				Value(&cfg.Format),
			huh.NewSelect[string]().
				Title("Trailing slashes").
				Options(
					huh.NewOption("Leave paths as compiled", "keep"),
					huh.NewOption("Always add a trailing slash", "add"),
					huh.NewOption("Always strip trailing slashes", "strip"),
				).
				Value(&trailing),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	cfg.Extensions = parseExtensions(extensions)
	cfg.TrailingSlash = trailingSlashChoice(trailing)
	return nil
}

// parseExtensions splits a comma separated list, dropping dots and blanks.
func parseExtensions(s string) []string {
	return lo.Uniq(lo.Compact(lo.Map(strings.Split(s, ","), func(e string, _ int) string {
		return strings.TrimPrefix(strings.TrimSpace(e), ".")
	})))
}

func trailingSlashChoice(choice string) *bool {
	switch choice {
	case "add":
		return lo.ToPtr(true)
	case "strip":
		return lo.ToPtr(false)
	}
	return nil
}
