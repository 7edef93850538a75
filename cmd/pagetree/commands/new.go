package commands

import (
	"fmt"

	"github.com/abdul-hamid-achik/pagetree/pkg/generator"
	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create new project files",
}

var newPageCmd = &cobra.Command{
	Use:   "page <path>",
	Short: "Create a new page",
	Long: `Create a page file in the pages directory.

Use _name for a parameter and _ for a catch-all. The compiled route for the
new page is printed. The first page extension (see --ext) selects the
template.

Examples:
  pagetree new page about
  pagetree new page users/_id
  pagetree new page docs/_ --ext js`,
	Args: cobra.ExactArgs(1),
	Run:  runNewPage,
}

var newPageFlags projectFlags

func init() {
	newPageFlags.register(newPageCmd)
	newCmd.AddCommand(newPageCmd)
}

func runNewPage(cmd *cobra.Command, args []string) {
	p, err := newPageFlags.load(cmd)
	if err != nil {
		exitWithError(err)
	}

	// the first configured extension picks the template
	ext := lo.FirstOr(p.Config.Extensions, "vue")

	result, err := generator.GeneratePage(generator.PageConfig{
		Path:     args[0],
		PagesDir: p.PagesDir(),
		Ext:      ext,
	})
	if err != nil {
		exitWithError(err)
	}

	if jsonOutput {
		printSuccess(GenerateOutput{
			Command: "new page",
			Path:    args[0],
			Files:   result.Files,
			Pattern: result.Pattern,
		})
		return
	}

	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	for _, f := range result.Files {
		fmt.Printf("  %s Created %s\n", green("✓"), f)
	}
	fmt.Printf("  %s Route %s\n", green("✓"), cyan(result.Pattern))
}
