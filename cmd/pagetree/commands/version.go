package commands

import (
	"fmt"

	"github.com/abdul-hamid-achik/pagetree/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		if jsonOutput {
			printSuccess(VersionOutput{
				Version:       version.GetVersion(),
				SchemaVersion: version.GetManifestSchemaVersion(),
			})
			return
		}
		fmt.Printf("pagetree %s (manifest schema %d)\n", version.GetVersion(), version.GetManifestSchemaVersion())
	},
}
