package commands

import (
	"github.com/abdul-hamid-achik/pagetree/pkg/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP server on stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout so AI assistants can
list and compile routes and scaffold pages.

Tools:
  list_routes     Flattened route paths
  compile_routes  Nested route tree
  generate_page   Create a page file
  info            Project configuration
  validate        Conflicting pages and suspicious names

Example configuration:
  {"mcpServers": {"pagetree": {"command": "pagetree", "args": ["mcp"]}}}`,
	Run: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) {
	logger.Debug("starting MCP server", "dir", workdir)
	if err := mcp.NewServer(workdir).ServeStdio(); err != nil {
		exitWithError(err)
	}
}
