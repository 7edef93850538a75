// Package mcp exposes the route compiler to AI assistants over the Model
// Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/pagetree/internal/project"
	"github.com/abdul-hamid-achik/pagetree/internal/version"
	"github.com/abdul-hamid-achik/pagetree/pkg/generator"
	"github.com/abdul-hamid-achik/pagetree/pkg/routes"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/lo"
)

// Server wraps an MCP server bound to a project directory.
type Server struct {
	workdir   string
	mcpServer *server.MCPServer
}

// NewServer creates a server for the project in workdir and registers
// its tools.
func NewServer(workdir string) *Server {
	s := &Server{workdir: workdir}
	s.mcpServer = server.NewMCPServer(
		"pagetree",
		version.GetVersion(),
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// ServeStdio serves MCP requests on stdin/stdout until EOF.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_routes",
		mcp.WithDescription("Compile the pages directory and list the flattened route paths"),
		mcp.WithBoolean("static", mcp.Description("Only list routes without parameters or wildcards")),
	), s.handleListRoutes)

	s.mcpServer.AddTool(mcp.NewTool("compile_routes",
		mcp.WithDescription("Compile the pages directory into the nested route tree used by the client router"),
	), s.handleCompileRoutes)

	s.mcpServer.AddTool(mcp.NewTool("generate_page",
		mcp.WithDescription("Create a new page file. Use _name for parameters and _ for a catch-all (e.g. users/_id)"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Page path relative to the pages directory, without extension")),
		mcp.WithString("ext", mcp.Description("File extension (vue or js, default vue)")),
	), s.handleGeneratePage)

	s.mcpServer.AddTool(mcp.NewTool("info",
		mcp.WithDescription("Show the project configuration and tool version"),
	), s.handleInfo)

	s.mcpServer.AddTool(mcp.NewTool("validate",
		mcp.WithDescription("Check the pages directory for conflicting pages and suspicious names"),
	), s.handleValidate)
}

func (s *Server) dir() string {
	if s.workdir == "" {
		return "."
	}
	return s.workdir
}

func (s *Server) handleListRoutes(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, snap, err := s.compile()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	paths := snap.Paths
	if req.GetBool("static", false) {
		paths = routes.StaticPaths(snap.Routes)
	}
	if paths == nil {
		paths = []string{}
	}

	return jsonResult(map[string]any{
		"total":     len(paths),
		"routes":    paths,
		"pages_dir": p.Config.PagesDir,
	})
}

func (s *Server) handleCompileRoutes(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, snap, err := s.compile()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tree := snap.Routes
	if tree == nil {
		tree = []*routes.Route{}
	}
	return jsonResult(map[string]any{
		"total":          routes.Count(snap.Routes),
		"schema_version": version.ManifestSchemaVersion,
		"routes":         tree,
	})
}

func (s *Server) handleGeneratePage(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil
	}

	p, err := project.Load(s.dir())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ext := req.GetString("ext", lo.FirstOr(p.Config.Extensions, "vue"))
	result, err := generator.GeneratePage(generator.PageConfig{
		Path:     path,
		PagesDir: p.PagesDir(),
		Ext:      ext,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"success": true,
		"files":   result.Files,
		"pattern": result.Pattern,
	})
}

func (s *Server) handleInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := project.Load(s.dir())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	_, statErr := os.Stat(p.PagesDir())

	return jsonResult(map[string]any{
		"version":         version.GetVersion(),
		"schema_version":  version.ManifestSchemaVersion,
		"has_config":      p.Config.File() != "",
		"config_file":     p.Config.File(),
		"has_pages_dir":   statErr == nil,
		"pages_dir":       p.Config.PagesDir,
		"extensions":      p.Config.Extensions,
		"name_splitter":   p.Config.NameSplitter,
		"manifest_format": p.Config.Format,
		"manifest_output": p.Config.Output,
	})
}

func (s *Server) handleValidate(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := project.Load(s.dir())
	if err != nil {
		return jsonResult(map[string]any{
			"valid":  false,
			"issues": []string{err.Error()},
		})
	}

	issues := []string{}
	if _, err := os.Stat(p.PagesDir()); os.IsNotExist(err) {
		rel, _ := filepath.Rel(p.Dir, p.PagesDir())
		issues = append(issues, fmt.Sprintf("%s/ directory not found", filepath.ToSlash(rel)))
	}

	snap, err := p.Compile()
	if err != nil {
		issues = append(issues, err.Error())
		return jsonResult(map[string]any{"valid": false, "issues": issues})
	}

	for _, c := range snap.Scan.Conflicts {
		issues = append(issues, fmt.Sprintf("%s: %s and %s", c.Message, c.File1, c.File2))
	}

	return jsonResult(map[string]any{
		"valid":    len(issues) == 0,
		"issues":   issues,
		"warnings": snap.Scan.Warnings,
		"pages":    len(snap.Scan.Files),
	})
}

func (s *Server) compile() (*project.Project, *project.Snapshot, error) {
	p, err := project.Load(s.dir())
	if err != nil {
		return nil, nil, err
	}
	snap, err := p.Compile()
	if err != nil {
		return nil, nil, err
	}
	return p, snap, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
