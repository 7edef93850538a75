// Package project ties configuration, scanning and compilation together
// for a single working directory.
package project

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/abdul-hamid-achik/pagetree/internal/config"
	"github.com/abdul-hamid-achik/pagetree/pkg/routes"
	"github.com/abdul-hamid-achik/pagetree/pkg/scanner"
	"github.com/charmbracelet/log"
)

// Project is a working directory with its loaded configuration.
type Project struct {
	Dir    string
	Config *config.Config
	logger *log.Logger
}

// Snapshot is the outcome of one scan and compile.
type Snapshot struct {
	Scan   *scanner.ScanResult
	Routes []*routes.Route
	// Paths are the flattened routes in tree order
	Paths []string
}

// Load reads the configuration found in dir.
func Load(dir string) (*Project, error) {
	if dir == "" {
		dir = "."
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	return &Project{
		Dir:    dir,
		Config: cfg,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}, nil
}

// SetLogger sets the logger passed down to the scanner.
func (p *Project) SetLogger(l *log.Logger) {
	if l != nil {
		p.logger = l
	}
}

// SrcDir returns the source directory resolved against the project dir.
func (p *Project) SrcDir() string {
	if filepath.IsAbs(p.Config.SrcDir) {
		return p.Config.SrcDir
	}
	return filepath.Join(p.Dir, p.Config.SrcDir)
}

// PagesDir returns the pages directory on disk.
func (p *Project) PagesDir() string {
	return filepath.Join(p.SrcDir(), filepath.FromSlash(p.Config.PagesDir))
}

// OutputPath returns the manifest path resolved against the project dir.
func (p *Project) OutputPath() string {
	if filepath.IsAbs(p.Config.Output) {
		return p.Config.Output
	}
	return filepath.Join(p.Dir, p.Config.Output)
}

// Options returns compiler options for this project.
func (p *Project) Options() routes.Options {
	opts := p.Config.RouteOptions()
	opts.SrcDir = p.SrcDir()
	return opts
}

// Compile scans the pages directory and compiles the files it finds.
func (p *Project) Compile() (*Snapshot, error) {
	s := scanner.NewScanner(p.SrcDir(), p.Config.PagesDir)
	s.SetExtensions(p.Config.Extensions)
	s.SetIgnore(p.Config.Ignore)
	s.SetLogger(p.logger)

	scan, err := s.Scan()
	if err != nil {
		return nil, err
	}

	rs, err := routes.Compile(scan.Files, p.Options())
	if err != nil {
		return nil, fmt.Errorf("failed to compile routes: %w", err)
	}
	p.logger.Debug("compiled routes", "files", len(scan.Files), "routes", routes.Count(rs))

	return &Snapshot{
		Scan:   scan,
		Routes: rs,
		Paths:  slices.Collect(routes.Flatten(rs)),
	}, nil
}
