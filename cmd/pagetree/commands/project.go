package commands

import (
	"github.com/abdul-hamid-achik/pagetree/internal/project"
	"github.com/spf13/cobra"
)

// projectFlags are the config overrides shared by commands that compile.
type projectFlags struct {
	srcDir        string
	pagesDir      string
	extensions    []string
	splitter      string
	ignore        []string
	trailingSlash bool
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.srcDir, "src-dir", "", "Source directory (overrides src_dir)")
	cmd.Flags().StringVarP(&f.pagesDir, "pages-dir", "p", "", "Pages directory relative to the source directory (overrides pages_dir)")
	cmd.Flags().StringSliceVarP(&f.extensions, "ext", "e", nil, "Page extensions without dots (overrides extensions)")
	cmd.Flags().StringVar(&f.splitter, "splitter", "", "Route name splitter (overrides name_splitter)")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "Glob patterns to skip, relative to the pages directory")
	cmd.Flags().BoolVar(&f.trailingSlash, "trailing-slash", false, "Force (true) or strip (false) trailing slashes")
}

// load reads the project config and applies every flag that was set.
func (f *projectFlags) load(cmd *cobra.Command) (*project.Project, error) {
	p, err := project.Load(workdir)
	if err != nil {
		return nil, err
	}
	p.SetLogger(logger)

	flags := cmd.Flags()
	if flags.Changed("src-dir") {
		p.Config.SrcDir = f.srcDir
	}
	if flags.Changed("pages-dir") {
		p.Config.PagesDir = f.pagesDir
	}
	if flags.Changed("ext") {
		p.Config.Extensions = f.extensions
	}
	if flags.Changed("splitter") {
		p.Config.NameSplitter = f.splitter
	}
	if flags.Changed("ignore") {
		p.Config.Ignore = append(p.Config.Ignore, f.ignore...)
	}
	if flags.Changed("trailing-slash") {
		on := f.trailingSlash
		p.Config.TrailingSlash = &on
	}

	if err := p.Config.Validate(); err != nil {
		return nil, err
	}
	if file := p.Config.File(); file != "" {
		logger.Debug("loaded config", "file", file)
	}
	return p, nil
}
