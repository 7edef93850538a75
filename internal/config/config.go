// Package config loads pagetree.yaml and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/abdul-hamid-achik/pagetree/pkg/routes"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name without extension.
const FileName = "pagetree"

// Config holds the project configuration.
type Config struct {
	// SrcDir is the project source directory
	SrcDir string `mapstructure:"src_dir" yaml:"src_dir"`
	// PagesDir is the pages directory relative to SrcDir
	PagesDir string `mapstructure:"pages_dir" yaml:"pages_dir"`
	// Extensions are the recognized page extensions
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
	// NameSplitter joins route name parts
	NameSplitter string `mapstructure:"name_splitter" yaml:"name_splitter"`
	// TrailingSlash, when set, forces or forbids trailing slashes
	TrailingSlash *bool `mapstructure:"trailing_slash" yaml:"trailing_slash,omitempty"`
	// Ignore are doublestar globs matched against paths relative to PagesDir
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`
	// Output is the manifest file written by build
	Output string `mapstructure:"output" yaml:"output"`
	// Format is the manifest format (json, yaml, js, openapi)
	Format string `mapstructure:"format" yaml:"format"`
	// Serve configures the preview server
	Serve ServeConfig `mapstructure:"serve" yaml:"serve"`

	// path of the config file that was read, empty when none
	file string
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Port string `mapstructure:"port" yaml:"port"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	def := routes.DefaultOptions()
	return &Config{
		SrcDir:       def.SrcDir,
		PagesDir:     def.PagesDir,
		Extensions:   slices.Clone(def.Extensions),
		NameSplitter: def.NameSplitter,
		Output:       ".pagetree/routes.json",
		Format:       "json",
		Serve:        ServeConfig{Port: "4000"},
	}
}

// Load reads pagetree.yaml from dir. A missing file is not an error; the
// defaults are returned. PAGETREE_* environment variables override values.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("PAGETREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("src_dir", def.SrcDir)
	v.SetDefault("pages_dir", def.PagesDir)
	v.SetDefault("extensions", def.Extensions)
	v.SetDefault("name_splitter", def.NameSplitter)
	_ = v.BindEnv("trailing_slash")
	v.SetDefault("ignore", []string{})
	v.SetDefault("output", def.Output)
	v.SetDefault("format", def.Format)
	v.SetDefault("serve.port", def.Serve.Port)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read %s.yaml: %w", FileName, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s.yaml: %w", FileName, err)
	}
	cfg.file = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// File returns the path of the loaded config file, or "" when defaults
// were used.
func (c *Config) File() string {
	return c.file
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Format {
	case "json", "yaml", "js", "openapi":
	default:
		return fmt.Errorf("unknown format %q (want json, yaml, js or openapi)", c.Format)
	}
	if len(c.Extensions) == 0 {
		return errors.New("at least one page extension is required")
	}
	return nil
}

// RouteOptions converts the config into compiler options.
func (c *Config) RouteOptions() routes.Options {
	opts := routes.DefaultOptions()
	if c.SrcDir != "" {
		opts.SrcDir = c.SrcDir
	}
	if c.PagesDir != "" {
		opts.PagesDir = c.PagesDir
	}
	if len(c.Extensions) > 0 {
		opts.Extensions = c.Extensions
	}
	if c.NameSplitter != "" {
		opts.NameSplitter = c.NameSplitter
	}
	if c.TrailingSlash != nil {
		on := *c.TrailingSlash
		opts.TrailingSlash = &on
	}
	return opts
}

// Write saves the configuration as pagetree.yaml in dir and returns the
// file path. An existing file is left untouched unless overwrite is set.
func (c *Config) Write(dir string, overwrite bool) (string, error) {
	path := filepath.Join(dir, FileName+".yaml")
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists", path)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
