// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package config loads the cfgdoc.hcl tool configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"grimm.is/cfgdoc/internal/configdoc"
	"grimm.is/cfgdoc/internal/errors"
	"grimm.is/cfgdoc/internal/groupcache"
	"grimm.is/cfgdoc/internal/logging"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "cfgdoc.hcl"

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatHugo     = "hugo"
	FormatSchema   = "schema"
	FormatYAML     = "yaml"
	FormatJSON     = "json"
)

// Config is the tool configuration.
type Config struct {
	// Descriptors are glob patterns of descriptor files (.hcl, .yaml, .json, .toml).
	Descriptors []string `hcl:"descriptors,optional" validate:"required_without=GoSourceDirs"`
	// GoSourceDirs are Go packages whose tagged structs describe configuration.
	GoSourceDirs      []string `hcl:"go_source_dirs,optional"`
	OutputDir         string   `hcl:"output_dir,optional" validate:"required"`
	Formats           []string `hcl:"formats,optional" validate:"min=1,dive,oneof=markdown hugo schema yaml json"`
	SeparateGroupDocs bool     `hcl:"separate_group_docs,optional"`
	ExtendedDiscovery bool     `hcl:"extended_discovery,optional"`
	MaxDepth          int      `hcl:"max_depth,optional" validate:"min=1,max=1024"`
	MetricsFile       string   `hcl:"metrics_file,optional"`

	Cache        *CacheConfig  `hcl:"cache,block"`
	Log          *LogConfig    `hcl:"log,block"`
	JavadocLinks []JavadocLink `hcl:"javadoc_link,block" validate:"dive"`
	DisplayTypes []DisplayType `hcl:"display_type,block" validate:"dive"`

	// Path is the file the config was read from, empty for defaults.
	Path string
}

// CacheConfig selects the group cache backend. Path is a directory for the
// fs backend and a database file for sqlite.
type CacheConfig struct {
	Backend string `hcl:"backend,optional" validate:"oneof=memory fs sqlite"`
	Path    string `hcl:"path,optional" validate:"required_unless=Backend memory"`
}

type LogConfig struct {
	Level string `hcl:"level,optional" validate:"oneof=debug info warn error"`
	JSON  bool   `hcl:"json,optional"`
}

// JavadocLink maps a package prefix to an external documentation site.
type JavadocLink struct {
	Prefix string `hcl:"prefix,label" validate:"required"`
	URL    string `hcl:"url" validate:"required,url"`
}

// DisplayType substitutes the rendered name of a wrapper type.
type DisplayType struct {
	Type    string `hcl:"type,label" validate:"required"`
	Display string `hcl:"display" validate:"required"`
}

// DefaultConfig returns the configuration written by `init`.
func DefaultConfig() *Config {
	cfg := &Config{
		Descriptors: []string{"descriptors/*.hcl"},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "docs/config"
	}
	if len(c.Formats) == 0 {
		c.Formats = []string{FormatMarkdown}
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = configdoc.DefaultMaxDepth
	}
	if c.Cache == nil {
		c.Cache = &CacheConfig{}
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = groupcache.BackendFS
	}
	if c.Cache.Path == "" && c.Cache.Backend != groupcache.BackendMemory {
		c.Cache.Path = ".cfgdoc-cache"
		if c.Cache.Backend == groupcache.BackendSQLite {
			c.Cache.Path = ".cfgdoc-cache.db"
		}
	}
	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// resolvePaths makes relative paths relative to dir.
func (c *Config) resolvePaths(dir string) {
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i, p := range c.Descriptors {
		c.Descriptors[i] = join(p)
	}
	for i, p := range c.GoSourceDirs {
		c.GoSourceDirs[i] = join(p)
	}
	c.OutputDir = join(c.OutputDir)
	c.MetricsFile = join(c.MetricsFile)
	if c.Cache.Backend != groupcache.BackendMemory {
		c.Cache.Path = join(c.Cache.Path)
	}
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		kind := errors.KindInternal
		if os.IsNotExist(err) {
			kind = errors.KindNotFound
		}
		return nil, errors.Attr(errors.Wrap(err, kind, "failed to read config file"), "path", path)
	}
	return LoadFromBytes(path, data)
}

// LoadFromBytes decodes data as if read from filename. Relative paths in
// the config resolve against the directory of filename.
func LoadFromBytes(filename string, data []byte) (*Config, error) {
	var cfg Config
	if err := hclsimple.Decode(filename, data, nil, &cfg); err != nil {
		return nil, errors.Attr(errors.Wrap(err, errors.KindValidation, "failed to decode config"), "path", filename)
	}
	cfg.Path = filename
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Attr(err, "path", filename)
	}
	cfg.resolvePaths(filepath.Dir(filename))
	return &cfg, nil
}

// ScannerOptions converts the config into scanner options. Observer and
// Logger are left for the caller.
func (c *Config) ScannerOptions() configdoc.Options {
	opts := configdoc.Options{
		MaxDepth:          c.MaxDepth,
		SeparateGroupDocs: c.SeparateGroupDocs,
		ExtendedDiscovery: c.ExtendedDiscovery,
	}
	if len(c.JavadocLinks) > 0 {
		opts.JavadocLinks = make(map[string]string, len(c.JavadocLinks))
		for _, l := range c.JavadocLinks {
			opts.JavadocLinks[l.Prefix] = l.URL
		}
	}
	if len(c.DisplayTypes) > 0 {
		opts.DisplayTypes = make(map[string]string, len(c.DisplayTypes))
		for _, d := range c.DisplayTypes {
			opts.DisplayTypes[d.Type] = d.Display
		}
	}
	return opts
}

// LoggingConfig returns the logger settings.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if c.Log != nil {
		cfg.Level = logging.ParseLevel(c.Log.Level)
		cfg.JSON = c.Log.JSON
	}
	return cfg
}

// Encode renders cfg as HCL. Unset lists are written as empty lists so the
// output decodes again.
func Encode(cfg *Config) []byte {
	out := *cfg
	if out.Descriptors == nil {
		out.Descriptors = []string{}
	}
	if out.GoSourceDirs == nil {
		out.GoSourceDirs = []string{}
	}
	if out.Formats == nil {
		out.Formats = []string{}
	}

	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(&out, f.Body())
	return hclwrite.Format(f.Bytes())
}
