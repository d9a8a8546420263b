package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/rustavail/rustavail/internal/tiers"
)

// Default configuration values.
const (
	// DefaultChannel is the release channel monitored when none is
	// configured. Nightly is where component availability actually
	// fluctuates; stable and beta rarely have gaps.
	DefaultChannel = "nightly"

	// DefaultDaysInPast is how many report dates the rendered table and
	// the file tree cover.
	DefaultDaysInPast = 30

	// DefaultAdditionalLookupDays extends the manifest lookup window
	// past the report window so last-available dates older than the
	// table can still be resolved.
	DefaultAdditionalLookupDays = 7

	// AppName is the application name used for XDG directory paths.
	AppName = "rustavail"
)

// Cache backend names accepted in the configuration file.
const (
	CacheBackendFs     = "fs"
	CacheBackendSQLite = "sqlite"
	CacheBackendNone   = "none"
)

// Config is the full run configuration, loaded from YAML.
type Config struct {
	// Channel is the release channel to monitor: "nightly", "beta",
	// "stable", or a version number.
	Channel string `yaml:"channel"`

	// DaysInPast is the number of report dates, newest first.
	DaysInPast int `yaml:"days_in_past"`

	// AdditionalLookupDays is how many extra days of manifests are
	// fetched beyond the report window.
	AdditionalLookupDays int `yaml:"additional_lookup_days"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`

	// Cache configures manifest caching between runs.
	Cache CacheConfig `yaml:"cache"`

	// HTML configures the per-target page rendering.
	HTML HTMLConfig `yaml:"html"`

	// FileTreeOutput is the root directory of the availability file
	// tree.
	FileTreeOutput string `yaml:"file_tree_output"`
}

// CacheConfig selects and locates the manifest cache backend.
type CacheConfig struct {
	// Backend is "fs", "sqlite", or "none".
	Backend string `yaml:"backend"`

	// Path is the cache directory. Empty means the XDG cache dir.
	Path string `yaml:"path"`
}

// HTMLConfig configures the HTML exporter.
type HTMLConfig struct {
	// TemplatePath is the page template file.
	TemplatePath string `yaml:"template_path"`

	// OutputPattern is the output path pattern with a {{.target}}
	// placeholder, evaluated through the same engine as the page
	// template.
	OutputPattern string `yaml:"output_pattern"`

	// Tiers is the ordered tier grouping passed to templates.
	Tiers []tiers.Tier `yaml:"tiers"`
}

// New creates a Config with default values. The HTML and file-tree
// destinations have no sensible defaults and must come from the file.
func New() *Config {
	return &Config{
		Channel:              DefaultChannel,
		DaysInPast:           DefaultDaysInPast,
		AdditionalLookupDays: DefaultAdditionalLookupDays,
		Cache: CacheConfig{
			Backend: CacheBackendFs,
		},
	}
}

// XDGCacheDir returns the default manifest cache directory.
// On Linux: ~/.cache/rustavail
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// CacheDir returns the configured cache directory, falling back to the
// XDG default.
func (c *Config) CacheDir() string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return XDGCacheDir()
}

// Validate checks the configuration and returns the first problem
// found.
func (c *Config) Validate() error {
	if c.Channel == "" {
		return ErrNoChannel
	}
	if c.DaysInPast <= 0 {
		return ErrInvalidDaysInPast
	}
	if c.AdditionalLookupDays < 0 {
		return ErrInvalidLookupDays
	}
	switch c.Cache.Backend {
	case CacheBackendFs, CacheBackendSQLite, CacheBackendNone:
	default:
		return ErrInvalidCacheBackend
	}
	if c.HTML.TemplatePath == "" {
		return ErrNoTemplatePath
	}
	if c.HTML.OutputPattern == "" {
		return ErrNoOutputPattern
	}
	if c.FileTreeOutput == "" {
		return ErrNoFileTreeOutput
	}
	return nil
}
