// Package config provides configuration management for the phraselint CLI.
//
// This package extends the shared configuration types from internal/config
// and pkg/core with CLI-specific fields. The shared types are re-exported
// here via type aliases for convenience.
package config

import (
	sharedcfg "github.com/leapstack-labs/phraselint/internal/config"
	"github.com/leapstack-labs/phraselint/pkg/core"
)

// LintConfig is an alias for the shared lint configuration.
// This allows CLI code to use config.LintConfig without importing pkg/core.
type LintConfig = core.LintConfig

// CacheConfig is an alias for the shared cache configuration.
type CacheConfig = core.CacheConfig

// Config holds all CLI configuration options.
type Config struct {
	OutputFormat string       `koanf:"output"`
	Verbose      bool         `koanf:"verbose"`
	Jobs         int          `koanf:"jobs"`
	Order        string       `koanf:"order"`
	Cache        *CacheConfig `koanf:"cache"`
	Lint         *LintConfig  `koanf:"lint"`

	// ProjectRoot is the directory holding the config file, or the working
	// directory when none was found. Not read from configuration.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultJobs      = 4
	DefaultOrder     = sharedcfg.DefaultOrder
	DefaultCachePath = sharedcfg.DefaultCachePath
)

// OutputFormats lists the accepted values of the output key.
var OutputFormats = []string{"auto", "text", "markdown", "json", "yaml"}

// CachePath returns the absolute cache database path.
func (c *Config) CachePath() string {
	p := DefaultCachePath
	if c.Cache != nil && c.Cache.Path != "" {
		p = c.Cache.Path
	}
	return resolvePathRelativeTo(p, c.ProjectRoot)
}

// Extensions returns the file extensions linted when walking a directory.
func (c *Config) Extensions() []string {
	if c.Lint != nil && len(c.Lint.Extensions) > 0 {
		return c.Lint.Extensions
	}
	return sharedcfg.DefaultExtensions
}
