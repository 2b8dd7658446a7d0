package config

import (
	"github.com/leapstack-labs/phraselint/pkg/core"
)

// Default configuration values.
const (
	DefaultOrder     = "rule"
	DefaultCachePath = ".phraselint/cache.db"
)

// DefaultExtensions are the file extensions linted when a directory is walked.
var DefaultExtensions = []string{".md", ".markdown", ".txt", ".rst"}

// ApplyDefaults applies default values to a ProjectConfig.
func (c *ProjectConfig) ApplyDefaults() {
	if c == nil {
		return
	}
	if c.Order == "" {
		c.Order = DefaultOrder
	}
	if c.Lint == nil {
		c.Lint = &LintConfig{}
	}
	ApplyLintDefaults(c.Lint)
	if c.Cache == nil {
		c.Cache = &core.CacheConfig{}
	}
	if c.Cache.Path == "" {
		c.Cache.Path = DefaultCachePath
	}
}

// ApplyLintDefaults fills in the default extension list.
func ApplyLintDefaults(lc *LintConfig) {
	if lc == nil {
		return
	}
	if len(lc.Extensions) == 0 {
		lc.Extensions = append([]string(nil), DefaultExtensions...)
	}
}
