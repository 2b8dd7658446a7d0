package core

// LintConfig holds lint rule configuration.
type LintConfig struct {
	// Disabled contains rule names to disable
	Disabled []string `koanf:"disabled"`

	// EnabledOnly, when non-empty, disables every rule not listed
	EnabledOnly []string `koanf:"enabled_only"`

	// Severity maps rule name to severity override (error, warning, info, hint)
	Severity map[string]string `koanf:"severity"`

	// Extensions lists file extensions picked up when a directory is linted
	Extensions []string `koanf:"extensions"`
}

// CacheConfig holds configuration for the on-disk result cache.
type CacheConfig struct {
	// Enabled controls whether lint results are cached (default: false)
	Enabled *bool `koanf:"enabled"`

	// Path is the SQLite database file, relative to the project root
	Path string `koanf:"path"`
}

// IsEnabled returns whether the cache is enabled.
func (c *CacheConfig) IsEnabled() bool {
	if c == nil || c.Enabled == nil {
		return false
	}
	return *c.Enabled
}
