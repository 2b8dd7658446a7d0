package lint

// Config controls which rules are enabled and their severity.
// A Config is applied to a Group with Group.ApplyConfig.
type Config struct {
	// DisabledRules contains rule names to skip
	DisabledRules map[string]bool

	// EnabledOnly, when non-empty, restricts linting to the listed rules
	EnabledOnly []string

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]Severity
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]Severity),
	}
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(name string) bool {
	if c == nil {
		return false
	}
	if len(c.EnabledOnly) > 0 && !contains(c.EnabledOnly, name) {
		return true
	}
	return c.DisabledRules[name]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(name string, defaultSeverity Severity) Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[name]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// Disable disables a rule by name.
func (c *Config) Disable(name string) *Config {
	c.DisabledRules[name] = true
	return c
}

// Only restricts linting to the given rules.
func (c *Config) Only(names ...string) *Config {
	c.EnabledOnly = append(c.EnabledOnly, names...)
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(name string, severity Severity) *Config {
	c.SeverityOverrides[name] = severity
	return c
}

// referencedNames returns every rule name the config mentions.
func (c *Config) referencedNames() []string {
	var names []string
	for name := range c.DisabledRules {
		names = append(names, name)
	}
	names = append(names, c.EnabledOnly...)
	for name := range c.SeverityOverrides {
		names = append(names, name)
	}
	return names
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
