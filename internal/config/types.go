// Package config provides shared configuration types for phraselint.
// This package is decoupled from CLI concerns and can be used by the LSP
// and other tools that need to load project configuration.
package config

import (
	"fmt"

	"github.com/leapstack-labs/phraselint/pkg/core"
	"github.com/leapstack-labs/phraselint/pkg/lint"
)

// LintConfig is an alias for the shared lint configuration.
type LintConfig = core.LintConfig

// ProjectConfig holds the project configuration needed by tools like the LSP.
// This is a subset of the full CLI Config.
type ProjectConfig struct {
	Order string            `koanf:"order"`
	Lint  *LintConfig       `koanf:"lint"`
	Cache *core.CacheConfig `koanf:"cache"`
}

// ToLintConfig converts the lint section into a lint.Config ready for
// Group.ApplyConfig. Unparseable severities are returned as an error.
func ToLintConfig(lc *LintConfig) (*lint.Config, error) {
	cfg := lint.NewConfig()
	if lc == nil {
		return cfg, nil
	}
	for _, name := range lc.Disabled {
		cfg.Disable(name)
	}
	if len(lc.EnabledOnly) > 0 {
		cfg.Only(lc.EnabledOnly...)
	}
	for name, raw := range lc.Severity {
		sev, ok := lint.ParseSeverity(raw)
		if !ok {
			return nil, &SeverityError{Rule: name, Value: raw}
		}
		cfg.SetSeverity(name, sev)
	}
	return cfg, nil
}

// SeverityError reports a severity override that is not a known level.
type SeverityError struct {
	Rule  string
	Value string
}

func (e *SeverityError) Error() string {
	return fmt.Sprintf("invalid severity %q for rule %q (want error, warning, info or hint)", e.Value, e.Rule)
}
