package config

import (
	"errors"
	"fmt"
	"slices"

	sharedcfg "github.com/leapstack-labs/phraselint/internal/config"
	"github.com/leapstack-labs/phraselint/pkg/lint"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.OutputFormat != "" && !slices.Contains(OutputFormats, c.OutputFormat) {
		errs = append(errs, fmt.Errorf("unknown output format %q (want one of %v)", c.OutputFormat, OutputFormats))
	}
	if _, ok := lint.ParseOrderPolicy(c.Order); !ok {
		errs = append(errs, fmt.Errorf("unknown order %q (want rule or position)", c.Order))
	}
	if c.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs must be at least 1, got %d", c.Jobs))
	}
	if _, err := sharedcfg.ToLintConfig(c.Lint); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LintSettings converts the lint section into a lint.Config.
func (c *Config) LintSettings() (*lint.Config, error) {
	return sharedcfg.ToLintConfig(c.Lint)
}
