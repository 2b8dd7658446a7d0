package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/leapstack-labs/phraselint/internal/cli/config"
	"github.com/leapstack-labs/phraselint/internal/cli/output"
	intconfig "github.com/leapstack-labs/phraselint/internal/config"
	"github.com/leapstack-labs/phraselint/pkg/lint"
	"github.com/leapstack-labs/phraselint/pkg/lint/phraseset/rules"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Group    *lint.Group
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with the rule group built from
// the catalog and configured from the project's lint section.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cmdCtx := NewCommandContextWithoutGroup(cmd)

	g, err := buildGroup(cmdCtx.Cfg)
	if err != nil {
		return nil, err
	}
	cmdCtx.Group = g

	cmdCtx.Logger.Debug("rule group ready",
		slog.Int("rules", g.Len()),
		slog.Int("enabled", len(g.EnabledNames())),
		slog.String("order", g.Order().String()))

	return cmdCtx, nil
}

// NewCommandContextWithoutGroup creates a CommandContext without a rule group.
// Useful for commands that only render output.
func NewCommandContextWithoutGroup(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// WithFormat replaces the renderer when a command-level format flag is set.
func (c *CommandContext) WithFormat(cmd *cobra.Command, format string) error {
	if format == "" {
		return nil
	}
	mode, err := output.ParseMode(format)
	if err != nil {
		return err
	}
	c.Renderer = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
	return nil
}

// buildGroup compiles the phrase catalog and applies the configured order,
// enable/disable lists and severity overrides.
func buildGroup(cfg *config.Config) (*lint.Group, error) {
	order, ok := lint.ParseOrderPolicy(cfg.Order)
	if !ok {
		return nil, fmt.Errorf("unknown order %q", cfg.Order)
	}

	g, err := rules.NewGroup(lint.WithOrder(order))
	if err != nil {
		return nil, err
	}

	settings, err := cfg.LintSettings()
	if err != nil {
		return nil, err
	}
	if err := g.ApplyConfig(settings); err != nil {
		return nil, fmt.Errorf("lint configuration: %w", err)
	}
	return g, nil
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	jobs, err := strconv.Atoi(os.Getenv("PHRASELINT_JOBS"))
	if err != nil || jobs < 1 {
		jobs = config.DefaultJobs
	}
	cwd, _ := os.Getwd()

	return &config.Config{
		OutputFormat: os.Getenv("PHRASELINT_OUTPUT"),
		Verbose:      os.Getenv("PHRASELINT_VERBOSE") == "true",
		Jobs:         jobs,
		Order:        getEnvOrDefault("PHRASELINT_ORDER", config.DefaultOrder),
		Cache:        &config.CacheConfig{Path: config.DefaultCachePath},
		Lint:         &config.LintConfig{Extensions: intconfig.DefaultExtensions},
		ProjectRoot:  cwd,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
