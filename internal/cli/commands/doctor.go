package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/phraselint/internal/cache"
	"github.com/leapstack-labs/phraselint/internal/cli/config"
	"github.com/leapstack-labs/phraselint/internal/cli/output"
	intconfig "github.com/leapstack-labs/phraselint/internal/config"
	"github.com/leapstack-labs/phraselint/pkg/lint/phraseset/rules"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Health check statuses.
const (
	checkPass  = "pass"
	checkWarn  = "warn"
	checkError = "error"
	checkSkip  = "skip"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, markdown, json, yaml
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the configuration and cache",
		Long: `Check the phraselint setup for the current directory.

The doctor command reports on:
- Configuration (file found, values valid)
- Rules (catalog, names used in the config, enabled count)
- Cache (database opens, latest run)
- Files (extensions picked up when linting a directory)

Unlike other commands, doctor still runs when the configuration is invalid
and lists every problem it finds.`,
		Example: `  # Run health check
  phraselint doctor

  # Output as JSON
  phraselint doctor --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

// DoctorOutput is the structured output for the doctor command.
type DoctorOutput struct {
	ConfigFile   string        `json:"config_file,omitempty" yaml:"config_file,omitempty"`
	ProjectRoot  string        `json:"project_root" yaml:"project_root"`
	HealthChecks []HealthCheck `json:"health_checks" yaml:"health_checks"`
	Problems     int           `json:"problems" yaml:"problems"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string   `json:"name" yaml:"name"`
	Group   string   `json:"group" yaml:"group"`
	Status  string   `json:"status" yaml:"status"`
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
}

// doctor accumulates checks in run order.
type doctor struct {
	checks []HealthCheck
}

func (d *doctor) add(group, name, status string, details ...string) {
	d.checks = append(d.checks, HealthCheck{Name: name, Group: group, Status: status, Details: details})
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cfgFile := ""
	if f := cmd.Flag("config"); f != nil {
		cfgFile = f.Value.String()
	}

	var flags *pflag.FlagSet
	if cmd.HasParent() {
		flags = cmd.Root().PersistentFlags()
	}

	d := &doctor{}
	cfg, raw := d.checkConfig(cfgFile, flags)

	format := opts.Format
	if format == "" && cfg != nil {
		format = cfg.OutputFormat
	}
	mode, err := output.ParseMode(format)
	if err != nil {
		mode = output.ModeAuto
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	d.checkRules(cfg, raw)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	d.checkCache(ctx, cfg, config.GetLogger(ctx))
	d.checkExtensions(cfg)

	out := DoctorOutput{
		ConfigFile:   config.GetConfigFileUsed(),
		HealthChecks: d.checks,
		Problems:     countProblems(d.checks),
	}
	if cfg != nil {
		out.ProjectRoot = cfg.ProjectRoot
	} else {
		out.ProjectRoot, _ = os.Getwd()
	}

	if ok, err := r.Structured(out); ok {
		if err != nil {
			return err
		}
	} else if r.EffectiveMode() == output.ModeMarkdown {
		renderDoctorMarkdown(r, &out)
	} else {
		renderDoctorText(r, &out)
	}

	if out.Problems > 0 {
		return fmt.Errorf("doctor found %d problems", out.Problems)
	}
	return nil
}

// checkConfig loads the configuration the way other commands do. When that
// fails, the raw file is still parsed so the rule checks can run.
func (d *doctor) checkConfig(cfgFile string, flags *pflag.FlagSet) (*config.Config, *intconfig.ProjectConfig) {
	const group = "configuration"

	cfg, err := config.LoadConfig(cfgFile, flags)
	path := config.GetConfigFileUsed()

	switch {
	case path != "":
		d.add(group, "config file", checkPass, path)
	case err == nil:
		d.add(group, "config file", checkWarn, "no "+intconfig.ConfigFileName+" found, using defaults")
	}

	if err == nil {
		d.add(group, "config values", checkPass)
		return cfg, nil
	}
	d.add(group, "config values", checkError, splitErrors(err)...)

	if path == "" {
		return nil, nil
	}
	raw, rawErr := intconfig.LoadFile(path)
	if rawErr != nil {
		return nil, nil
	}
	return nil, raw
}

func (d *doctor) checkRules(cfg *config.Config, raw *intconfig.ProjectConfig) {
	const group = "rules"

	g, err := rules.NewGroup()
	if err != nil {
		d.add(group, "catalog", checkError, err.Error())
		return
	}
	d.add(group, "catalog", checkPass, fmt.Sprintf("%d rules", g.Len()))

	var lc *intconfig.LintConfig
	switch {
	case cfg != nil:
		lc = cfg.Lint
	case raw != nil:
		lc = raw.Lint
	default:
		d.add(group, "rule names", checkSkip, "configuration could not be read")
		return
	}

	lintCfg, err := intconfig.ToLintConfig(lc)
	if err != nil {
		d.add(group, "rule names", checkSkip, "severity overrides are invalid")
		return
	}
	if err := g.ApplyConfig(lintCfg); err != nil {
		d.add(group, "rule names", checkError, splitErrors(err)...)
		return
	}
	d.add(group, "rule names", checkPass)

	enabled := len(g.EnabledNames())
	if enabled == 0 {
		d.add(group, "enabled rules", checkWarn, "every rule is disabled")
		return
	}
	d.add(group, "enabled rules", checkPass, fmt.Sprintf("%d of %d enabled", enabled, g.Len()))
}

func (d *doctor) checkCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) {
	const group = "cache"

	if cfg == nil {
		d.add(group, "cache", checkSkip, "configuration could not be read")
		return
	}
	if !cfg.Cache.IsEnabled() {
		d.add(group, "cache", checkPass, "disabled")
		return
	}

	store, err := cache.Open(cfg.CachePath(), logger)
	if err != nil {
		d.add(group, "cache", checkError, err.Error())
		return
	}
	defer func() { _ = store.Close() }()

	details := []string{store.Path()}
	if version, err := store.MigrationVersion(); err == nil {
		details = append(details, fmt.Sprintf("schema version %d", version))
	}

	run, err := store.LatestRun(ctx)
	switch {
	case err != nil:
		d.add(group, "cache", checkError, append(details, err.Error())...)
		return
	case run == nil:
		details = append(details, "no runs recorded")
	default:
		details = append(details, fmt.Sprintf("last run %s: %d files, %d cached, %d issues",
			run.StartedAt.Local().Format("2006-01-02 15:04"), run.Files, run.Cached, run.Issues))
	}
	d.add(group, "cache", checkPass, details...)
}

func (d *doctor) checkExtensions(cfg *config.Config) {
	const group = "files"

	if cfg == nil {
		d.add(group, "extensions", checkSkip, "configuration could not be read")
		return
	}

	var bad []string
	for _, ext := range cfg.Extensions() {
		if !strings.HasPrefix(ext, ".") {
			bad = append(bad, fmt.Sprintf("%q should start with a dot", ext))
		}
	}
	if len(bad) > 0 {
		d.add(group, "extensions", checkWarn, bad...)
		return
	}
	d.add(group, "extensions", checkPass, strings.Join(cfg.Extensions(), " "))
}

// splitErrors flattens joined errors into one detail per line.
func splitErrors(err error) []string {
	var details []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			details = append(details, line)
		}
	}
	return details
}

func countProblems(checks []HealthCheck) int {
	n := 0
	for _, c := range checks {
		if c.Status == checkError {
			n++
		}
	}
	return n
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("phraselint Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			if currentGroup != "" {
				r.Println("")
			}
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.StatusSuccess.String()
		switch check.Status {
		case checkWarn:
			icon = styles.Warning.Render("!")
		case checkError:
			icon = styles.StatusFailed.String()
		case checkSkip:
			icon = styles.Muted.Render("-")
		}
		r.Println("   " + icon + " " + check.Name)

		for _, detail := range check.Details {
			r.Println(styles.Muted.Render("       " + detail))
		}
	}
	r.Println("")
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))

	if out.Problems == 0 {
		r.Success("No problems found")
		return
	}
	r.Println("   " + styles.Error.Render(fmt.Sprintf("%d problems found", out.Problems)))
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) {
	r.Println("# phraselint Health Report")
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			if currentGroup != "" {
				r.Println("")
			}
			currentGroup = check.Group
			r.Println("## " + titleCaser.String(currentGroup))
			r.Println("")
		}

		r.Printf("- **[%s]** %s\n", strings.ToUpper(check.Status), check.Name)
		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")
	r.Printf("**Problems:** %d\n", out.Problems)
}
