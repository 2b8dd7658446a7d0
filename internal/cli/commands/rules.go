package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/phraselint/internal/cli/output"
	"github.com/leapstack-labs/phraselint/pkg/core"
	"github.com/spf13/cobra"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Status  string // Filter by status: enabled, disabled
	Verbose bool   // Show descriptions and examples
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-name]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

The enabled column reflects the project configuration (lint.disabled,
lint.enabled_only) and severities include lint.severity overrides.
Use --verbose to see descriptions and the phrases each rule corrects.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON/YAML: Machine-readable format`,
		Example: `  # List all rules
  phraselint rules

  # Show details for a specific rule
  phraselint rules MootPoint

  # List disabled rules only
  phraselint rules --status disabled

  # Show full documentation
  phraselint rules -V

  # Output as JSON
  phraselint rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status: enabled, disabled")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	_ = cmd.RegisterFlagCompletionFunc("status", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"enabled", "disabled"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if err := cmdCtx.WithFormat(cmd, opts.Format); err != nil {
		return err
	}
	r := cmdCtx.Renderer

	rules, err := filterRulesByOptions(cmdCtx.Group.Rules(), opts)
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		_, err := r.Structured(newRulesOutput(rules))
		return err
	case output.ModeMarkdown:
		return listRulesMarkdown(r, rules, opts.Verbose)
	default:
		return listRulesText(r, rules, opts.Verbose)
	}
}

// filterRulesByOptions keeps registration order.
func filterRulesByOptions(rules []core.RuleInfo, opts *RulesOptions) ([]core.RuleInfo, error) {
	switch opts.Status {
	case "", "enabled", "disabled":
	default:
		return nil, fmt.Errorf("unknown status %q (want enabled or disabled)", opts.Status)
	}
	if opts.Group == "" && opts.Status == "" {
		return rules, nil
	}

	var filtered []core.RuleInfo
	for _, r := range rules {
		if opts.Group != "" && r.Group != opts.Group {
			continue
		}
		if opts.Status == "enabled" && !r.Enabled || opts.Status == "disabled" && r.Enabled {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered, nil
}

func showRule(cmd *cobra.Command, name string, opts *RulesOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if err := cmdCtx.WithFormat(cmd, opts.Format); err != nil {
		return err
	}
	r := cmdCtx.Renderer

	var rule *core.RuleInfo
	for _, ri := range cmdCtx.Group.Rules() {
		if strings.EqualFold(ri.Name, name) {
			rule = &ri
			break
		}
	}
	if rule == nil {
		return fmt.Errorf("rule %q not found", name)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		_, err := r.Structured(rule)
		return err
	case output.ModeMarkdown:
		return showRuleMarkdown(r, rule)
	default:
		return showRuleText(r, rule)
	}
}

// listRulesText outputs rules as a styled table.
func listRulesText(r *output.Renderer, rules []core.RuleInfo, verbose bool) error {
	styles := r.Styles()
	counts := countRules(rules)

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d enabled, %d disabled)", counts.Enabled, counts.Disabled)))
	r.Println("")

	header := []string{"Rule", "Group", "Severity", "Enabled"}
	if verbose {
		header = append(header, "Description")
	}
	rows := make([][]string, 0, len(rules))
	for _, rule := range rules {
		row := []string{
			rule.Name,
			rule.Group,
			getSeverityStyle(styles, rule.DefaultSeverity).Render(rule.DefaultSeverity.String()),
			enabledMark(rule.Enabled),
		}
		if verbose {
			row = append(row, rule.Description)
		}
		rows = append(rows, row)
	}
	r.Table(header, rows)

	r.Println("")
	r.Println(styles.Muted.Render("Use 'phraselint rules <rule-name>' for detailed documentation"))
	r.Println("")

	return nil
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, rules []core.RuleInfo, verbose bool) error {
	r.Println("# Lint Rules")
	r.Println("")

	header := []string{"Rule", "Group", "Severity", "Enabled"}
	if verbose {
		header = append(header, "Description", "Corrects")
	}
	rows := make([][]string, 0, len(rules))
	for _, rule := range rules {
		row := []string{
			"**" + rule.Name + "**",
			rule.Group,
			"`" + rule.DefaultSeverity.String() + "`",
			enabledMark(rule.Enabled),
		}
		if verbose {
			row = append(row, rule.Description, "`"+strings.Join(rule.BadExamples, "`, `")+"`")
		}
		rows = append(rows, row)
	}
	r.Table(header, rows)
	r.Println("")
	return nil
}

// RulesOutput is the structured output for rules listing.
type RulesOutput struct {
	Rules []core.RuleInfo `json:"rules" yaml:"rules"`
	Count RulesCount      `json:"count" yaml:"count"`
}

// RulesCount tallies rules by status.
type RulesCount struct {
	Enabled  int `json:"enabled" yaml:"enabled"`
	Disabled int `json:"disabled" yaml:"disabled"`
	Total    int `json:"total" yaml:"total"`
}

func newRulesOutput(rules []core.RuleInfo) RulesOutput {
	if rules == nil {
		rules = []core.RuleInfo{}
	}
	return RulesOutput{Rules: rules, Count: countRules(rules)}
}

func countRules(rules []core.RuleInfo) RulesCount {
	c := RulesCount{Total: len(rules)}
	for _, rule := range rules {
		if rule.Enabled {
			c.Enabled++
		} else {
			c.Disabled++
		}
	}
	return c
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule *core.RuleInfo) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(rule.Name))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), rule.Group)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"),
		getSeverityStyle(styles, rule.DefaultSeverity).Render(rule.DefaultSeverity.String()))
	r.Printf("  %s: %s\n", styles.Bold.Render("Enabled"), enabledMark(rule.Enabled))
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + rule.Description)
	r.Println("")

	r.Println(styles.Bold.Render("Message"))
	r.Println("  " + rule.Message)
	r.Println("")

	if len(rule.BadExamples) > 0 {
		r.Println(styles.Bold.Render("Corrects"))
		for _, ex := range rule.BadExamples {
			r.Println(styles.Error.Render("  - " + ex))
		}
		r.Println("")
	}

	if len(rule.GoodExamples) > 0 {
		r.Println(styles.Bold.Render("Suggests"))
		for _, ex := range rule.GoodExamples {
			r.Println(styles.Success.Render("  + " + ex))
		}
		r.Println("")
	}

	return nil
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule *core.RuleInfo) error {
	r.Println(output.FormatHeader(1, rule.Name))
	r.Println("")
	r.Println(output.FormatKeyValue("Group", rule.Group))
	r.Println(output.FormatKeyValue("Severity", "`"+rule.DefaultSeverity.String()+"`"))
	r.Println(output.FormatKeyValue("Enabled", enabledMark(rule.Enabled)))
	r.Println("")
	r.Println(rule.Description)
	r.Println("")
	r.Println("> " + rule.Message)
	r.Println("")

	if len(rule.BadExamples) > 0 {
		r.Println(output.FormatHeader(2, "Corrects"))
		r.Println("")
		for _, ex := range rule.BadExamples {
			r.Println("- `" + ex + "`")
		}
		r.Println("")
	}

	if len(rule.GoodExamples) > 0 {
		r.Println(output.FormatHeader(2, "Suggests"))
		r.Println("")
		for _, ex := range rule.GoodExamples {
			r.Println("- `" + ex + "`")
		}
		r.Println("")
	}

	return nil
}

// Helper functions

func getSeverityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	case core.SeverityInfo:
		return styles.Info
	case core.SeverityHint:
		return styles.Muted
	default:
		return styles.Bold
	}
}

func enabledMark(enabled bool) string {
	if enabled {
		return "yes"
	}
	return "no"
}
