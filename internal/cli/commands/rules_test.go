package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/phraselint/internal/cli/config"
	"github.com/leapstack-labs/phraselint/internal/cli/testutil"
	"github.com/leapstack-labs/phraselint/pkg/core"
	"github.com/leapstack-labs/phraselint/pkg/lint/phraseset/rules"
)

// runRules runs the rules command without a loaded configuration, so the
// environment fallback and catalog defaults apply.
func runRules(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestNewRulesCommand(t *testing.T) {
	cmd := NewRulesCommand()

	assert.Equal(t, "rules [rule-name]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"group", "status", "verbose", "format"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRulesCommand_ListAll(t *testing.T) {
	out, err := runRules(t, "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Lint Rules (22 enabled, 0 disabled)")
	for _, name := range rules.Names() {
		assert.Contains(t, out, name)
	}
	testutil.AssertNoANSI(t, out)
}

func TestRulesCommand_ShowSpecificRule(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, err := runRules(t, "--format", "text", "MootPoint")
		require.NoError(t, err)
		assert.Contains(t, out, "MootPoint")
		assert.Contains(t, out, "- mute point")
		assert.Contains(t, out, "+ moot point")
	})

	t.Run("case-insensitive name", func(t *testing.T) {
		out, err := runRules(t, "--format", "markdown", "mootpoint")
		require.NoError(t, err)
		assert.Contains(t, out, "# MootPoint")
		assert.Contains(t, out, "- **Severity:** `warning`")
		assert.Contains(t, out, "- `point is mute`")
	})

	t.Run("json", func(t *testing.T) {
		out, err := runRules(t, "--format", "json", "WholeEntire")
		require.NoError(t, err)

		var info core.RuleInfo
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, "WholeEntire", info.Name)
		assert.Equal(t, core.SeverityWarning, info.DefaultSeverity)
		assert.True(t, info.Enabled)
		assert.Contains(t, info.BadExamples, "whole entire")
	})
}

func TestRulesCommand_NotFound(t *testing.T) {
	_, err := runRules(t, "NoSuchRule")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRulesCommand_JSON(t *testing.T) {
	out, err := runRules(t, "--format", "json")
	require.NoError(t, err)

	var result RulesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, len(rules.Names()), result.Count.Total)
	assert.Equal(t, result.Count.Total, result.Count.Enabled)
	assert.Zero(t, result.Count.Disabled)
	assert.Equal(t, rules.Names(), ruleInfoNames(result.Rules), "registration order")
}

func TestRulesCommand_YAML(t *testing.T) {
	out, err := runRules(t, "--format", "yaml", "--status", "enabled")
	require.NoError(t, err)

	var result RulesOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &result))
	assert.Equal(t, len(rules.Names()), result.Count.Enabled)
}

func TestRulesCommand_Markdown(t *testing.T) {
	out, err := runRules(t, "--format", "markdown", "--verbose")
	require.NoError(t, err)

	assert.Contains(t, out, "# Lint Rules")
	assert.Contains(t, out, "| Rule | Group | Severity | Enabled | Description | Corrects |")
	assert.Contains(t, out, "**Discuss**")
	testutil.AssertValidMarkdown(t, out)
}

func TestRulesCommand_ProjectConfig(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	t.Setenv("PHRASELINT_LINT_DISABLED", "Discuss")
	_, err := config.LoadConfig("", nil)
	require.NoError(t, err)

	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--format", "json", "--status", "disabled"})
	require.NoError(t, cmd.Execute())

	var result RulesOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, []string{"Discuss"}, ruleInfoNames(result.Rules))

	buf.Reset()
	cmd = NewRulesCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--format", "json", "MootPoint"})
	require.NoError(t, cmd.Execute())

	var info core.RuleInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, core.SeverityError, info.DefaultSeverity, "severity override from .phraselint.yaml")
}

func TestFilterRulesByOptions(t *testing.T) {
	all := []core.RuleInfo{
		{Name: "A", Group: "phrases", Enabled: true},
		{Name: "B", Group: "phrases", Enabled: false},
		{Name: "C", Group: "other", Enabled: true},
	}

	tests := []struct {
		name string
		opts RulesOptions
		want []string
	}{
		{"no filter", RulesOptions{}, []string{"A", "B", "C"}},
		{"by group", RulesOptions{Group: "phrases"}, []string{"A", "B"}},
		{"enabled", RulesOptions{Status: "enabled"}, []string{"A", "C"}},
		{"disabled", RulesOptions{Status: "disabled"}, []string{"B"}},
		{"group and status", RulesOptions{Group: "other", Status: "disabled"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filterRulesByOptions(all, &tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ruleInfoNames(got))
		})
	}

	_, err := filterRulesByOptions(all, &RulesOptions{Status: "sometimes"})
	assert.Error(t, err)
}

func ruleInfoNames(infos []core.RuleInfo) []string {
	var names []string
	for _, ri := range infos {
		names = append(names, ri.Name)
	}
	return names
}
