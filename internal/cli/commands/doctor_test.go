package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/phraselint/internal/cli/config"
	"github.com/leapstack-labs/phraselint/internal/cli/testutil"
)

// runDoctorIn runs the doctor command in dir and decodes its JSON output.
func runDoctorIn(t *testing.T, dir string) (DoctorOutput, error) {
	t.Helper()
	t.Chdir(dir)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewDoctorCommand()
	buf := new(bytes.Buffer)
	cmd.SilenceUsage = true
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--format", "json"})

	err := cmd.Execute()

	var out DoctorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out), "output: %s", buf.String())
	return out, err
}

func findCheck(t *testing.T, out DoctorOutput, name string) HealthCheck {
	t.Helper()
	for _, c := range out.HealthChecks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no %q check in %+v", name, out.HealthChecks)
	return HealthCheck{}
}

func writeProjectConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".phraselint.yaml"), []byte(content), 0600))
}

func TestNewDoctorCommand(t *testing.T) {
	cmd := NewDoctorCommand()

	assert.Equal(t, "doctor", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Example)
	assert.NotNil(t, cmd.Flags().Lookup("format"))
}

func TestDoctor_CleanProject(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, err := runDoctorIn(t, dir)
	require.NoError(t, err)

	assert.Zero(t, out.Problems)
	assert.Equal(t, filepath.Join(dir, ".phraselint.yaml"), out.ConfigFile)

	var names []string
	for _, c := range out.HealthChecks {
		names = append(names, c.Name)
		assert.NotEqual(t, checkError, c.Status, "check %q", c.Name)
	}
	assert.Equal(t, []string{
		"config file", "config values", "catalog", "rule names", "enabled rules", "cache", "extensions",
	}, names)

	assert.Equal(t, []string{"22 rules"}, findCheck(t, out, "catalog").Details)
	assert.Equal(t, []string{"disabled"}, findCheck(t, out, "cache").Details)
	assert.Equal(t, []string{".md .txt"}, findCheck(t, out, "extensions").Details)
}

func TestDoctor_NoConfigFile(t *testing.T) {
	dir := t.TempDir()

	out, err := runDoctorIn(t, dir)
	require.NoError(t, err)

	assert.Empty(t, out.ConfigFile)
	assert.Equal(t, checkWarn, findCheck(t, out, "config file").Status)
	assert.Equal(t, checkPass, findCheck(t, out, "enabled rules").Status)
}

func TestDoctor_InvalidSeverity(t *testing.T) {
	dir := t.TempDir()
	writeProjectConfig(t, dir, "lint:\n  severity:\n    MootPoint: loud\n")

	out, err := runDoctorIn(t, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "doctor found")

	values := findCheck(t, out, "config values")
	assert.Equal(t, checkError, values.Status)
	require.NotEmpty(t, values.Details)
	assert.Contains(t, values.Details[0], "loud")

	assert.Equal(t, checkSkip, findCheck(t, out, "rule names").Status)
	assert.Equal(t, checkSkip, findCheck(t, out, "cache").Status)
	assert.Equal(t, 1, out.Problems)
}

func TestDoctor_UnknownRuleName(t *testing.T) {
	dir := t.TempDir()
	writeProjectConfig(t, dir, "lint:\n  disabled: [Discuss, NoSuchRule]\n")

	out, err := runDoctorIn(t, dir)
	require.Error(t, err)

	names := findCheck(t, out, "rule names")
	assert.Equal(t, checkError, names.Status)
	require.Len(t, names.Details, 1)
	assert.Contains(t, names.Details[0], "NoSuchRule")
	assert.Equal(t, 1, out.Problems)
}

func TestDoctor_EnabledCount(t *testing.T) {
	dir := t.TempDir()
	var disabled bytes.Buffer
	disabled.WriteString("lint:\n  disabled:\n")
	for _, name := range []string{
		"Discuss", "MootPoint", "WholeEntire",
	} {
		disabled.WriteString("    - " + name + "\n")
	}
	writeProjectConfig(t, dir, disabled.String())

	out, err := runDoctorIn(t, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"19 of 22 enabled"}, findCheck(t, out, "enabled rules").Details)
}

func TestDoctor_CacheLatestRun(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	writeProjectConfig(t, dir, testutil.ProjectConfig+"cache:\n  enabled: true\n")

	_, err := runLintIn(t, dir, nil, "-f", "json")
	require.ErrorIs(t, err, ErrLintIssues)

	out, err := runDoctorIn(t, dir)
	require.NoError(t, err)

	cache := findCheck(t, out, "cache")
	assert.Equal(t, checkPass, cache.Status)
	require.Len(t, cache.Details, 3)
	assert.Equal(t, filepath.Join(dir, config.DefaultCachePath), cache.Details[0])
	assert.Contains(t, cache.Details[1], "schema version")
	assert.Contains(t, cache.Details[2], "last run")
	assert.Contains(t, cache.Details[2], "3 files, 0 cached, 3 issues")
}

func TestSplitErrors(t *testing.T) {
	err := errors.Join(errors.New("first"), errors.New("  second  "), errors.New(""))
	assert.Equal(t, []string{"first", "second"}, splitErrors(err))
}

func TestCountProblems(t *testing.T) {
	checks := []HealthCheck{
		{Name: "a", Status: checkPass},
		{Name: "b", Status: checkError},
		{Name: "c", Status: checkWarn},
		{Name: "d", Status: checkError},
		{Name: "e", Status: checkSkip},
	}
	assert.Equal(t, 2, countProblems(checks))
}

func TestRenderDoctorText(t *testing.T) {
	tr := testutil.NewTestRendererText()
	out := &DoctorOutput{
		HealthChecks: []HealthCheck{
			{Name: "config file", Group: "configuration", Status: checkPass, Details: []string{"/p/.phraselint.yaml"}},
			{Name: "rule names", Group: "rules", Status: checkError, Details: []string{"unknown rule"}},
		},
		Problems: 1,
	}

	renderDoctorText(tr.Renderer, out)

	text := tr.Output()
	testutil.AssertNoANSI(t, text)
	testutil.AssertContains(t, text, "Configuration")
	testutil.AssertContains(t, text, "Rules")
	testutil.AssertContains(t, text, "/p/.phraselint.yaml")
	testutil.AssertContains(t, text, "1 problems found")
}

func TestRenderDoctorMarkdown(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	out := &DoctorOutput{
		HealthChecks: []HealthCheck{
			{Name: "cache", Group: "cache", Status: checkSkip},
		},
	}

	renderDoctorMarkdown(tr.Renderer, out)

	md := tr.Output()
	testutil.AssertValidMarkdown(t, md)
	testutil.AssertContains(t, md, "## Cache")
	testutil.AssertContains(t, md, "- **[SKIP]** cache")
	testutil.AssertContains(t, md, "**Problems:** 0")
}
