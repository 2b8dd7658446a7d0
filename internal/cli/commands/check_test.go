package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/phraselint/internal/cli/config"
	"github.com/leapstack-labs/phraselint/internal/cli/output"
	"github.com/leapstack-labs/phraselint/internal/cli/testutil"
	"github.com/leapstack-labs/phraselint/pkg/lint/phraseset/rules"
)

func newTestSession(t *testing.T) (*checkSession, *testutil.TestRenderer) {
	t.Helper()
	tr := testutil.NewTestRenderer(output.ModeText, false)
	return &checkSession{group: rules.MustNewGroup(), r: tr.Renderer}, tr
}

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	assert.Equal(t, "check [text...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Example)
	assert.NotNil(t, cmd.Flags().Lookup("format"))
}

func TestCheckCommand_Args(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	t.Run("lints found", func(t *testing.T) {
		cmd := NewCheckCommand()
		buf := new(bytes.Buffer)
		cmd.SilenceUsage = true
		cmd.SetOut(buf)
		cmd.SetArgs([]string{"-f", "json", "It is a", "mute point."})

		err := cmd.Execute()
		require.ErrorIs(t, err, ErrLintIssues)

		var got CheckOutput
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "It is a mute point.", got.Text)
		assert.Equal(t, "It is a moot point.", got.Fixed)
		require.Len(t, got.Lints, 1)
		assert.Equal(t, "MootPoint", got.Lints[0].Rule)
	})

	t.Run("clean", func(t *testing.T) {
		cmd := NewCheckCommand()
		buf := new(bytes.Buffer)
		cmd.SilenceUsage = true
		cmd.SetOut(buf)
		cmd.SetArgs([]string{"-f", "text", "All good here."})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, buf.String(), "No issues")
	})
}

func TestCheckSession_Check(t *testing.T) {
	s, tr := newTestSession(t)

	n := s.check("We will discuss about a whole entire plan.")
	assert.Equal(t, 2, n)

	out := tr.Output()
	assert.Contains(t, out, "Discuss")
	assert.Contains(t, out, "WholeEntire")
	assert.Contains(t, out, "1:9")
	assert.Contains(t, out, "fixed: We will discuss a whole plan.")
	testutil.AssertNoANSI(t, out)
}

func TestCheckSession_DotCommands(t *testing.T) {
	s, tr := newTestSession(t)

	tests := []struct {
		line       string
		wantQuit   bool
		wantOut    string
		wantErrOut string
	}{
		{line: ".help", wantOut: ".enable <rule...>"},
		{line: ".disable MootPoint", wantOut: "MootPoint disabled"},
		{line: ".disable Nope", wantErrOut: "unknown rule"},
		{line: ".enable", wantErrOut: "usage: .enable"},
		{line: ".all maybe", wantErrOut: "usage: .all on|off"},
		{line: ".bogus", wantErrOut: "unknown command: .bogus"},
		{line: ".rules", wantOut: "✗ MootPoint"},
		{line: ".all off", wantOut: "0 rules enabled"},
		{line: ".all on", wantOut: "22 rules enabled"},
		{line: ".quit", wantQuit: true},
		{line: ".EXIT", wantQuit: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			tr.Reset()
			assert.Equal(t, tt.wantQuit, s.handleLine(tt.line))
			if tt.wantOut != "" {
				assert.Contains(t, tr.Output(), tt.wantOut)
			}
			if tt.wantErrOut != "" {
				assert.Contains(t, tr.ErrorOutput(), tt.wantErrOut)
			}
		})
	}
}

func TestCheckSession_ToggleAffectsLints(t *testing.T) {
	s, tr := newTestSession(t)

	assert.False(t, s.handleLine("  "))
	assert.Empty(t, tr.Output())

	s.handleLine(".disable MootPoint")
	assert.Zero(t, s.check("a mute point"))

	s.handleLine(".enable MootPoint")
	assert.Equal(t, 1, s.check("a mute point"))
}

func TestHistoryPath(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, ".phraselint", "cache.db")

	assert.Empty(t, historyPath(cachePath), "no history until the directory exists")

	require.NoError(t, os.MkdirAll(filepath.Dir(cachePath), 0750))
	assert.Equal(t, filepath.Join(dir, ".phraselint", checkHistoryFile), historyPath(cachePath))
}

func TestNewRuleCompleter(t *testing.T) {
	c := newRuleCompleter([]string{"Discuss", "MootPoint"})

	var names []string
	for _, child := range c.GetChildren() {
		names = append(names, string(child.GetName()))
	}
	assert.Contains(t, names, ".enable ")
	assert.Contains(t, names, ".quit ")
}
