package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/phraselint/pkg/lexer"
	"github.com/leapstack-labs/phraselint/pkg/lint"
	"github.com/leapstack-labs/phraselint/pkg/token"
)

// wordRule flags every token equal to word and suggests repl.
type wordRule struct {
	name string
	word string
	repl string
}

func (r wordRule) Name() string                   { return r.name }
func (r wordRule) Description() string            { return "flags " + r.word }
func (r wordRule) Message() string                { return "avoid " + r.word }
func (r wordRule) DefaultSeverity() lint.Severity { return lint.SeverityWarning }

func (r wordRule) Lint(tokens []token.Token) []lint.Lint {
	var out []lint.Lint
	for i, t := range tokens {
		if t.Text == r.word {
			out = append(out, lint.Lint{
				RuleName:    r.name,
				Severity:    lint.SeverityWarning,
				Message:     r.Message(),
				Span:        t.Span,
				Start:       i,
				End:         i + 1,
				MatchedText: t.Text,
				Suggestions: []lint.Suggestion{{Text: r.repl}},
			})
		}
	}
	return out
}

func newTestGroup(t *testing.T, opts ...lint.Option) *lint.Group {
	t.Helper()
	g := lint.NewGroup(opts...)
	require.NoError(t, g.Register(wordRule{name: "Stdin", word: "stdin", repl: "standard input"}))
	require.NoError(t, g.Register(wordRule{name: "Args", word: "args", repl: "arguments"}))
	return g
}

func TestGroup_Register(t *testing.T) {
	g := newTestGroup(t)
	assert.Equal(t, []string{"Stdin", "Args"}, g.Names())
	assert.Equal(t, 2, g.Len())

	err := g.Register(wordRule{name: "Stdin", word: "x"})
	require.ErrorIs(t, err, lint.ErrDuplicateRule)
	assert.Equal(t, 2, g.Len())

	require.ErrorIs(t, g.Register(nil), lint.ErrNilRule)

	r, ok := g.Get("Args")
	require.True(t, ok)
	assert.Equal(t, "Args", r.Name())
	_, ok = g.Get("Nope")
	assert.False(t, ok)
}

func TestGroup_MustRegisterPanics(t *testing.T) {
	g := lint.NewGroup()
	assert.Panics(t, func() {
		g.MustRegister(wordRule{name: "A"}, wordRule{name: "A"})
	})
}

func TestGroup_SetEnabled(t *testing.T) {
	g := newTestGroup(t)
	src := "read args from stdin"

	require.Len(t, g.LintText(src), 2)

	require.NoError(t, g.SetEnabled("Stdin", false))
	lints := g.LintText(src)
	require.Len(t, lints, 1)
	assert.Equal(t, "Args", lints[0].RuleName)

	enabled, err := g.IsEnabled("Stdin")
	require.NoError(t, err)
	assert.False(t, enabled)

	err = g.SetEnabled("Stdni", true)
	require.ErrorIs(t, err, lint.ErrUnknownRule)
	assert.Contains(t, err.Error(), "Stdni")

	_, err = g.IsEnabled("Stdni")
	require.ErrorIs(t, err, lint.ErrUnknownRule)
}

func TestGroup_SetAll(t *testing.T) {
	g := newTestGroup(t)
	g.SetAll(false)
	assert.Empty(t, g.LintText("args stdin"))
	assert.Empty(t, g.EnabledNames())

	g.SetAll(true)
	assert.Len(t, g.LintText("args stdin"), 2)
}

func TestGroup_DefaultEnabled(t *testing.T) {
	g := newTestGroup(t, lint.WithDefaultEnabled(false))
	assert.Empty(t, g.LintText("args stdin"))
	for _, info := range g.Rules() {
		assert.False(t, info.Enabled)
	}
}

func TestGroup_Order(t *testing.T) {
	src := "args then stdin then args"

	byRule := newTestGroup(t).LintText(src)
	require.Len(t, byRule, 3)
	assert.Equal(t, []string{"Stdin", "Args", "Args"}, ruleNames(byRule))

	g := newTestGroup(t, lint.WithOrder(lint.OrderByPosition))
	assert.Equal(t, lint.OrderByPosition, g.Order())
	byPos := g.LintText(src)
	assert.Equal(t, []string{"Args", "Stdin", "Args"}, ruleNames(byPos))
}

func TestGroup_LintEmpty(t *testing.T) {
	g := newTestGroup(t)
	assert.Empty(t, g.Lint(nil))
	assert.Empty(t, g.LintText(""))
	assert.Empty(t, g.LintText("nothing to see"))
}

func TestGroup_Idempotent(t *testing.T) {
	g := newTestGroup(t)
	toks := lexer.Tokenize("stdin args stdin")
	assert.Equal(t, g.Lint(toks), g.Lint(toks))
}

func TestGroup_ApplyConfig(t *testing.T) {
	t.Run("disable and severity", func(t *testing.T) {
		g := newTestGroup(t)
		cfg := lint.NewConfig().Disable("Stdin").SetSeverity("Args", lint.SeverityError)
		require.NoError(t, g.ApplyConfig(cfg))

		lints := g.LintText("args stdin")
		require.Len(t, lints, 1)
		assert.Equal(t, lint.SeverityError, lints[0].Severity)

		infos := g.Rules()
		assert.False(t, infos[0].Enabled)
		assert.Equal(t, lint.SeverityError, infos[1].DefaultSeverity)
	})

	t.Run("enabled only", func(t *testing.T) {
		g := newTestGroup(t)
		require.NoError(t, g.ApplyConfig(lint.NewConfig().Only("Args")))
		assert.Equal(t, []string{"Args"}, g.EnabledNames())
	})

	t.Run("unknown names leave group untouched", func(t *testing.T) {
		g := newTestGroup(t)
		cfg := lint.NewConfig().Disable("Stdin").Disable("Bogus").SetSeverity("Other", lint.SeverityHint)
		err := g.ApplyConfig(cfg)
		require.ErrorIs(t, err, lint.ErrUnknownRule)
		assert.Contains(t, err.Error(), "Bogus")
		assert.Contains(t, err.Error(), "Other")
		assert.Equal(t, []string{"Stdin", "Args"}, g.EnabledNames())
	})

	t.Run("nil config", func(t *testing.T) {
		g := newTestGroup(t)
		assert.NoError(t, g.ApplyConfig(nil))
	})
}

func TestParseOrderPolicy(t *testing.T) {
	tests := []struct {
		in   string
		want lint.OrderPolicy
		ok   bool
	}{
		{"rule", lint.OrderByRule, true},
		{"", lint.OrderByRule, true},
		{"position", lint.OrderByPosition, true},
		{"random", lint.OrderByRule, false},
	}
	for _, tt := range tests {
		got, ok := lint.ParseOrderPolicy(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
	assert.Equal(t, "position", lint.OrderByPosition.String())
}

func TestFilterBySeverity(t *testing.T) {
	lints := []lint.Lint{
		{RuleName: "a", Severity: lint.SeverityError},
		{RuleName: "b", Severity: lint.SeverityWarning},
		{RuleName: "c", Severity: lint.SeverityHint},
	}
	assert.Equal(t, []string{"a"}, ruleNames(lint.FilterBySeverity(lints, lint.SeverityError)))
	assert.Equal(t, []string{"a", "b"}, ruleNames(lint.FilterBySeverity(lints, lint.SeverityWarning)))
	assert.Len(t, lint.FilterBySeverity(lints, lint.SeverityHint), 3)
}

func ruleNames(lints []lint.Lint) []string {
	var names []string
	for _, l := range lints {
		names = append(names, l.RuleName)
	}
	return names
}
