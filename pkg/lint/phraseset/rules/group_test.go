package rules

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/phraselint/pkg/lexer"
	"github.com/leapstack-labs/phraselint/pkg/lint"
)

// expectation is one authored bad phrase and the suggestions it must produce.
type expectation struct {
	rule string
	bad  string
	good []string
}

func catalogExpectations() []expectation {
	var out []expectation
	for _, def := range oneToOneRules {
		for _, p := range def.Pairs {
			out = append(out, expectation{rule: def.Name, bad: p.Bad, good: []string{p.Good}})
		}
	}
	for _, def := range manyToManyRules {
		for _, g := range def.Groups {
			for _, bad := range g.Bad {
				out = append(out, expectation{rule: def.Name, bad: bad, good: g.Good})
			}
		}
	}
	return out
}

func TestCatalog_EveryBadPhraseAlone(t *testing.T) {
	g, err := NewGroup()
	require.NoError(t, err)

	for _, tt := range catalogExpectations() {
		t.Run(tt.rule+"/"+tt.bad, func(t *testing.T) {
			lints := g.LintText(tt.bad)
			require.Len(t, lints, 1)
			assert.Equal(t, tt.rule, lints[0].RuleName)
			assert.Equal(t, tt.good, lints[0].SuggestionTexts())
			assert.Equal(t, tt.bad, lints[0].MatchedText)
		})
	}
}

func TestCatalog_GoodPhrasesAreClean(t *testing.T) {
	g := MustNewGroup()

	for _, tt := range catalogExpectations() {
		for _, good := range tt.good {
			assert.Empty(t, g.LintText(good), "correction %q is itself flagged", good)
		}
	}
}

func TestCatalog_Names(t *testing.T) {
	g := MustNewGroup()
	assert.Equal(t, Names(), g.Names())
	assert.Equal(t, len(oneToOneRules)+len(manyToManyRules), g.Len())
	assert.Equal(t, "Ado", g.Names()[0])
	assert.Equal(t, "WorseOrWorst", g.Names()[g.Len()-1])

	for _, info := range g.Rules() {
		assert.True(t, info.Enabled, info.Name)
		assert.NotEmpty(t, info.Message, info.Name)
		assert.NotEmpty(t, info.Description, info.Name)
		assert.NotEmpty(t, info.BadExamples, info.Name)
	}
}

func TestCatalog_Properties(t *testing.T) {
	g := MustNewGroup()

	tests := []struct {
		name string
		text string
		rule string
		want []string
	}{
		{"one-to-one keeps its own index", "Let's discuss about it.", "Discuss", []string{"discuss"}},
		{"many-to-many returns the whole list", "I like how it look like.", "HowItLooksLike", []string{"how it looks", "what it looks like"}},
		{"uppercase input", "HONE IN ON", "HomeInOn", []string{"home in on"}},
		{"longest match", "the a whole entire day", "WholeEntire", []string{"a whole", "an entire"}},
		{"possessive", "on the client's side", "ClientOrServerSide", []string{"client-side"}},
		{"typographic apostrophe", "on the server’s side", "ClientOrServerSide", []string{"server-side"}},
		{"hyphenated", "the worse-case scenario", "WorseOrWorst", []string{"worst-case scenario"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lints := g.LintText(tt.text)
			require.Len(t, lints, 1)
			assert.Equal(t, tt.rule, lints[0].RuleName)
			assert.Equal(t, tt.want, lints[0].SuggestionTexts())
		})
	}
}

func TestCatalog_CaseInsensitiveSameLint(t *testing.T) {
	g := MustNewGroup()
	lower := g.LintText("hone in on")
	upper := g.LintText("HONE IN ON")
	require.Len(t, lower, 1)
	require.Len(t, upper, 1)

	assert.Equal(t, lower[0].Span, upper[0].Span)
	assert.Equal(t, lower[0].Start, upper[0].Start)
	assert.Equal(t, lower[0].End, upper[0].End)
	assert.Equal(t, lower[0].Suggestions, upper[0].Suggestions)
}

func TestCatalog_PiggyBagBoundaries(t *testing.T) {
	g := MustNewGroup()

	for _, text := range []string{"piggy bags", "piggybag", "piggy-bag", "a piggy bank"} {
		assert.Empty(t, g.LintText(text), text)
	}
	require.Len(t, g.LintText("we piggy bag on it"), 1)
}

func TestCatalog_DisableIsolation(t *testing.T) {
	g := MustNewGroup()
	text := "We discuss about this mute point in details."

	before := g.LintText(text)
	require.Len(t, before, 3)

	require.NoError(t, g.SetEnabled("MootPoint", false))
	after := g.LintText(text)
	require.Len(t, after, 2)
	for _, l := range after {
		assert.NotEqual(t, "MootPoint", l.RuleName)
	}

	var kept []lint.Lint
	for _, l := range before {
		if l.RuleName != "MootPoint" {
			kept = append(kept, l)
		}
	}
	assert.Equal(t, kept, after, "other rules unaffected")

	require.NoError(t, g.SetEnabled("MootPoint", true))
	assert.Equal(t, before, g.LintText(text))
}

func TestCatalog_SetAll(t *testing.T) {
	g := MustNewGroup()
	text := "We discuss about it."

	g.SetAll(false)
	assert.Empty(t, g.LintText(text))
	assert.Empty(t, g.EnabledNames())

	g.SetAll(true)
	assert.Len(t, g.LintText(text), 1)
	assert.Equal(t, g.Names(), g.EnabledNames())
}

func TestCatalog_DefaultDisabled(t *testing.T) {
	g := MustNewGroup(lint.WithDefaultEnabled(false))
	assert.Empty(t, g.LintText("discuss about"))

	require.NoError(t, g.SetEnabled("Discuss", true))
	assert.Len(t, g.LintText("discuss about"), 1)
}

func TestCatalog_Idempotent(t *testing.T) {
	g := MustNewGroup()
	toks := lexer.Tokenize("I have went to discuss about the worst than usual change of tact. Much adieu!")

	first := g.Lint(toks)
	second := g.Lint(toks)
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestCatalog_OrderPolicies(t *testing.T) {
	// Discuss is registered before MootPoint but appears later in the text.
	text := "A mute point: we discuss about it."

	byRule := MustNewGroup().LintText(text)
	require.Len(t, byRule, 2)
	assert.Equal(t, "Discuss", byRule[0].RuleName)
	assert.Equal(t, "MootPoint", byRule[1].RuleName)

	byPos := MustNewGroup(lint.WithOrder(lint.OrderByPosition)).LintText(text)
	require.Len(t, byPos, 2)
	assert.Equal(t, "MootPoint", byPos[0].RuleName)
	assert.Equal(t, "Discuss", byPos[1].RuleName)
	assert.Less(t, byPos[0].Start, byPos[1].Start)
}

func TestCatalog_ConcurrentLintAndToggle(t *testing.T) {
	g := MustNewGroup()
	toks := lexer.Tokenize("discuss about a mute point")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				lints := g.Lint(toks)
				assert.LessOrEqual(t, len(lints), 2)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			_ = g.SetEnabled("MootPoint", j%2 == 0)
		}
	}()
	wg.Wait()
}

func TestCompile(t *testing.T) {
	matchers, err := Compile()
	require.NoError(t, err)
	assert.Len(t, matchers, len(Names()))
}
