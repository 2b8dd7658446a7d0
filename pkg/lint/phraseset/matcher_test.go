package phraseset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/phraselint/pkg/lexer"
	"github.com/leapstack-labs/phraselint/pkg/lint"
	"github.com/leapstack-labs/phraselint/pkg/lint/phraseset"
	"github.com/leapstack-labs/phraselint/pkg/token"
)

func discussRule(t *testing.T) *phraseset.Matcher {
	t.Helper()
	m, err := phraseset.Compile(mustOneToOne(t, "Discuss", []phraseset.Pair{
		{Bad: "discuss about", Good: "discuss"},
		{Bad: "discussed about", Good: "discussed"},
	}))
	require.NoError(t, err)
	return m
}

func mustOneToOne(t *testing.T, name string, pairs []phraseset.Pair) *phraseset.CorrectionRule {
	t.Helper()
	r, err := phraseset.OneToOneRule(name, pairs, "msg", "desc")
	require.NoError(t, err)
	return r
}

func mustManyToMany(t *testing.T, name string, defs []phraseset.GroupDef) *phraseset.Matcher {
	t.Helper()
	r, err := phraseset.ManyToManyRule(name, defs, "msg", "desc")
	require.NoError(t, err)
	m, err := phraseset.Compile(r)
	require.NoError(t, err)
	return m
}

func TestMatcher_OneToOne(t *testing.T) {
	m := discussRule(t)

	tests := []struct {
		name string
		text string
		want [][]string
	}{
		{"first pair", "discuss about", [][]string{{"discuss"}}},
		{"second pair maps only to its own good", "discussed about", [][]string{{"discussed"}}},
		{"inside a sentence", "We discussed about it and will discuss about it again.", [][]string{{"discussed"}, {"discuss"}}},
		{"no match", "We discussed it.", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lints := m.Lint(lexer.Tokenize(tt.text))
			var got [][]string
			for _, l := range lints {
				got = append(got, l.SuggestionTexts())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatcher_ManyToMany(t *testing.T) {
	m := mustManyToMany(t, "HowItLooksLike", []phraseset.GroupDef{
		{Bad: []string{"how he looks like"}, Good: []string{"how he looks", "what he looks like"}},
		{Bad: []string{"how it looks like", "how it look like"}, Good: []string{"how it looks", "what it looks like"}},
	})

	for _, text := range []string{"how it looks like", "how it look like"} {
		lints := m.Lint(lexer.Tokenize(text))
		require.Len(t, lints, 1, text)
		assert.Equal(t, []string{"how it looks", "what it looks like"}, lints[0].SuggestionTexts(), text)
	}

	lints := m.Lint(lexer.Tokenize("how he looks like"))
	require.Len(t, lints, 1)
	assert.Equal(t, []string{"how he looks", "what he looks like"}, lints[0].SuggestionTexts())
}

func TestMatcher_LintFields(t *testing.T) {
	m := discussRule(t)
	src := "Let's  Discuss About it."
	lints := m.Lint(lexer.Tokenize(src))
	require.Len(t, lints, 1)

	l := lints[0]
	assert.Equal(t, "Discuss", l.RuleName)
	assert.Equal(t, "msg", l.Message)
	assert.Equal(t, lint.SeverityWarning, l.Severity)
	assert.Equal(t, 1, l.Start)
	assert.Equal(t, 3, l.End)
	assert.Equal(t, 2, l.TokenLen())
	assert.Equal(t, "Discuss About", l.MatchedText)
	assert.Equal(t, "Discuss About", l.Span.Text(src))
	assert.Equal(t, 1, l.Span.Start.Line)
	assert.Equal(t, 8, l.Span.Start.Column)
}

func TestMatcher_CaseInsensitive(t *testing.T) {
	m, err := phraseset.Compile(mustOneToOne(t, "HomeInOn", []phraseset.Pair{
		{Bad: "hone in on", Good: "home in on"},
	}))
	require.NoError(t, err)

	lower := m.Lint(lexer.Tokenize("hone in on"))
	upper := m.Lint(lexer.Tokenize("HONE IN ON"))
	require.Len(t, lower, 1)
	require.Len(t, upper, 1)

	assert.Equal(t, lower[0].SuggestionTexts(), upper[0].SuggestionTexts())
	assert.Equal(t, lower[0].Start, upper[0].Start)
	assert.Equal(t, lower[0].End, upper[0].End)
	assert.Equal(t, lower[0].Span, upper[0].Span)
	assert.Equal(t, "HONE IN ON", upper[0].MatchedText)
	// authored casing is kept
	assert.Equal(t, []string{"home in on"}, upper[0].SuggestionTexts())
}

func TestMatcher_LongestMatchWins(t *testing.T) {
	m := mustManyToMany(t, "Worse", []phraseset.GroupDef{
		{Bad: []string{"worse case"}, Good: []string{"short"}},
		{Bad: []string{"worse case scenario"}, Good: []string{"worst-case scenario"}},
	})

	lints := m.Lint(lexer.Tokenize("the worse case scenario"))
	require.Len(t, lints, 1)
	assert.Equal(t, []string{"worst-case scenario"}, lints[0].SuggestionTexts())
	assert.Equal(t, 3, lints[0].TokenLen())
}

func TestMatcher_NonOverlapping(t *testing.T) {
	m := mustManyToMany(t, "Worse", []phraseset.GroupDef{
		{Bad: []string{"worst and worst", "worse and worst", "worst and worse"}, Good: []string{"worse and worse"}},
	})

	// "worst and worst and worse" could match at 0 and at 2; only the first is kept.
	lints := m.Lint(lexer.Tokenize("worst and worst and worse"))
	require.Len(t, lints, 1)
	assert.Equal(t, 0, lints[0].Start)
	assert.Equal(t, 3, lints[0].End)

	// Back-to-back matches are both reported.
	lints = m.Lint(lexer.Tokenize("worst and worst worse and worst"))
	require.Len(t, lints, 2)
	assert.Equal(t, 3, lints[1].Start)
}

func TestMatcher_Boundaries(t *testing.T) {
	m, err := phraseset.Compile(mustOneToOne(t, "Piggyback", []phraseset.Pair{
		{Bad: "piggy bag", Good: "piggyback"},
		{Bad: "piggy bagged", Good: "piggybacked"},
	}))
	require.NoError(t, err)

	tests := []struct {
		text string
		want []string
	}{
		{"a piggy bag ride", []string{"piggyback"}},
		{"she piggy bagged", []string{"piggybacked"}},
		{"piggy bags", nil},
		{"piggybag", nil},
		{"piggy, bag", nil},
		{"mini piggy bank", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			lints := m.Lint(lexer.Tokenize(tt.text))
			if tt.want == nil {
				assert.Empty(t, lints)
				return
			}
			require.Len(t, lints, 1)
			assert.Equal(t, tt.want, lints[0].SuggestionTexts())
		})
	}
}

func TestMatcher_Punctuation(t *testing.T) {
	m := mustManyToMany(t, "WorseOrWorst", []phraseset.GroupDef{
		{Bad: []string{"worse case scenario", "worse-case scenario", "worse-case-scenario"}, Good: []string{"worst-case scenario"}},
	})

	for _, text := range []string{"worse case scenario", "worse-case scenario", "worse-case-scenario"} {
		lints := m.Lint(lexer.Tokenize(text))
		require.Len(t, lints, 1, text)
		assert.Equal(t, text, lints[0].MatchedText)
	}

	// Whitespace is not a token, so a spaced hyphen still lines up.
	lints := m.Lint(lexer.Tokenize("worse - case scenario!"))
	require.Len(t, lints, 1)
	assert.Equal(t, "worse - case scenario", lints[0].MatchedText)
}

func TestMatcher_TokensWithoutPositions(t *testing.T) {
	m := discussRule(t)
	toks := []token.Token{
		{Kind: token.Word, Text: "discuss"},
		{Kind: token.Word, Text: "about"},
	}
	lints := m.Lint(toks)
	require.Len(t, lints, 1)
	assert.Equal(t, "discuss about", lints[0].MatchedText)
}

func TestMatcher_Examples(t *testing.T) {
	m := discussRule(t)
	bad, good := m.Examples()
	assert.Equal(t, []string{"discuss about", "discussed about"}, bad)
	assert.Equal(t, []string{"discuss", "discussed"}, good)

	info := lint.GetRuleInfo(m)
	assert.Equal(t, "Discuss", info.Name)
	assert.Equal(t, lint.DefaultGroupName, info.Group)
	assert.Equal(t, bad, info.BadExamples)
}

func TestMustCompile(t *testing.T) {
	assert.PanicsWithError(t, "X: "+phraseset.ErrNoGroups.Error(), func() {
		phraseset.MustCompile(&phraseset.CorrectionRule{Name: "X"})
	})

	rule := mustOneToOne(t, "X", []phraseset.Pair{{Bad: "a b", Good: "c"}})
	var m *phraseset.Matcher
	assert.NotPanics(t, func() { m = phraseset.MustCompile(rule) })
	assert.Equal(t, "X", m.Name())
}
