package phraseset

import (
	"strings"

	"github.com/leapstack-labs/phraselint/pkg/lint"
	"github.com/leapstack-labs/phraselint/pkg/phrase"
	"github.com/leapstack-labs/phraselint/pkg/token"
)

// candidate is one bad phrase reachable from a first-word bucket.
type candidate struct {
	phrase phrase.Phrase
	group  int // index into rule.Groups
	bad    int // index into Groups[group].Bad
}

// Matcher is the compiled form of a CorrectionRule. It implements lint.Rule.
// A Matcher never changes after Compile and may be shared across goroutines.
type Matcher struct {
	rule *CorrectionRule

	// index maps a folded first token to the bad phrases starting with it,
	// in authored order.
	index map[string][]candidate
}

var (
	_ lint.Rule     = (*Matcher)(nil)
	_ lint.Exampler = (*Matcher)(nil)
)

// Compile validates rule and builds its first-word index.
func Compile(rule *CorrectionRule) (*Matcher, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	m := &Matcher{rule: rule, index: make(map[string][]candidate)}
	for gi, g := range rule.Groups {
		for bi, p := range g.Bad {
			m.index[p.Head()] = append(m.index[p.Head()], candidate{phrase: p, group: gi, bad: bi})
		}
	}
	return m, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(rule *CorrectionRule) *Matcher {
	m, err := Compile(rule)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Matcher) Name() string                   { return m.rule.Name }
func (m *Matcher) Description() string            { return m.rule.Description }
func (m *Matcher) Message() string                { return m.rule.Message }
func (m *Matcher) DefaultSeverity() lint.Severity { return m.rule.Severity }

// Rule returns the underlying correction rule.
func (m *Matcher) Rule() *CorrectionRule { return m.rule }

// Examples returns the rule's bad and good phrases.
func (m *Matcher) Examples() (bad, good []string) {
	return m.rule.BadPhrases(), m.rule.GoodPhrases()
}

// Lint reports every non-overlapping occurrence of the rule's bad phrases,
// left to right. When several bad phrases match at one position the longest
// wins; among equal lengths the first authored wins. Scanning resumes after
// the matched tokens.
func (m *Matcher) Lint(tokens []token.Token) []lint.Lint {
	var lints []lint.Lint
	for i := 0; i < len(tokens); {
		c, ok := m.longestAt(tokens, i)
		if !ok {
			i++
			continue
		}
		end := i + c.phrase.Len()
		lints = append(lints, lint.Lint{
			RuleName:    m.rule.Name,
			Severity:    m.rule.Severity,
			Message:     m.rule.Message,
			Span:        token.SpanOf(tokens, i, end),
			Start:       i,
			End:         end,
			MatchedText: joinTokens(tokens[i:end]),
			Suggestions: m.rule.Groups[c.group].Suggestions(c.bad),
		})
		i = end
	}
	return lints
}

// longestAt returns the longest bad phrase matching at tokens[i].
func (m *Matcher) longestAt(tokens []token.Token, i int) (candidate, bool) {
	cands := m.index[phrase.Fold(tokens[i].Text)]
	var best candidate
	found := false
	for _, c := range cands {
		if found && c.phrase.Len() <= best.phrase.Len() {
			continue
		}
		if c.phrase.MatchAt(tokens, i) {
			best, found = c, true
		}
	}
	return best, found
}

// joinTokens rebuilds the matched text, writing one space wherever the
// source had whitespace between tokens. Tokens without positions are
// space-separated.
func joinTokens(toks []token.Token) string {
	var b strings.Builder
	for k, t := range toks {
		if k > 0 && (!t.Span.IsValid() || t.Span.Start.Offset > toks[k-1].Span.End.Offset) {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	return b.String()
}
