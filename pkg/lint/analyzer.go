package lint

import (
	"sort"

	"github.com/leapstack-labs/phraselint/pkg/lexer"
	"github.com/leapstack-labs/phraselint/pkg/token"
)

// active is a snapshot of one enabled rule taken at the start of a Lint call.
type active struct {
	rule     Rule
	severity Severity
}

// snapshot copies the enabled entries under the read lock so matching runs
// without holding it.
func (g *Group) snapshot() []active {
	g.mu.RLock()
	defer g.mu.RUnlock()

	rules := make([]active, 0, len(g.entries))
	for _, e := range g.entries {
		if e.enabled {
			rules = append(rules, active{rule: e.rule, severity: e.severity})
		}
	}
	return rules
}

// Lint runs every enabled rule over tokens and returns their lints.
//
// With OrderByRule the result is grouped by rule registration order and
// sorted by start within each rule. With OrderByPosition it is sorted by
// start token, ties keeping registration order. Different rules may report
// overlapping spans; the result is not deduplicated.
//
// Lint does not modify the group or its rules and is safe to call
// concurrently.
func (g *Group) Lint(tokens []token.Token) []Lint {
	if len(tokens) == 0 {
		return nil
	}

	var lints []Lint
	for _, a := range g.snapshot() {
		found := a.rule.Lint(tokens)
		for i := range found {
			found[i].Severity = a.severity
		}
		lints = append(lints, found...)
	}

	if g.order == OrderByPosition {
		sort.SliceStable(lints, func(i, j int) bool {
			return lints[i].Start < lints[j].Start
		})
	}
	return lints
}

// LintText tokenizes src and lints the resulting stream.
func (g *Group) LintText(src string) []Lint {
	return g.Lint(lexer.Tokenize(src))
}

// FilterBySeverity returns lints at or above minimum.
func FilterBySeverity(lints []Lint, minimum Severity) []Lint {
	var out []Lint
	for _, l := range lints {
		// Lower values are more severe.
		if l.Severity <= minimum {
			out = append(out, l)
		}
	}
	return out
}
