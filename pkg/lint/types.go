package lint

import (
	"github.com/leapstack-labs/phraselint/pkg/core"
	"github.com/leapstack-labs/phraselint/pkg/token"
)

// =============================================================================
// Severity
// =============================================================================

// Severity is re-exported so rule packages need not import pkg/core.
type Severity = core.Severity

// Severity levels for lints.
const (
	SeverityError   = core.SeverityError
	SeverityWarning = core.SeverityWarning
	SeverityInfo    = core.SeverityInfo
	SeverityHint    = core.SeverityHint
)

// ParseSeverity converts a string to a Severity value.
func ParseSeverity(s string) (Severity, bool) {
	return core.ParseSeverity(s)
}

// =============================================================================
// Lints
// =============================================================================

// Lint represents a single reported issue.
type Lint struct {
	RuleName    string
	Severity    Severity
	Message     string
	Span        token.Span // source range of the matched tokens
	Start       int        // index of the first matched token
	End         int        // index one past the last matched token
	MatchedText string     // matched tokens in original casing, whitespace collapsed to one space
	Suggestions []Suggestion
}

// Suggestion is a proposed replacement for the text covered by a lint.
type Suggestion struct {
	Text string
}

// String returns the replacement text.
func (s Suggestion) String() string { return s.Text }

// SuggestionTexts returns the replacement texts in order.
func (l Lint) SuggestionTexts() []string {
	out := make([]string, len(l.Suggestions))
	for i, s := range l.Suggestions {
		out[i] = s.Text
	}
	return out
}

// TokenLen returns the number of tokens covered by the lint.
func (l Lint) TokenLen() int {
	return l.End - l.Start
}

// =============================================================================
// Rule Interfaces
// =============================================================================

// Rule is the interface all lint rules in a Group implement.
// Implementations must be safe for concurrent use by multiple goroutines;
// rules built from static tables satisfy this by never mutating after construction.
type Rule interface {
	// Name returns the unique name, e.g., "HomeInOn"
	Name() string

	// Description returns what the rule corrects
	Description() string

	// Message returns the text attached to every lint the rule reports
	Message() string

	// DefaultSeverity returns the default severity for this rule
	DefaultSeverity() Severity

	// Lint scans tokens and returns lints ordered by start position.
	// Lint never fails; an empty or non-matching stream yields nil.
	Lint(tokens []token.Token) []Lint
}

// Exampler is implemented by rules that can show their own bad and good forms.
type Exampler interface {
	Examples() (bad, good []string)
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) core.RuleInfo {
	info := core.RuleInfo{
		Name:            r.Name(),
		Group:           DefaultGroupName,
		Description:     r.Description(),
		Message:         r.Message(),
		DefaultSeverity: r.DefaultSeverity(),
	}
	if ex, ok := r.(Exampler); ok {
		info.BadExamples, info.GoodExamples = ex.Examples()
	}
	return info
}
