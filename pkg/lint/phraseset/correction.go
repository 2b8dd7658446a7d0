package phraseset

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/phraselint/pkg/lint"
	"github.com/leapstack-labs/phraselint/pkg/phrase"
)

// Construction errors. They indicate a malformed rule table and are meant to
// surface at startup or in tests.
var (
	ErrEmptyName      = errors.New("rule name is empty")
	ErrNoGroups       = errors.New("rule has no correction groups")
	ErrEmptyBad       = errors.New("correction group has no bad phrases")
	ErrEmptyGood      = errors.New("correction group has no good phrases")
	ErrArityMismatch  = errors.New("one-to-one group needs as many good phrases as bad phrases")
	ErrInvalidPhrase  = errors.New("invalid phrase")
	ErrDuplicateInput = errors.New("bad phrase listed twice in one rule")
)

// Mode is how a matched bad phrase maps to suggestions.
type Mode int

const (
	// OneToOne maps bad phrase i to good phrase i only.
	OneToOne Mode = iota
	// ManyToMany offers every good phrase for any bad phrase in the group.
	ManyToMany
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case OneToOne:
		return "one-to-one"
	case ManyToMany:
		return "many-to-many"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Pair is one bad form and its single correction.
type Pair struct {
	Bad  string
	Good string
}

// GroupDef is the authored form of a many-to-many correction group.
type GroupDef struct {
	Bad  []string
	Good []string
}

// CorrectionGroup is a validated set of bad phrases and their corrections.
type CorrectionGroup struct {
	Mode Mode
	Bad  []phrase.Phrase
	Good []phrase.Phrase
}

// NewCorrectionGroup parses and validates a group.
func NewCorrectionGroup(mode Mode, bad, good []string) (CorrectionGroup, error) {
	if len(bad) == 0 {
		return CorrectionGroup{}, ErrEmptyBad
	}
	if len(good) == 0 {
		return CorrectionGroup{}, ErrEmptyGood
	}
	if mode == OneToOne && len(bad) != len(good) {
		return CorrectionGroup{}, fmt.Errorf("%w: %d bad, %d good", ErrArityMismatch, len(bad), len(good))
	}

	b, err := phrase.ParseAll(bad...)
	if err != nil {
		return CorrectionGroup{}, fmt.Errorf("%w: %w", ErrInvalidPhrase, err)
	}
	g, err := phrase.ParseAll(good...)
	if err != nil {
		return CorrectionGroup{}, fmt.Errorf("%w: %w", ErrInvalidPhrase, err)
	}
	return CorrectionGroup{Mode: mode, Bad: b, Good: g}, nil
}

// Suggestions returns the corrections for the bad phrase at index i,
// in authored order and casing.
func (cg CorrectionGroup) Suggestions(i int) []lint.Suggestion {
	if cg.Mode == OneToOne {
		return []lint.Suggestion{{Text: cg.Good[i].String()}}
	}
	out := make([]lint.Suggestion, len(cg.Good))
	for j, p := range cg.Good {
		out[j] = lint.Suggestion{Text: p.String()}
	}
	return out
}

// CorrectionRule is a named bundle of correction groups sharing one message.
// It is immutable after construction.
type CorrectionRule struct {
	Name        string
	Message     string
	Description string
	Severity    lint.Severity
	Groups      []CorrectionGroup
}

// Validate checks the invariants of a rule built by hand rather than through
// OneToOneRule or ManyToManyRule.
func (r *CorrectionRule) Validate() error {
	if r.Name == "" {
		return ErrEmptyName
	}
	if len(r.Groups) == 0 {
		return fmt.Errorf("%s: %w", r.Name, ErrNoGroups)
	}

	seen := make(map[string]bool)
	for gi, g := range r.Groups {
		switch {
		case len(g.Bad) == 0:
			return fmt.Errorf("%s: group %d: %w", r.Name, gi, ErrEmptyBad)
		case len(g.Good) == 0:
			return fmt.Errorf("%s: group %d: %w", r.Name, gi, ErrEmptyGood)
		case g.Mode == OneToOne && len(g.Bad) != len(g.Good):
			return fmt.Errorf("%s: group %d: %w", r.Name, gi, ErrArityMismatch)
		}
		for _, p := range append(append([]phrase.Phrase{}, g.Bad...), g.Good...) {
			if p.IsZero() {
				return fmt.Errorf("%s: group %d: %w: zero phrase", r.Name, gi, ErrInvalidPhrase)
			}
		}
		for _, p := range g.Bad {
			if seen[p.Key()] {
				return fmt.Errorf("%s: %w: %q", r.Name, ErrDuplicateInput, p.String())
			}
			seen[p.Key()] = true
		}
	}
	return nil
}

// BadPhrases returns every bad phrase of the rule in authored order.
func (r *CorrectionRule) BadPhrases() []string {
	var out []string
	for _, g := range r.Groups {
		for _, p := range g.Bad {
			out = append(out, p.String())
		}
	}
	return out
}

// GoodPhrases returns every good phrase of the rule in authored order.
func (r *CorrectionRule) GoodPhrases() []string {
	var out []string
	for _, g := range r.Groups {
		for _, p := range g.Good {
			out = append(out, p.String())
		}
	}
	return out
}

// OneToOneRule builds a rule whose pairs form a single one-to-one group.
func OneToOneRule(name string, pairs []Pair, message, description string) (*CorrectionRule, error) {
	bad := make([]string, len(pairs))
	good := make([]string, len(pairs))
	for i, p := range pairs {
		bad[i], good[i] = p.Bad, p.Good
	}
	g, err := NewCorrectionGroup(OneToOne, bad, good)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return newRule(name, message, description, []CorrectionGroup{g})
}

// ManyToManyRule builds a rule with one many-to-many group per def.
func ManyToManyRule(name string, defs []GroupDef, message, description string) (*CorrectionRule, error) {
	groups := make([]CorrectionGroup, 0, len(defs))
	for i, d := range defs {
		g, err := NewCorrectionGroup(ManyToMany, d.Bad, d.Good)
		if err != nil {
			return nil, fmt.Errorf("%s: group %d: %w", name, i, err)
		}
		groups = append(groups, g)
	}
	return newRule(name, message, description, groups)
}

func newRule(name, message, description string, groups []CorrectionGroup) (*CorrectionRule, error) {
	r := &CorrectionRule{
		Name:        name,
		Message:     message,
		Description: description,
		Severity:    lint.SeverityWarning,
		Groups:      groups,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
