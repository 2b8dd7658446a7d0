// Package rules holds the built-in catalog of phrase corrections.
//
// The catalog is plain data. NewGroup compiles it into a fresh lint.Group
// each time it is called; nothing is registered globally.
package rules

import (
	"fmt"

	"github.com/leapstack-labs/phraselint/pkg/lint"
	"github.com/leapstack-labs/phraselint/pkg/lint/phraseset"
)

// Compile builds every catalog rule, one-to-one rules first, in table order.
func Compile() ([]*phraseset.Matcher, error) {
	matchers := make([]*phraseset.Matcher, 0, len(oneToOneRules)+len(manyToManyRules))

	for _, def := range oneToOneRules {
		rule, err := phraseset.OneToOneRule(def.Name, def.Pairs, def.Message, def.Description)
		if err != nil {
			return nil, err
		}
		m, err := phraseset.Compile(rule)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}

	for _, def := range manyToManyRules {
		rule, err := phraseset.ManyToManyRule(def.Name, def.Groups, def.Message, def.Description)
		if err != nil {
			return nil, err
		}
		m, err := phraseset.Compile(rule)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}

	return matchers, nil
}

// NewGroup compiles the catalog into a new group. All rules start enabled
// unless opts say otherwise.
func NewGroup(opts ...lint.Option) (*lint.Group, error) {
	matchers, err := Compile()
	if err != nil {
		return nil, fmt.Errorf("compile phrase catalog: %w", err)
	}

	g := lint.NewGroup(opts...)
	for _, m := range matchers {
		if err := g.Register(m); err != nil {
			return nil, fmt.Errorf("register %s: %w", m.Name(), err)
		}
	}
	return g, nil
}

// MustNewGroup is like NewGroup but panics on error.
// The catalog is static, so an error here is a programming mistake.
func MustNewGroup(opts ...lint.Option) *lint.Group {
	g, err := NewGroup(opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Names returns the catalog's rule names in registration order.
func Names() []string {
	names := make([]string, 0, len(oneToOneRules)+len(manyToManyRules))
	for _, def := range oneToOneRules {
		names = append(names, def.Name)
	}
	for _, def := range manyToManyRules {
		names = append(names, def.Name)
	}
	return names
}
