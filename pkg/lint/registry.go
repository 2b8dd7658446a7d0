package lint

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/leapstack-labs/phraselint/pkg/core"
)

// DefaultGroupName is the group reported for rules in this registry.
const DefaultGroupName = "phrases"

var (
	// ErrUnknownRule is returned when a rule name is not registered.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrDuplicateRule is returned when a rule name is registered twice.
	ErrDuplicateRule = errors.New("duplicate rule name")
	// ErrNilRule is returned when registering a nil rule.
	ErrNilRule = errors.New("nil rule")
)

// OrderPolicy selects how Group.Lint orders its output.
type OrderPolicy int

const (
	// OrderByRule groups lints by rule registration order, then by match
	// start within each rule.
	OrderByRule OrderPolicy = iota
	// OrderByPosition sorts all lints by match start; lints starting at the
	// same token keep rule registration order.
	OrderByPosition
)

// String returns the config name of the policy.
func (o OrderPolicy) String() string {
	if o == OrderByPosition {
		return "position"
	}
	return "rule"
}

// ParseOrderPolicy converts "rule" or "position" to an OrderPolicy.
func ParseOrderPolicy(s string) (OrderPolicy, bool) {
	switch s {
	case "rule", "":
		return OrderByRule, true
	case "position":
		return OrderByPosition, true
	default:
		return OrderByRule, false
	}
}

// entry is a registered rule and its participation state.
type entry struct {
	rule     Rule
	enabled  bool
	severity Severity
}

// Group owns a set of rules, controls which are active, and aggregates their
// lints for a document.
//
// Rules are immutable once registered; only the enabled flags and severity
// overrides change. Those are guarded by a RWMutex, so SetEnabled and SetAll
// may run concurrently with Lint. A Lint call observes every toggle that
// returned before the call started.
type Group struct {
	mu      sync.RWMutex
	entries []*entry       // registration order
	byName  map[string]int // name -> index into entries

	// defaultEnabled is the initial state of newly registered rules.
	// NewGroup sets it to true; WithDefaultEnabled(false) overrides it.
	defaultEnabled bool
	order          OrderPolicy
}

// Option configures a Group.
type Option func(*Group)

// WithDefaultEnabled sets the enabled state given to rules at registration.
func WithDefaultEnabled(enabled bool) Option {
	return func(g *Group) { g.defaultEnabled = enabled }
}

// WithOrder sets the output ordering policy.
func WithOrder(order OrderPolicy) Option {
	return func(g *Group) { g.order = order }
}

// NewGroup creates an empty group. By default every registered rule is
// enabled and output is ordered by rule.
func NewGroup(opts ...Option) *Group {
	g := &Group{
		byName:         make(map[string]int),
		defaultEnabled: true,
		order:          OrderByRule,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Register adds a rule under its unique name.
func (g *Group) Register(rule Rule) error {
	if rule == nil {
		return ErrNilRule
	}
	name := rule.Name()

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.byName[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRule, name)
	}
	g.byName[name] = len(g.entries)
	g.entries = append(g.entries, &entry{
		rule:     rule,
		enabled:  g.defaultEnabled,
		severity: rule.DefaultSeverity(),
	})
	return nil
}

// MustRegister is like Register but panics on error.
// Use it only while building static rule tables at startup.
func (g *Group) MustRegister(rules ...Rule) {
	for _, r := range rules {
		if err := g.Register(r); err != nil {
			panic(err)
		}
	}
}

// SetEnabled toggles one rule without removing its definition.
func (g *Group) SetEnabled(name string, enabled bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	i, ok := g.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	g.entries[i].enabled = enabled
	return nil
}

// SetAll enables or disables every rule.
func (g *Group) SetAll(enabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, e := range g.entries {
		e.enabled = enabled
	}
}

// SetSeverity overrides the severity a rule reports with.
func (g *Group) SetSeverity(name string, severity Severity) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	i, ok := g.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	g.entries[i].severity = severity
	return nil
}

// IsEnabled reports whether the named rule participates in Lint.
func (g *Group) IsEnabled(name string) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	i, ok := g.byName[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return g.entries[i].enabled, nil
}

// ApplyConfig applies enable/disable and severity settings from cfg.
// Every name cfg references is checked first; if any is unknown nothing is
// changed and the returned error lists all unknown names.
func (g *Group) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var errs []error
	for _, name := range cfg.referencedNames() {
		if _, ok := g.byName[name]; !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownRule, name))
		}
	}
	if len(errs) > 0 {
		sort.Slice(errs, func(i, j int) bool { return errs[i].Error() < errs[j].Error() })
		return errors.Join(errs...)
	}

	for _, e := range g.entries {
		name := e.rule.Name()
		if cfg.IsDisabled(name) {
			e.enabled = false
		} else if len(cfg.EnabledOnly) > 0 {
			e.enabled = true
		}
		e.severity = cfg.GetSeverity(name, e.severity)
	}
	return nil
}

// Get returns the rule registered under name.
func (g *Group) Get(name string) (Rule, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	i, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	return g.entries[i].rule, true
}

// Names returns rule names in registration order.
func (g *Group) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	names := make([]string, len(g.entries))
	for i, e := range g.entries {
		names[i] = e.rule.Name()
	}
	return names
}

// EnabledNames returns the names of enabled rules in registration order.
func (g *Group) EnabledNames() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var names []string
	for _, e := range g.entries {
		if e.enabled {
			names = append(names, e.rule.Name())
		}
	}
	return names
}

// Rules returns metadata for all registered rules in registration order.
func (g *Group) Rules() []core.RuleInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()

	infos := make([]core.RuleInfo, len(g.entries))
	for i, e := range g.entries {
		info := GetRuleInfo(e.rule)
		info.Enabled = e.enabled
		info.DefaultSeverity = e.severity
		infos[i] = info
	}
	return infos
}

// Len returns the number of registered rules.
func (g *Group) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// Order returns the output ordering policy.
func (g *Group) Order() OrderPolicy {
	return g.order
}
