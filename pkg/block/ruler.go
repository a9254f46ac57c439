package block

import (
	"errors"
	"fmt"
	"slices"
)

// Sentinel errors for ruler lookups.
var (
	// ErrUnknownRule is returned when a rule name or anchor does not exist.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrDuplicateRule is returned when a rule name is registered twice.
	ErrDuplicateRule = errors.New("duplicate rule")
)

// RuleFunc recognizes a block at startLine. In silent mode it only reports
// whether the block could start there and must not touch the state.
// Otherwise it either declines with no side effects, or pushes tokens,
// advances state.Line past the consumed lines and returns true.
type RuleFunc func(state *State, startLine, endLine int, silent bool) bool

// RuleOptions carries optional registration data.
type RuleOptions struct {
	// Alt lists the chains this rule joins. A rule in the "paragraph" chain
	// is asked, in silent mode, whether it may interrupt a paragraph.
	Alt []string
}

// Rule is one named entry in a Ruler.
type Rule struct {
	Name    string
	Enabled bool
	Fn      RuleFunc
	Alt     []string
}

// Ruler keeps block rules in priority order and the chains derived from
// their Alt lists. It is not safe for concurrent mutation; configure it
// before parsing starts.
type Ruler struct {
	rules  []Rule
	chains map[string][]Rule
}

// NewRuler creates an empty ruler.
func NewRuler() *Ruler {
	return &Ruler{chains: map[string][]Rule{}}
}

func (r *Ruler) find(name string) int {
	return slices.IndexFunc(r.rules, func(rule Rule) bool {
		return rule.Name == name
	})
}

func (r *Ruler) newRule(name string, fn RuleFunc, opts RuleOptions) (Rule, error) {
	if r.find(name) >= 0 {
		return Rule{}, fmt.Errorf("%w: %s", ErrDuplicateRule, name)
	}
	return Rule{Name: name, Enabled: true, Fn: fn, Alt: slices.Clone(opts.Alt)}, nil
}

// Push appends a rule to the end of the chain.
func (r *Ruler) Push(name string, fn RuleFunc, opts RuleOptions) error {
	rule, err := r.newRule(name, fn, opts)
	if err != nil {
		return err
	}
	r.rules = append(r.rules, rule)
	r.compile()
	return nil
}

// Before inserts a rule right before the rule named anchor.
func (r *Ruler) Before(anchor, name string, fn RuleFunc, opts RuleOptions) error {
	idx := r.find(anchor)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRule, anchor)
	}
	rule, err := r.newRule(name, fn, opts)
	if err != nil {
		return err
	}
	r.rules = slices.Insert(r.rules, idx, rule)
	r.compile()
	return nil
}

// After inserts a rule right after the rule named anchor.
func (r *Ruler) After(anchor, name string, fn RuleFunc, opts RuleOptions) error {
	idx := r.find(anchor)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRule, anchor)
	}
	rule, err := r.newRule(name, fn, opts)
	if err != nil {
		return err
	}
	r.rules = slices.Insert(r.rules, idx+1, rule)
	r.compile()
	return nil
}

// At replaces the function and options of an existing rule.
func (r *Ruler) At(name string, fn RuleFunc, opts RuleOptions) error {
	idx := r.find(name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRule, name)
	}
	r.rules[idx].Fn = fn
	r.rules[idx].Alt = slices.Clone(opts.Alt)
	r.compile()
	return nil
}

// Enable turns the named rules on.
func (r *Ruler) Enable(names ...string) error {
	return r.setEnabled(true, names)
}

// Disable turns the named rules off.
func (r *Ruler) Disable(names ...string) error {
	return r.setEnabled(false, names)
}

func (r *Ruler) setEnabled(enabled bool, names []string) error {
	var errs []error
	for _, name := range names {
		idx := r.find(name)
		if idx < 0 {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownRule, name))
			continue
		}
		r.rules[idx].Enabled = enabled
	}
	r.compile()
	return errors.Join(errs...)
}

// Rules returns the enabled rules of a chain in order. The empty chain
// name selects every enabled rule.
func (r *Ruler) Rules(chain string) []Rule {
	return r.chains[chain]
}

// All returns every registered rule, enabled or not, in order.
func (r *Ruler) All() []Rule {
	out := make([]Rule, len(r.rules))
	for i, rule := range r.rules {
		rule.Alt = slices.Clone(rule.Alt)
		out[i] = rule
	}
	return out
}

// Names returns the names of every registered rule, in order.
func (r *Ruler) Names() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name
	}
	return names
}

// Lookup returns the rule registered under name.
func (r *Ruler) Lookup(name string) (Rule, bool) {
	idx := r.find(name)
	if idx < 0 {
		return Rule{}, false
	}
	return r.rules[idx], true
}

// Alt returns the chains the named rule joins.
func (r *Ruler) Alt(name string) ([]string, error) {
	idx := r.find(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
	}
	return slices.Clone(r.rules[idx].Alt), nil
}

// compile rebuilds the chains. Rules only ever read the compiled chains,
// so a configured ruler can serve concurrent parses.
func (r *Ruler) compile() {
	chains := map[string][]Rule{"": nil}
	for _, rule := range r.rules {
		for _, alt := range rule.Alt {
			if _, ok := chains[alt]; !ok {
				chains[alt] = nil
			}
		}
	}

	for chain := range chains {
		for _, rule := range r.rules {
			if !rule.Enabled {
				continue
			}
			if chain != "" && !slices.Contains(rule.Alt, chain) {
				continue
			}
			chains[chain] = append(chains[chain], rule)
		}
	}

	r.chains = chains
}
