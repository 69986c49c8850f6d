package engine

import "fmt"

// ResolveFunc applies the outcome of a contact between a (of the rule's kind
// A) and b (of kind B). It mutates entities and session state directly.
type ResolveFunc func(s *Session, a, b *Entity) error

// Rule pairs two entity kinds with a resolution.
type Rule struct {
	A, B    Kind
	Resolve ResolveFunc
}

// Resolver tests every rule's pairs for box contact and applies resolutions
// immediately, so later pairs see earlier kills and damage.
type Resolver struct {
	rules []Rule
}

// NewResolver creates a resolver that applies rules in the given order.
func NewResolver(rules ...Rule) *Resolver {
	return &Resolver{rules: rules}
}

// Resolve runs one collision pass and returns the number of resolutions
// applied. A pair is skipped if either side is inactive when it comes up, and
// each pair is visited at most once per rule. The pass ends early when the
// session leaves Running.
func (r *Resolver) Resolve(s *Session) (int, error) {
	n := 0
	for _, rule := range r.rules {
		as := s.Store.Group(rule.A)
		bs := as
		if rule.B != rule.A {
			bs = s.Store.Group(rule.B)
		}
		for i, a := range as {
			start := 0
			if rule.A == rule.B {
				start = i + 1
			}
			for _, b := range bs[start:] {
				if !s.Running() {
					return n, nil
				}
				if !a.Active {
					break
				}
				if !b.Active || a == b {
					continue
				}
				if !a.Box.Intersects(b.Box) {
					continue
				}
				if err := rule.Resolve(s, a, b); err != nil {
					return n, fmt.Errorf("engine: resolve %s x %s: %w", rule.A, rule.B, err)
				}
				n++
			}
		}
	}
	return n, nil
}
