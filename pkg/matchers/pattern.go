package matchers

import "github.com/pact-foundation/pact-mock-server/pkg/pact"

// Pattern is one node of the builder DSL tree (spec.md §4.5, §9). It knows
// two things: the concrete example value it contributes to the pact, and
// how to append the matching rules it implies to a RuleSet at a given
// selector path. Composite patterns recurse into their children with
// extended paths; user-defined patterns can implement this interface
// directly rather than going through a closed type hierarchy (spec.md §9's
// "trait-object escape hatch").
type Pattern interface {
	// Example returns the concrete value (string, number, bool, nil,
	// map[string]any, or []any) stored in the pact as the expected
	// request/response value at this node.
	Example() any

	// ExtractRules appends the rule(s) this node implies to out, using
	// path as the selector for this node, then recurses into any child
	// patterns with path extended accordingly.
	ExtractRules(path string, out *pact.RuleSet)
}

// RulesFor builds a fresh RuleSet by extracting p's rules rooted at path.
// It is a convenience wrapper for callers that only need the rules, not a
// shared RuleSet accumulated across several patterns (e.g. several header
// patterns feeding into one Request's MatchingRules).
func RulesFor(path string, p Pattern) pact.RuleSet {
	rs := pact.NewRuleSet()
	p.ExtractRules(path, &rs)
	return rs
}
