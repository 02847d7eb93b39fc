package matchers

import "github.com/pact-foundation/pact-mock-server/pkg/pact"

// likeType is the Pattern behind LikeType: "match by type, not value"
// (spec.md §4.5), grounded on the Rust consumer DSL's `SomethingLike`.
type likeType struct {
	inner Pattern
}

// LikeType wraps inner so the actual value only needs to have the same
// JSON kind (string/number/bool/array/object/null) as inner's example,
// rather than matching it exactly. Emits {match: type} at path and
// recurses into inner so any rules inner's own children carry still apply.
func LikeType(inner Pattern) Pattern {
	return likeType{inner: inner}
}

func (l likeType) Example() any { return l.inner.Example() }

func (l likeType) ExtractRules(path string, out *pact.RuleSet) {
	out.Set(path, pact.Rule{Match: pact.MatchType})
	l.inner.ExtractRules(path, out)
}
