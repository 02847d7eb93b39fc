package matchers

import (
	"github.com/pact-foundation/pact-mock-server/internal/matching"
	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// likeArray is the Pattern behind LikeArray, grounded on the Rust consumer
// DSL's `ArrayLike`/`EachLike`: an array of "at least min elements, each
// shaped like inner".
type likeArray struct {
	inner Pattern
	min   int
}

// LikeArray wraps inner as the repeated element of an array that must have
// at least min elements (min defaults to 1 if <= 0). It emits {match: type,
// min: N} at path, {match: type} at path[*].* (every field of every
// element defaults to type-matching unless inner overrides it more
// specifically), and recurses into inner at path[*]. The generated example
// is inner.Example() repeated min times.
func LikeArray(inner Pattern, min int) Pattern {
	if min <= 0 {
		min = 1
	}
	return likeArray{inner: inner, min: min}
}

func (l likeArray) Example() any {
	out := make([]any, l.min)
	example := l.inner.Example()
	for i := range out {
		out[i] = example
	}
	return out
}

func (l likeArray) ExtractRules(path string, out *pact.RuleSet) {
	out.Set(path, pact.Rule{Match: pact.MatchType, Min: pact.IntPtr(l.min)})
	out.Set(matching.AppendWildcardAnyField(matching.AppendWildcardIndex(path)), pact.Rule{Match: pact.MatchType})
	l.inner.ExtractRules(matching.AppendWildcardIndex(path), out)
}
