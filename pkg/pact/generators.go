package pact

import "encoding/json"

// GeneratorSet is the V3 example-generator configuration, kept as opaque
// per-category JSON rather than interpreted: the core matching engine in
// this module never needs to run generators (see SPEC_FULL.md §3), only
// carry them through a parse/serialize round trip untouched. V2 and V1
// documents always have an empty GeneratorSet.
type GeneratorSet map[Category]map[string]json.RawMessage

// IsEmpty reports whether there are no generators configured.
func (g GeneratorSet) IsEmpty() bool { return len(g) == 0 }

// Clone returns a deep-enough copy for handing to an immutable PactDocument.
func (g GeneratorSet) Clone() GeneratorSet {
	if g == nil {
		return nil
	}
	out := make(GeneratorSet, len(g))
	for cat, rules := range g {
		inner := make(map[string]json.RawMessage, len(rules))
		for path, raw := range rules {
			cp := make(json.RawMessage, len(raw))
			copy(cp, raw)
			inner[path] = cp
		}
		out[cat] = inner
	}
	return out
}
