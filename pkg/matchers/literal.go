package matchers

import "github.com/pact-foundation/pact-mock-server/pkg/pact"

// literal is the Pattern wrapping a concrete value with no attached
// matching rule (spec.md §4.5: "Literal(v) — no rule emitted"). v is
// stored and returned verbatim; it may itself be a plain map[string]any or
// []any built from other literal values, but must not contain nested
// Patterns — use Object/List to compose a tree whose children carry rules
// of their own.
type literal struct {
	value any
}

// Literal wraps v as an example with no matching rule at all: the actual
// value must equal v exactly (subject to whatever rule, if any, a parent
// pattern attaches at this same path).
func Literal(v any) Pattern {
	return literal{value: v}
}

func (l literal) Example() any { return l.value }

func (l literal) ExtractRules(string, *pact.RuleSet) {}
