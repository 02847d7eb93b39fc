package matchers

import (
	"github.com/pact-foundation/pact-mock-server/internal/matching"
	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// Field is one named child of an Object pattern.
type Field struct {
	Name    string
	Pattern Pattern
}

// object is a composite Pattern for a JSON object whose fields may each
// carry their own matching rule (spec.md §4.5's "recurses into children").
// Field order only affects the pact's example JSON rendering (re-sorted
// alphabetically by encoding/json regardless); it never affects rule
// insertion order conflicts, since distinct field names never share a
// selector path.
type object struct {
	fields []Field
}

// Object builds a composite Pattern from an ordered list of named fields.
// Unlike Literal, each field's Pattern recurses and may emit its own rule.
func Object(fields ...Field) Pattern {
	return object{fields: fields}
}

func (o object) Example() any {
	out := make(map[string]any, len(o.fields))
	for _, f := range o.fields {
		out[f.Name] = f.Pattern.Example()
	}
	return out
}

func (o object) ExtractRules(path string, out *pact.RuleSet) {
	for _, f := range o.fields {
		f.Pattern.ExtractRules(matching.AppendField(path, f.Name), out)
	}
}
