package matchers

import (
	"github.com/pact-foundation/pact-mock-server/internal/matching"
	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// list is a composite Pattern for a JSON array whose elements are each
// built independently, as opposed to LikeArray's single repeated element.
// Use this when successive elements need distinct example values or rules;
// use LikeArray when the array is "N or more of the same shape".
type list struct {
	elements []Pattern
}

// List builds a composite Pattern from an ordered list of element patterns.
func List(elements ...Pattern) Pattern {
	return list{elements: elements}
}

func (l list) Example() any {
	out := make([]any, len(l.elements))
	for i, e := range l.elements {
		out[i] = e.Example()
	}
	return out
}

func (l list) ExtractRules(path string, out *pact.RuleSet) {
	for i, e := range l.elements {
		e.ExtractRules(matching.AppendIndex(path, i), out)
	}
}
