package matchers

import (
	"fmt"

	"github.com/pact-foundation/pact-mock-server/internal/matching"
	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// Header applies a Pattern to a single header, returning the literal
// header value to store and appending any rule it implies to out at the
// bracket-quoted "$.headers['Name']" selector (spec.md §9's quoting rule
// for non-identifier field names, which most header names need).
func Header(name string, p Pattern, out *pact.RuleSet) (string, error) {
	v, ok := p.Example().(string)
	if !ok {
		return "", fmt.Errorf("matchers: header %q pattern must have a string example, got %T", name, p.Example())
	}
	p.ExtractRules(matching.AppendField("$.headers", name), out)
	return v, nil
}
