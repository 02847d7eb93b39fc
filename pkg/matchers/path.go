package matchers

import (
	"fmt"

	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// Path applies a Pattern to a request's path, returning the literal path
// string to store and appending any rule it implies to out at "$.path"
// (spec.md §4.2: "path: string equality unless a rule with match=regex
// applies at $.path"). Only Regex is a meaningful pattern to pass here;
// LikeType/LikeArray on a path make little sense and are not special-cased.
func Path(p Pattern, out *pact.RuleSet) (string, error) {
	v, ok := p.Example().(string)
	if !ok {
		return "", fmt.Errorf("matchers: path pattern must have a string example, got %T", p.Example())
	}
	p.ExtractRules("$.path", out)
	return v, nil
}
