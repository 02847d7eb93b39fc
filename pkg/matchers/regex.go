package matchers

import (
	"fmt"
	"regexp"

	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// regexPattern is the Pattern behind Regex, grounded on the Rust consumer
// DSL's `Term`: match and generate strings against a regular expression.
type regexPattern struct {
	example string
	regex   string
}

// Regex builds a Pattern matching strings against pattern, using example as
// the literal value stored in the pact. Construction fails if pattern does
// not compile (spec.md §4.5), mirroring the Rust DSL's `Regex::new`
// validation at `Term::new` time rather than at match time.
func Regex(pattern, example string) (Pattern, error) {
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, fmt.Errorf("matchers: invalid regex %q: %w", pattern, err)
	}
	return regexPattern{example: example, regex: pattern}, nil
}

// MustRegex is Regex, panicking on an invalid pattern. Intended for
// package-level pattern constants built from literal regex strings, the
// same way MustParsePath is used for path expressions.
func MustRegex(pattern, example string) Pattern {
	p, err := Regex(pattern, example)
	if err != nil {
		panic(err)
	}
	return p
}

func (r regexPattern) Example() any { return r.example }

func (r regexPattern) ExtractRules(path string, out *pact.RuleSet) {
	out.Set(path, pact.Rule{Match: pact.MatchRegex, Regex: r.regex})
}
