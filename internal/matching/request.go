package matching

import (
	"strings"

	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// MatchRequest compares actual against the expected request, honoring
// expected.MatchingRules, and returns every mismatch found in the canonical
// field order named by spec.md §4.2: method, path, query, headers, body.
func MatchRequest(expected, actual pact.Request) []Mismatch {
	var mismatches []Mismatch

	if !strings.EqualFold(expected.Method, actual.Method) {
		mismatches = append(mismatches, newMismatch(MethodMismatch, "", expected.Method, actual.Method,
			"Expected method %s but was %s", expected.Method, actual.Method))
	}

	pathSelector := MustParsePath("$.path")
	if rule, ok := bestRule(expected.MatchingRules, pathSelector); ok && rule.Match == pact.MatchRegex {
		if !regexMatches(rule.Regex, actual.Path) {
			mismatches = append(mismatches, newMismatch(PathMismatch, "$.path", expected.Path, actual.Path,
				"Expected path to match %q but was %q", rule.Regex, actual.Path))
		}
	} else if expected.Path != actual.Path {
		mismatches = append(mismatches, newMismatch(PathMismatch, "$.path", expected.Path, actual.Path,
			"Expected path %q but was %q", expected.Path, actual.Path))
	}

	mismatches = append(mismatches, compareQuery(expected.Query, actual.Query, expected.MatchingRules)...)
	mismatches = append(mismatches, compareHeaders(expected.Headers, actual.Headers, expected.MatchingRules)...)
	mismatches = append(mismatches, compareBody(expected.Body, actual.Body, expected.MatchingRules)...)

	return mismatches
}
