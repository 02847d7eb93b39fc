package matching

import (
	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// compareQuery implements spec.md §4.2's query semantics. Per the Open
// Question resolution recorded in DESIGN.md, keys and values are compared
// on the parsed map directly — never upper-cased first, unlike the
// reference implementation's flagged comparison bug.
func compareQuery(expected, actual map[string][]string, rules pact.RuleSet) []Mismatch {
	var mismatches []Mismatch

	for key, expVals := range expected {
		actVals, ok := actual[key]
		if !ok {
			mismatches = append(mismatches, newMismatch(QueryMismatch, AppendField("$.query", key), joinValues(expVals), "",
				"Expected query parameter %q but it was missing", key))
			continue
		}

		selector := MustParsePath(AppendField("$.query", key))
		if rule, ok := bestRule(rules, selector); ok && rule.Match == pact.MatchType {
			if len(actVals) != len(expVals) {
				mismatches = append(mismatches, newMismatch(QueryMismatch, selector.String(), joinValues(expVals), joinValues(actVals),
					"Expected query parameter %q to have %d value(s) but had %d", key, len(expVals), len(actVals)))
			}
			continue
		}

		if !stringSlicesEqual(expVals, actVals) {
			mismatches = append(mismatches, newMismatch(QueryMismatch, selector.String(), joinValues(expVals), joinValues(actVals),
				"Expected query parameter %q to be %v but was %v", key, expVals, actVals))
		}
	}

	for key, actVals := range actual {
		if _, ok := expected[key]; !ok {
			mismatches = append(mismatches, newMismatch(QueryMismatch, AppendField("$.query", key), "", joinValues(actVals),
				"Unexpected query parameter %q", key))
		}
	}

	return mismatches
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func joinValues(v []string) string {
	out := ""
	for i, s := range v {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}
