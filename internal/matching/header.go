package matching

import (
	"strings"

	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// compareHeaders implements spec.md §4.2's header semantics: case-insensitive
// name match, whitespace-insensitive-around-commas value comparison, with
// per-header rules attached at "$.headers.<Name>" (bracket-quoted when the
// name needs it).
func compareHeaders(expected, actual map[string]string, rules pact.RuleSet) []Mismatch {
	if len(expected) == 0 {
		return nil
	}
	actualByLower := make(map[string]string, len(actual))
	for k, v := range actual {
		actualByLower[strings.ToLower(k)] = v
	}

	var mismatches []Mismatch
	for name, expVal := range expected {
		actVal, ok := actualByLower[strings.ToLower(name)]
		if !ok {
			mismatches = append(mismatches, newMismatch(HeaderMismatch, AppendField("$.headers", name), expVal, "",
				"Expected header %q but it was missing", name))
			continue
		}

		selector := MustParsePath(AppendField("$.headers", name))
		if rule, ok := bestRule(rules, selector); ok && rule.Match == pact.MatchRegex {
			if !regexMatches(rule.Regex, actVal) {
				mismatches = append(mismatches, newMismatch(HeaderMismatch, selector.String(), expVal, actVal,
					"Expected header %q to match %q but was %q", name, rule.Regex, actVal))
			}
			continue
		}

		if !headerValuesEqual(expVal, actVal) {
			mismatches = append(mismatches, newMismatch(HeaderMismatch, selector.String(), expVal, actVal,
				"Expected header %q to be %q but was %q", name, expVal, actVal))
		}
	}
	return mismatches
}

// headerValuesEqual compares comma-separated header values ignoring the
// whitespace that commonly surrounds each comma-separated item.
func headerValuesEqual(a, b string) bool {
	return joinTrimmed(a) == joinTrimmed(b)
}

func joinTrimmed(v string) string {
	parts := strings.Split(v, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ",")
}
