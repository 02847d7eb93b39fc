package matching

import (
	"fmt"

	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// MatchResponse compares actual against the expected response, honoring
// expected.MatchingRules. Canonical field order: status, headers, body.
func MatchResponse(expected, actual pact.Response) []Mismatch {
	var mismatches []Mismatch

	if expected.Status != actual.Status {
		mismatches = append(mismatches, newMismatch(StatusMismatch, "$.status", fmt.Sprintf("%d", expected.Status), fmt.Sprintf("%d", actual.Status),
			"Expected status %d but was %d", expected.Status, actual.Status))
	}

	mismatches = append(mismatches, compareHeaders(expected.Headers, actual.Headers, expected.MatchingRules)...)
	mismatches = append(mismatches, compareBody(expected.Body, actual.Body, expected.MatchingRules)...)

	return mismatches
}
