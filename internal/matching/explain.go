package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// NearMiss is a per-interaction diagnostic explaining why an actual request
// did not match it, ordered closest-first. It exists to help a human debug
// a NotFound/PartialMismatch dispatch outcome, not to affect dispatch
// itself (see dispatch.go).
type NearMiss struct {
	Description string
	Mismatches  []Mismatch
}

// Explain ranks every interaction against actual the same way Dispatch
// does, and returns a human-readable summary for each, closest match
// first. An empty Mismatches slice means that interaction is the dispatch
// winner.
func Explain(interactions []pact.Interaction, actual pact.Request) []NearMiss {
	misses := make([]NearMiss, len(interactions))
	for i, inter := range interactions {
		misses[i] = NearMiss{Description: inter.Description, Mismatches: MatchRequest(inter.Request, actual)}
	}
	sort.SliceStable(misses, func(i, j int) bool {
		return distinctKinds(misses[i].Mismatches) < distinctKinds(misses[j].Mismatches)
	})
	return misses
}

// String renders a NearMiss as a single multi-line diagnostic suitable for
// inclusion in a verification report or an HTTP 500 response body.
func (n NearMiss) String() string {
	if len(n.Mismatches) == 0 {
		return fmt.Sprintf("%s: matched", n.Description)
	}
	lines := make([]string, 0, len(n.Mismatches)+1)
	lines = append(lines, fmt.Sprintf("%s:", n.Description))
	for _, m := range n.Mismatches {
		lines = append(lines, fmt.Sprintf("  - %s: %s", m.Kind, m.Message))
	}
	return strings.Join(lines, "\n")
}
