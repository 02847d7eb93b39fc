package matching

import (
	"sort"

	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// Outcome classifies the result of dispatching one actual request against a
// pact's registered interactions (spec.md §4.2 "Dispatch").
type Outcome int

const (
	Match Outcome = iota
	PartialMismatch
	NotFound
)

// DispatchResult is the outcome of ranking every interaction against an
// actual request. InteractionIndex is -1 for NotFound.
type DispatchResult struct {
	Outcome          Outcome
	InteractionIndex int
	Mismatches       []Mismatch
}

// Dispatch ranks interactions by the number of distinct mismatch kinds each
// produces against actual (ascending), transliterated from the reference
// mock server's method_or_path_mismatch/match_request dispatcher. The top
// candidate is classified Match (no mismatches), NotFound (its mismatches
// include a method or path mismatch, meaning the request does not
// plausibly belong to any registered interaction), or PartialMismatch
// (anything else). Ties in rank are broken by declaration order.
func Dispatch(interactions []pact.Interaction, actual pact.Request) DispatchResult {
	if len(interactions) == 0 {
		return DispatchResult{Outcome: NotFound, InteractionIndex: -1}
	}

	type candidate struct {
		index      int
		mismatches []Mismatch
	}
	candidates := make([]candidate, len(interactions))
	for i, inter := range interactions {
		candidates[i] = candidate{index: i, mismatches: MatchRequest(inter.Request, actual)}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return distinctKinds(candidates[i].mismatches) < distinctKinds(candidates[j].mismatches)
	})

	best := candidates[0]
	switch {
	case len(best.mismatches) == 0:
		return DispatchResult{Outcome: Match, InteractionIndex: best.index}
	case hasAny(best.mismatches, MethodMismatch, PathMismatch):
		return DispatchResult{Outcome: NotFound, InteractionIndex: -1, Mismatches: best.mismatches}
	default:
		return DispatchResult{Outcome: PartialMismatch, InteractionIndex: best.index, Mismatches: best.mismatches}
	}
}
