package mockserver

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pact-foundation/pact-mock-server/internal/matching"
	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// ReportEntry pairs an actual request received by the mock server with the
// dispatcher's verdict for it.
type ReportEntry struct {
	Request pact.Request
	Result  matching.DispatchResult
}

// VerificationReport is the ordered sequence of (actualRequest, MatchResult)
// a mock server session accumulates, plus the derived predicates a consumer
// test uses to decide pass/fail at teardown.
type VerificationReport struct {
	mu               sync.Mutex
	interactionCount int
	matchedIndices   map[int]bool
	entries          []ReportEntry
}

func newVerificationReport(interactionCount int) *VerificationReport {
	return &VerificationReport{
		interactionCount: interactionCount,
		matchedIndices:   make(map[int]bool),
	}
}

func (r *VerificationReport) record(actual pact.Request, result matching.DispatchResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, ReportEntry{Request: actual, Result: result})
	if result.Outcome == matching.Match {
		r.matchedIndices[result.InteractionIndex] = true
	}
}

// Entries returns a snapshot of the recorded (request, result) pairs in the
// order they were recorded, i.e. the order in which dispatch completed, not
// the order in which requests arrived.
func (r *VerificationReport) Entries() []ReportEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ReportEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// AllMatched reports whether every registered interaction was matched by at
// least one recorded request.
func (r *VerificationReport) AllMatched() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matchedIndices) == r.interactionCount
}

// NoUnexpected reports whether no recorded request dispatched to NotFound.
func (r *VerificationReport) NoUnexpected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Result.Outcome == matching.NotFound {
			return false
		}
	}
	return true
}

// UnmatchedDescriptions returns the descriptions of registered interactions
// that were never matched, in declaration order.
func (r *VerificationReport) UnmatchedDescriptions(interactions []pact.Interaction) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for i, inter := range interactions {
		if !r.matchedIndices[i] {
			out = append(out, inter.Description)
		}
	}
	return out
}

// Summary renders a human-readable teardown message enumerating each
// un-matched expected interaction and each unexpected received request, per
// the consumer-side verification contract.
func (r *VerificationReport) Summary(interactions []pact.Interaction) string {
	var b strings.Builder
	for _, desc := range r.UnmatchedDescriptions(interactions) {
		fmt.Fprintf(&b, "expected interaction never matched: %s\n", desc)
	}
	for _, e := range r.Entries() {
		if e.Result.Outcome == matching.NotFound {
			fmt.Fprintf(&b, "unexpected request: %s %s\n", e.Request.Method, e.Request.Path)
		}
	}
	return b.String()
}
