package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

func TestE1LiteralHeaderMatches(t *testing.T) {
	expected := pact.Request{
		Method:  "GET",
		Path:    "/widgets",
		Headers: map[string]string{"Content-Type": "application/json"},
	}
	actual := expected
	assert.Empty(t, MatchRequest(expected, actual))
}

func TestE2RegexHeaderMatchesMultipleValues(t *testing.T) {
	rules := pact.NewRuleSet()
	rules.Set("$.headers['Content-Type']", pact.Rule{Match: pact.MatchRegex, Regex: "application/.*"})
	expected := pact.Request{
		Method:        "GET",
		Path:          "/widgets",
		Headers:       map[string]string{"Content-Type": "application/json"},
		MatchingRules: rules,
	}

	matchingActual := expected
	matchingActual.Headers = map[string]string{"Content-Type": "application/xml"}
	assert.Empty(t, MatchRequest(expected, matchingActual))

	mismatchActual := expected
	mismatchActual.Headers = map[string]string{"Content-Type": "text/html"}
	mismatches := MatchRequest(expected, mismatchActual)
	require.Len(t, mismatches, 1)
	assert.Equal(t, HeaderMismatch, mismatches[0].Kind)
}

func TestE3LiteralBody(t *testing.T) {
	expected := pact.Request{
		Method: "POST",
		Path:   "/echo",
		Body:   pact.Present([]byte("Hello"), "text/plain"),
	}

	matching := expected
	matching.Body = pact.Present([]byte("Hello"), "text/plain")
	assert.Empty(t, MatchRequest(expected, matching))

	mismatching := expected
	mismatching.Body = pact.Present([]byte("Bye"), "text/plain")
	mismatches := MatchRequest(expected, mismatching)
	require.Len(t, mismatches, 1)
	assert.Equal(t, BodyMismatch, mismatches[0].Kind)
	assert.Equal(t, "$.body", mismatches[0].Path)
}

func TestE4JSONLikeType(t *testing.T) {
	rules := pact.NewRuleSet()
	rules.Set("$.body.message", pact.Rule{Match: pact.MatchType})
	expected := pact.Request{
		Method:        "POST",
		Path:          "/greet",
		Body:          pact.Present([]byte(`{"message": "Hello"}`), "application/json"),
		MatchingRules: rules,
	}

	matching := expected
	matching.Body = pact.Present([]byte(`{"message": "Goodbye"}`), "application/json")
	assert.Empty(t, MatchRequest(expected, matching))

	mismatching := expected
	mismatching.Body = pact.Present([]byte(`{"message": false}`), "application/json")
	mismatches := MatchRequest(expected, mismatching)
	require.Len(t, mismatches, 1)
	assert.Equal(t, BodyMismatch, mismatches[0].Kind)
	assert.Equal(t, "$.body.message", mismatches[0].Path)
}

func TestE5ArrayLikeMinLength(t *testing.T) {
	rules := pact.NewRuleSet()
	rules.Set("$.body", pact.Rule{Match: pact.MatchType, Min: pact.IntPtr(2)})
	rules.Set("$.body[*]", pact.Rule{Match: pact.MatchType})
	expected := pact.Request{
		Method:        "POST",
		Path:          "/list",
		Body:          pact.Present([]byte(`["hello", "hello"]`), "application/json"),
		MatchingRules: rules,
	}

	ok := expected
	ok.Body = pact.Present([]byte(`["a", "b", "c"]`), "application/json")
	assert.Empty(t, MatchRequest(expected, ok))

	tooShort := expected
	tooShort.Body = pact.Present([]byte(`["a"]`), "application/json")
	mismatches := MatchRequest(expected, tooShort)
	require.Len(t, mismatches, 1)
	assert.Equal(t, BodyMismatch, mismatches[0].Kind)

	wrongType := expected
	wrongType.Body = pact.Present([]byte(`[1, 2]`), "application/json")
	mismatches = MatchRequest(expected, wrongType)
	require.Len(t, mismatches, 1)
	assert.Equal(t, BodyMismatch, mismatches[0].Kind)
	assert.Equal(t, "$.body[*]", mismatches[0].Path)
}

func TestInvariantExactCopyNeverMismatches(t *testing.T) {
	interaction := pact.Interaction{
		Description: "copy",
		Request: pact.Request{
			Method:  "PUT",
			Path:    "/things/1",
			Headers: map[string]string{"Accept": "application/json"},
			Body:    pact.Present([]byte(`{"a":1,"b":[1,2,3]}`), "application/json"),
		},
	}
	actual := interaction.Request
	assert.Empty(t, MatchRequest(interaction.Request, actual))
}

func TestDispatchClassifiesOutcomes(t *testing.T) {
	interactions := []pact.Interaction{
		{Description: "get widget", Request: pact.Request{Method: "GET", Path: "/widgets/1"}},
		{Description: "post widget", Request: pact.Request{Method: "POST", Path: "/widgets"}},
	}

	match := Dispatch(interactions, pact.Request{Method: "GET", Path: "/widgets/1"})
	assert.Equal(t, Match, match.Outcome)
	assert.Equal(t, 0, match.InteractionIndex)

	notFound := Dispatch(interactions, pact.Request{Method: "DELETE", Path: "/nope"})
	assert.Equal(t, NotFound, notFound.Outcome)
	assert.Equal(t, -1, notFound.InteractionIndex)

	partial := Dispatch(interactions, pact.Request{
		Method: "GET",
		Path:   "/widgets/1",
		Query:  map[string][]string{"unexpected": {"yes"}},
	})
	assert.Equal(t, PartialMismatch, partial.Outcome)
	assert.Equal(t, 0, partial.InteractionIndex)
}

func TestDispatchMonotonicityAddingInteractionDoesNotChangeEarlierMatch(t *testing.T) {
	first := []pact.Interaction{
		{Description: "a", Request: pact.Request{Method: "GET", Path: "/a"}},
	}
	actual := pact.Request{Method: "GET", Path: "/a"}
	before := Dispatch(first, actual)

	withMore := append(first, pact.Interaction{Description: "b", Request: pact.Request{Method: "GET", Path: "/b"}})
	after := Dispatch(withMore, actual)

	assert.Equal(t, before.Outcome, after.Outcome)
	assert.Equal(t, before.InteractionIndex, after.InteractionIndex)
}

func TestSpecificRuleWinsOverWildcardAtSamePoint(t *testing.T) {
	rules := pact.NewRuleSet()
	rules.Set("$.body.items[*]", pact.Rule{Match: pact.MatchType})
	rules.Set("$.body.items[1]", pact.Rule{Match: pact.MatchRegex, Regex: "^[a-z]+$"})

	expected := pact.Request{
		Method:        "POST",
		Path:          "/x",
		Body:          pact.Present([]byte(`{"items": ["ok", "ok"]}`), "application/json"),
		MatchingRules: rules,
	}

	actual := expected
	actual.Body = pact.Present([]byte(`{"items": ["ok", "NOPE1"]}`), "application/json")
	mismatches := MatchRequest(expected, actual)
	require.Len(t, mismatches, 1)
	assert.Equal(t, "$.body.items[1]", mismatches[0].Path)
}
