package matchers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pact-foundation/pact-mock-server/internal/matching"
	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

func TestLiteralEmitsNoRule(t *testing.T) {
	rs := RulesFor("$.body", Literal("hello"))
	assert.True(t, rs.IsEmpty())
	assert.Equal(t, "hello", Literal("hello").Example())
}

func TestLikeTypeEmitsTypeRuleAndRecurses(t *testing.T) {
	p := LikeType(Literal("Hello"))
	rs := RulesFor("$.body.message", p)
	rule, ok := rs.Get("$.body.message")
	require.True(t, ok)
	assert.Equal(t, pact.MatchType, rule.Match)
	assert.Equal(t, "Hello", p.Example())
}

func TestLikeArrayShapeAndRules(t *testing.T) {
	p := LikeArray(Literal("hello"), 2)
	assert.Equal(t, []any{"hello", "hello"}, p.Example())

	rs := RulesFor("$.body", p)
	top, ok := rs.Get("$.body")
	require.True(t, ok)
	assert.Equal(t, pact.MatchType, top.Match)
	require.NotNil(t, top.Min)
	assert.Equal(t, 2, *top.Min)

	anyField, ok := rs.Get("$.body[*].*")
	require.True(t, ok)
	assert.Equal(t, pact.MatchType, anyField.Match)
}

func TestLikeArrayDefaultsMinToOne(t *testing.T) {
	p := LikeArray(Literal(1), 0)
	assert.Equal(t, []any{1}, p.Example())
}

func TestRegexRejectsInvalidPattern(t *testing.T) {
	_, err := Regex("(unterminated", "x")
	assert.Error(t, err)
}

func TestRegexEmitsRegexRule(t *testing.T) {
	p, err := Regex("application/.*", "application/json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", p.Example())

	rs := RulesFor("$.headers['Content-Type']", p)
	rule, ok := rs.Get("$.headers['Content-Type']")
	require.True(t, ok)
	assert.Equal(t, pact.MatchRegex, rule.Match)
	assert.Equal(t, "application/.*", rule.Regex)
}

// TestE4LikeTypeAgainstMatchingEngine exercises spec.md §8 E4 end to end:
// a LikeType pattern on "$.body.message" matches any same-kind value and
// rejects a different-kind one.
func TestE4LikeTypeAgainstMatchingEngine(t *testing.T) {
	body, rules, err := JSONBody(Object(Field{Name: "message", Pattern: LikeType(Literal("Hello"))}))
	require.NoError(t, err)

	expected := pact.Request{Method: "POST", Path: "/messages", Body: body, MatchingRules: rules}

	matching1 := expected
	matching1.Body = pact.Present([]byte(`{"message": "Goodbye"}`), "application/json")
	assert.Empty(t, matching.MatchRequest(expected, matching1))

	mismatching := expected
	mismatching.Body = pact.Present([]byte(`{"message": false}`), "application/json")
	mismatches := matching.MatchRequest(expected, mismatching)
	require.Len(t, mismatches, 1)
	assert.Equal(t, matching.BodyMismatch, mismatches[0].Kind)
	assert.Equal(t, "$.body.message", mismatches[0].Path)
}

// TestE5ArrayLikeAgainstMatchingEngine exercises spec.md §8 E5.
func TestE5ArrayLikeAgainstMatchingEngine(t *testing.T) {
	p := LikeArray(LikeType(Literal("hello")), 2)
	body, rules, err := JSONBody(p)
	require.NoError(t, err)

	expected := pact.Request{Method: "POST", Path: "/items", Body: body, MatchingRules: rules}

	matching1 := expected
	matching1.Body = pact.Present([]byte(`["a", "b", "c"]`), "application/json")
	assert.Empty(t, matching.MatchRequest(expected, matching1))

	tooShort := expected
	tooShort.Body = pact.Present([]byte(`["a"]`), "application/json")
	assert.Len(t, matching.MatchRequest(expected, tooShort), 1)

	wrongType := expected
	wrongType.Body = pact.Present([]byte(`[1, 2]`), "application/json")
	assert.Len(t, matching.MatchRequest(expected, wrongType), 1)
}

func TestObjectAndListComposeExampleAndRules(t *testing.T) {
	p := Object(
		Field{Name: "id", Pattern: LikeType(Literal(1))},
		Field{Name: "tags", Pattern: List(Literal("a"), Literal("b"))},
	)
	assert.Equal(t, map[string]any{"id": 1, "tags": []any{"a", "b"}}, p.Example())

	rs := RulesFor("$.body", p)
	rule, ok := rs.Get("$.body.id")
	require.True(t, ok)
	assert.Equal(t, pact.MatchType, rule.Match)
	assert.False(t, rs.IsEmpty())
}

func TestConvenienceMatchersHaveStringExamplesAndRegexRules(t *testing.T) {
	for _, p := range []Pattern{UUID(), HexValue(), IPv4Address(), Timestamp()} {
		example, ok := p.Example().(string)
		require.True(t, ok)
		assert.NotEmpty(t, example)

		rs := RulesFor("$.body", p)
		rule, ok := rs.Get("$.body")
		require.True(t, ok)
		assert.Equal(t, pact.MatchRegex, rule.Match)
	}
}

func TestIntegerAndDecimalAreLikeTypeAliases(t *testing.T) {
	assert.Equal(t, 42, Integer(42).Example())
	assert.Equal(t, 4.2, Decimal(4.2).Example())

	rs := RulesFor("$.body.n", Integer(42))
	rule, ok := rs.Get("$.body.n")
	require.True(t, ok)
	assert.Equal(t, pact.MatchType, rule.Match)
}

func TestHeaderBuildsValueAndRule(t *testing.T) {
	rs := pact.NewRuleSet()
	p, err := Regex("application/.*", "application/json")
	require.NoError(t, err)

	v, err := Header("Content-Type", p, &rs)
	require.NoError(t, err)
	assert.Equal(t, "application/json", v)

	rule, ok := rs.Get("$.headers['Content-Type']")
	require.True(t, ok)
	assert.Equal(t, pact.MatchRegex, rule.Match)
}

func TestPathBuildsValueAndRule(t *testing.T) {
	rs := pact.NewRuleSet()
	p, err := Regex(`/widgets/\d+`, "/widgets/42")
	require.NoError(t, err)

	v, err := Path(p, &rs)
	require.NoError(t, err)
	assert.Equal(t, "/widgets/42", v)

	rule, ok := rs.Get("$.path")
	require.True(t, ok)
	assert.Equal(t, pact.MatchRegex, rule.Match)
}
