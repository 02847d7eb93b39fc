package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathSegments(t *testing.T) {
	p, err := ParsePath("$.body.items[*].id")
	require.NoError(t, err)
	require.Len(t, p.Segments, 5)
	assert.Equal(t, SegRoot, p.Segments[0].Kind)
	assert.Equal(t, SegField, p.Segments[1].Kind)
	assert.Equal(t, "body", p.Segments[1].Name)
	assert.Equal(t, SegField, p.Segments[2].Kind)
	assert.Equal(t, "items", p.Segments[2].Name)
	assert.Equal(t, SegWildcardIndex, p.Segments[3].Kind)
	assert.Equal(t, SegField, p.Segments[4].Kind)
	assert.Equal(t, "id", p.Segments[4].Name)
}

func TestParsePathBracketQuotedField(t *testing.T) {
	p, err := ParsePath("$.headers['Content-Type']")
	require.NoError(t, err)
	require.Len(t, p.Segments, 3)
	assert.Equal(t, "Content-Type", p.Segments[2].Name)
}

func TestParsePathRejectsMissingRoot(t *testing.T) {
	_, err := ParsePath("body.id")
	assert.Error(t, err)
}

func TestPathStringRoundTrip(t *testing.T) {
	for _, expr := range []string{"$.body.message", "$.body[*]", "$.body[*].*", "$[2]"} {
		p, err := ParsePath(expr)
		require.NoError(t, err)
		assert.Equal(t, expr, p.String())
	}
}

func TestPathStringQuotesNonIdentifierFields(t *testing.T) {
	assert.Equal(t, "$.headers['Content-Type']", AppendField("$.headers", "Content-Type"))
	assert.Equal(t, "$.body.items[*].id", AppendField(AppendWildcardIndex("$.body.items"), "id"))
}

func TestSpecificityExactBeatsWildcard(t *testing.T) {
	exact := MustParsePath("$.body.items[3].id")
	wildcard := MustParsePath("$.body.items[*].id")
	assert.True(t, moreSpecificThan(exact, wildcard))
	assert.False(t, moreSpecificThan(wildcard, exact))
}

func TestSpecificityLongestPrefixWins(t *testing.T) {
	shallow := MustParsePath("$.body")
	deep := MustParsePath("$.body.message")
	assert.True(t, moreSpecificThan(deep, shallow))
}

func TestAppliesMatchesWildcardsStructurally(t *testing.T) {
	selector := MustParsePath("$.body.items[*].id")
	target := MustParsePath("$.body.items[7].id")
	assert.True(t, applies(selector, target))
	assert.True(t, exactApplies(selector, target))

	tooDeep := MustParsePath("$.body.items[7].id.sub")
	assert.True(t, applies(selector, tooDeep))
	assert.False(t, exactApplies(selector, tooDeep))
}
