package pact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleSetSetOverwritesInPlace(t *testing.T) {
	rs := NewRuleSet()
	rs.Set("$.body.id", Rule{Match: MatchType})
	rs.Set("$.body.other", Rule{Match: MatchType})
	rs.Set("$.body.id", Rule{Match: MatchRegex, Regex: "[0-9]+"})

	got, ok := rs.Get("$.body.id")
	assert.True(t, ok)
	assert.Equal(t, MatchRegex, got.Match)
	assert.Equal(t, "[0-9]+", got.Regex)

	// Re-setting an existing path does not change its insertion position.
	assert.Equal(t, []string{"$.body.id", "$.body.other"}, rs.Paths())
}

func TestRuleSetIndexTracksInsertionOrder(t *testing.T) {
	rs := NewRuleSet()
	rs.Set("$.body", Rule{Match: MatchType})
	rs.Set("$.body[*]", Rule{Match: MatchType})

	assert.Equal(t, 0, rs.Index("$.body"))
	assert.Equal(t, 1, rs.Index("$.body[*]"))
	assert.Equal(t, -1, rs.Index("$.nope"))
}

func TestRuleSetCloneIsIndependent(t *testing.T) {
	rs := NewRuleSet()
	rs.Set("$.body", Rule{Match: MatchType, Min: IntPtr(2)})

	clone := rs.Clone()
	clone.Set("$.body", Rule{Match: MatchEquality})

	before, _ := rs.Get("$.body")
	after, _ := clone.Get("$.body")
	assert.Equal(t, MatchType, before.Match)
	assert.Equal(t, MatchEquality, after.Match)
}
