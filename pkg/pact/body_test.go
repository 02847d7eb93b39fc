package pact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionalBodyVariants(t *testing.T) {
	assert.True(t, Missing().IsMissing())
	assert.True(t, Empty().IsEmpty())
	assert.True(t, Null().IsNull())
	assert.True(t, Present([]byte("hello"), "text/plain").IsPresent())
}

func TestPresentOfEmptyBytesIsEmpty(t *testing.T) {
	// A Present constructed from zero bytes is indistinguishable from Empty:
	// both variants carry no bytes. Present never yields Missing or Null;
	// those come only from Missing() (or the zero value) and Null().
	b := Present(nil, "")
	assert.True(t, b.IsEmpty())
	assert.False(t, b.IsPresent())
}

func TestOptionalBodyStringOnlyForPresent(t *testing.T) {
	assert.Equal(t, "hello", Present([]byte("hello"), "text/plain").String())
	assert.Equal(t, "", Missing().String())
	assert.Equal(t, "", Empty().String())
	assert.Equal(t, "", Null().String())
}
