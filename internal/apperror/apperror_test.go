package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOfLeafError(t *testing.T) {
	err := New(Duplicate, "handle taken")
	assert.Equal(t, Duplicate, KindOf(err))
	assert.True(t, Is(err, Duplicate))
	assert.False(t, Is(err, NotFound))
}

func TestKindOfWalksWrapChain(t *testing.T) {
	inner := New(Reference, "vendor gone")
	wrapped := fmt.Errorf("create admin: %w", inner)
	assert.Equal(t, Reference, KindOf(wrapped))
}

func TestKindOfUnclassifiedIsUnavailable(t *testing.T) {
	assert.Equal(t, Unavailable, KindOf(errors.New("connection refused")))
}

func TestWrapNilIsNil(t *testing.T) {
	require.NoError(t, Wrap(Duplicate, "nope", nil))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("pq: duplicate key value")
	err := Wrap(Duplicate, "create vendor", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, Duplicate, KindOf(err))
	assert.Contains(t, err.Error(), "create vendor")
}
