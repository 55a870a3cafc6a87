package id

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_StrictlyIncreasingWithFrozenClock(t *testing.T) {
	frozen := time.UnixMilli(1_700_000_000_000)
	seq := NewSequence(func() time.Time { return frozen })

	first := seq.Next()
	second := seq.Next()
	third := seq.Next()

	assert.Equal(t, "1700000000000", first)
	assert.Equal(t, "1700000000001", second)
	assert.Equal(t, "1700000000002", third)
}

func TestSequence_FollowsClock(t *testing.T) {
	now := time.UnixMilli(1000)
	seq := NewSequence(func() time.Time { return now })

	assert.Equal(t, "1000", seq.Next())
	now = now.Add(5 * time.Second)
	assert.Equal(t, "6000", seq.Next())
}

func TestSequence_Uniqueness(t *testing.T) {
	seq := NewSequence(nil)
	ids := make(map[string]bool)
	for range 1000 {
		id := seq.Next()
		_, err := strconv.ParseInt(id, 10, 64)
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}
	assert.Len(t, ids, 1000)
}

func TestGenerate_Format(t *testing.T) {
	id, err := Generate("usr")
	require.NoError(t, err)

	prefix, rest, ok := strings.Cut(id, "-")
	require.True(t, ok)
	assert.Equal(t, "usr", prefix)
	assert.Len(t, rest, 21)
}
