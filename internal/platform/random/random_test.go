package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntRangeStaysInclusive(t *testing.T) {
	src := New(42)
	seenMin, seenMax := false, false
	for i := 0; i < 2000; i++ {
		v := IntRange(src, 1, 10)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 10)
		seenMin = seenMin || v == 1
		seenMax = seenMax || v == 10
	}
	assert.True(t, seenMin, "expected lower bound to be drawn")
	assert.True(t, seenMax, "expected upper bound to be drawn")
}

func TestIntRangeDegenerate(t *testing.T) {
	assert.Equal(t, 7, IntRange(NewSequence(0.9), 7, 7))
}

func TestSequenceReplaysAndWraps(t *testing.T) {
	s := NewSequence(0.2, 0.9)
	assert.Equal(t, 0.2, s.Float64())
	assert.Equal(t, 0.9, s.Float64())
	assert.Equal(t, 0.2, s.Float64())
	assert.Equal(t, 3, s.Draws())
}

func TestSequenceIntnBounds(t *testing.T) {
	s := NewSequence(0, 0.999, 1)
	assert.Equal(t, 0, s.Intn(4))
	assert.Equal(t, 3, s.Intn(4))
	assert.Equal(t, 3, s.Intn(4))
}

func TestPick(t *testing.T) {
	assert.Equal(t, "b", Pick(NewSequence(0.5), []string{"a", "b"}))
	assert.Equal(t, "", Pick(NewSequence(0.5), []string(nil)))
}

func TestNewSeed(t *testing.T) {
	_, err := NewSeed()
	require.NoError(t, err)
}
