package gossip

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beefynet/beefy/common/types"
)

func TestValidatorNoteRoundExpandsBounds(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	v.NoteRound(types.BlockNumber(10))
	lo, hi, have := v.bounds()
	require.True(t, have)
	require.Equal(t, types.BlockNumber(10), lo)
	require.Equal(t, types.BlockNumber(10), hi)

	v.NoteRound(types.BlockNumber(12))
	lo, hi, have = v.bounds()
	require.True(t, have)
	require.Equal(t, types.BlockNumber(10), lo, "lo stays at the oldest open round")
	require.Equal(t, types.BlockNumber(12), hi)
}

func TestValidatorConcludeRoundAdvancesLowerBound(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	v.NoteRound(types.BlockNumber(10))
	v.NoteRound(types.BlockNumber(12))

	v.ConcludeRound(types.BlockNumber(10))
	lo, _, have := v.bounds()
	require.True(t, have)
	require.Equal(t, types.BlockNumber(11), lo)
}

func TestValidatorConcludeRoundIgnoresStaleRound(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	v.NoteRound(types.BlockNumber(10))
	v.ConcludeRound(types.BlockNumber(10))

	// Concluding an already-concluded round must not move lo backward.
	v.ConcludeRound(types.BlockNumber(5))
	lo, _, have := v.bounds()
	require.True(t, have)
	require.Equal(t, types.BlockNumber(11), lo)
}

func TestValidatorBoundsUnsetInitially(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	_, _, have := v.bounds()
	require.False(t, have)
}
