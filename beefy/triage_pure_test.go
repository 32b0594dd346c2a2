package beefy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beefynet/beefy/common/types"
)

// TestTriageBuffersAheadOfWindowThenDrainsOnceMandatoryConcludes
// reproduces triage against a head session that hasn't concluded its
// mandatory round yet: only the session-start block is in the accepted
// window, everything else buffers until the mandatory round concludes and
// the window widens to best_base.
func TestTriageBuffersAheadOfWindowThenDrainsOnceMandatoryConcludes(t *testing.T) {
	t.Parallel()

	vs := NewValidatorSet(types.ValidatorSetID(1), fourAuthorityIDs())
	o := newOracle()
	o.addSession(newAggregator(bn(10), vs))
	bestBase := bn(20)

	votes := newPendingBuffer[types.BlockNumber]()
	var processed []types.BlockNumber
	for _, block := range []types.BlockNumber{bn(10), bn(11), bn(12), bn(20), bn(21), bn(22)} {
		disposition, err := o.triageRound(block, bestBase)
		require.NoError(t, err)
		switch disposition {
		case Process:
			processed = append(processed, block)
		case Enqueue:
			votes.add(block, block)
		case Drop:
			t.Fatalf("block %d unexpectedly dropped", block)
		}
	}
	require.Equal(t, []types.BlockNumber{bn(10)}, processed)
	require.Len(t, votes.items, 5)

	concludeMandatory(o.head(), vs)

	lo, hi, err := o.acceptedInterval(bestBase)
	require.NoError(t, err)
	drained := votes.drain(lo, hi)

	var drainedBlocks []types.BlockNumber
	for _, entry := range drained {
		drainedBlocks = append(drainedBlocks, entry.BlockNumber)
	}
	require.Equal(t, []types.BlockNumber{bn(11), bn(12), bn(20)}, drainedBlocks)
	require.Len(t, votes.items, 2, "blocks 21 and 22 remain buffered, past best_base")
	require.Contains(t, votes.items, bn(21))
	require.Contains(t, votes.items, bn(22))
}
