package beefy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beefynet/beefy/common/types"
)

func bn(n uint64) types.BlockNumber { return types.BlockNumber(n) }

func TestVotingTargetFirstVoteOfSessionIsSessionStart(t *testing.T) {
	t.Parallel()

	got := votingTarget(nil, bn(200), bn(100), bn(4))
	require.NotNil(t, got)
	require.Equal(t, bn(100), *got)
}

func TestVotingTargetRefusesAheadOfBase(t *testing.T) {
	t.Parallel()

	// Base finality hasn't yet reached the session's start block.
	got := votingTarget(nil, bn(50), bn(100), bn(4))
	require.Nil(t, got)
}

func TestVotingTargetUsesMinDeltaWhenCaughtUp(t *testing.T) {
	t.Parallel()

	best := bn(100)
	got := votingTarget(&best, bn(104), bn(0), bn(4))
	require.NotNil(t, got)
	require.Equal(t, bn(104), *got)
}

func TestVotingTargetBacksOffWhenFallingBehind(t *testing.T) {
	t.Parallel()

	best := bn(100)
	got := votingTarget(&best, bn(130), bn(0), bn(4))
	require.NotNil(t, got)
	require.Equal(t, bn(116), *got, "step rounds up to the next power of two once it exceeds minDelta")
}

func TestVotingTargetNilWhenNextStepOutrunsBase(t *testing.T) {
	t.Parallel()

	best := bn(100)
	got := votingTarget(&best, bn(102), bn(0), bn(4))
	require.Nil(t, got, "no vote is due until base finality reaches the next target")
}

func TestVotingTargetNilWhenAlreadyCaughtUpToBase(t *testing.T) {
	t.Parallel()

	best := bn(100)
	got := votingTarget(&best, bn(100), bn(0), bn(4))
	require.Nil(t, got, "beefy is already at base finality; no further vote is due yet")
}
