package beefy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beefynet/beefy/common/types"
)

// concludeMandatory drives s's mandatory round (the one at its own session
// start) to conclusion with every validator in vs voting, so tests can
// reach a mandatoryDone state without depending on the aggregator's
// internal bookkeeping.
func concludeMandatory(s *aggregator, vs ValidatorSet) {
	c := testCommitment(s.sessionStartBlock())
	c.ValidatorSetID = vs.ID()
	for _, id := range vs.Validators() {
		s.addVote(Vote{Commitment: c, AuthorityID: id}, false)
	}
	s.tryConclude(c)
}

// TestOracleAcceptedIntervalNarrowsAndWidensAcrossLaggingSessions
// reproduces a three-session catch-up: sessions queued at 1, 11 and 21,
// each concluding its mandatory round in turn.
func TestOracleAcceptedIntervalNarrowsAndWidensAcrossLaggingSessions(t *testing.T) {
	t.Parallel()

	vs := NewValidatorSet(types.ValidatorSetID(1), fourAuthorityIDs())
	o := newOracle()
	o.addSession(newAggregator(bn(1), vs))
	o.addSession(newAggregator(bn(11), vs))
	o.addSession(newAggregator(bn(21), vs))

	lo, hi, err := o.acceptedInterval(bn(30))
	require.NoError(t, err)
	require.Equal(t, bn(1), lo)
	require.Equal(t, bn(1), hi)

	concludeMandatory(o.head(), vs)
	o.tryPrune()
	lo, hi, err = o.acceptedInterval(bn(30))
	require.NoError(t, err)
	require.Equal(t, bn(11), lo)
	require.Equal(t, bn(11), hi)

	concludeMandatory(o.head(), vs)
	o.tryPrune()
	lo, hi, err = o.acceptedInterval(bn(30))
	require.NoError(t, err)
	require.Equal(t, bn(21), lo)
	require.Equal(t, bn(21), hi)

	concludeMandatory(o.head(), vs)
	lo, hi, err = o.acceptedInterval(bn(30))
	require.NoError(t, err)
	require.Equal(t, bn(21), lo)
	require.Equal(t, bn(30), hi, "mandatoryDone widens hi to best_base")
}

func TestOracleAcceptedIntervalOnUninitializedOracleErrors(t *testing.T) {
	t.Parallel()

	o := newOracle()
	_, _, err := o.acceptedInterval(bn(10))
	require.Error(t, err)
}

func fourAuthorityIDs() []types.AuthorityID {
	return []types.AuthorityID{{0x01}, {0x02}, {0x03}, {0x04}}
}
