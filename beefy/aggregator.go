package beefy

import "github.com/beefynet/beefy/common/types"

// aggregator collects votes for every round within one session and decides
// when a round has reached its threshold. It never spans sessions: a new
// validator set means a new aggregator, created alongside the session.
type aggregator struct {
	sessionStart   types.BlockNumber
	validatorSet   ValidatorSet
	mandatoryDone  bool
	rounds         map[roundKey]*round
}

func newAggregator(sessionStart types.BlockNumber, vs ValidatorSet) *aggregator {
	return &aggregator{
		sessionStart: sessionStart,
		validatorSet: vs,
		rounds:       make(map[roundKey]*round),
	}
}

func (a *aggregator) sessionStartBlock() types.BlockNumber { return a.sessionStart }
func (a *aggregator) validators() []types.AuthorityID      { return a.validatorSet.Validators() }
func (a *aggregator) validatorSetID() types.ValidatorSetID { return a.validatorSet.ID() }
func (a *aggregator) isMandatoryDone() bool                { return a.mandatoryDone }

func (a *aggregator) roundFor(c Commitment) *round {
	key := keyFor(c)
	r, ok := a.rounds[key]
	if !ok {
		r = newRound(c, a.validatorSet.Len())
		a.rounds[key] = r
	}
	return r
}

// addVote returns true iff v is newly recorded: the authority belongs to
// the session's validator set and had not already signed this round.
func (a *aggregator) addVote(v Vote, isSelfVote bool) bool {
	idx, ok := a.validatorSet.IndexOf(v.AuthorityID)
	if !ok {
		return false
	}
	r := a.roundFor(v.Commitment)
	if r.concluded {
		return false
	}
	return r.addVote(idx, v.AuthorityID, v.Signature, isSelfVote)
}

// shouldSelfVote reports whether the local node has not yet produced a
// vote for this commitment within this session.
func (a *aggregator) shouldSelfVote(c Commitment) bool {
	r, ok := a.rounds[keyFor(c)]
	if !ok {
		return true
	}
	return !r.selfVoted
}

// tryConclude returns the round's positional signature vector iff it has
// reached the session's threshold, consuming the round so a later call
// with the same commitment returns nil. If the concluded round is the
// session's mandatory round, mandatoryDone flips (and never reverts).
func (a *aggregator) tryConclude(c Commitment) []*types.Signature {
	key := keyFor(c)
	r, ok := a.rounds[key]
	if !ok || r.concluded {
		return nil
	}
	if r.signerCount() < a.validatorSet.Threshold() {
		return nil
	}
	r.concluded = true
	if c.BlockNumber == a.sessionStart {
		a.mandatoryDone = true
	}
	return r.signatures
}
