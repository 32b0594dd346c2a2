package beefy

import "github.com/beefynet/beefy/common/types"

// Disposition is the triage verdict for an incoming vote or justification.
type Disposition int

const (
	Process Disposition = iota
	Enqueue
	Drop
)

// oracle tracks the ordered queue of active sessions and answers the
// questions the event loop and triage need: what interval is currently
// acceptable, and what should happen to an item for a given block number.
//
// The queue's legal shapes, enforced by every mutation:
//  1. empty (uninitialized)
//  2. exactly one session with mandatoryDone true (up to date)
//  3. N>=1 sessions, all mandatoryDone false, oldest first (lagging)
type oracle struct {
	sessions []*aggregator
}

func newOracle() *oracle {
	return &oracle{}
}

// addSession appends a new session to the queue tail, then prunes.
func (o *oracle) addSession(s *aggregator) {
	o.sessions = append(o.sessions, s)
	o.tryPrune()
}

// head returns the session voting currently happens against, or nil if
// uninitialized.
func (o *oracle) head() *aggregator {
	if len(o.sessions) == 0 {
		return nil
	}
	return o.sessions[0]
}

// acceptedInterval returns the inclusive [lo, hi] of block numbers this
// worker will currently act on.
func (o *oracle) acceptedInterval(bestBase types.BlockNumber) (types.BlockNumber, types.BlockNumber, error) {
	h := o.head()
	if h == nil {
		return 0, 0, newError(ErrUninitSession, "accepted_interval", nil)
	}
	if h.isMandatoryDone() {
		return h.sessionStartBlock(), bestBase, nil
	}
	return h.sessionStartBlock(), h.sessionStartBlock(), nil
}

// triageRound classifies a block number against the current accepted
// interval.
func (o *oracle) triageRound(blockNumber, bestBase types.BlockNumber) (Disposition, error) {
	lo, hi, err := o.acceptedInterval(bestBase)
	if err != nil {
		return Drop, err
	}
	switch {
	case blockNumber < lo:
		return Drop, nil
	case blockNumber > hi:
		return Enqueue, nil
	default:
		return Process, nil
	}
}

// votingTarget computes the next block number the worker should attempt
// to sign. See target.go for the back-off arithmetic.
func (o *oracle) votingTarget(bestBeefy *types.BlockNumber, bestBase types.BlockNumber, minDelta types.BlockNumber) *types.BlockNumber {
	h := o.head()
	if h == nil {
		return nil
	}
	return votingTarget(bestBeefy, bestBase, h.sessionStartBlock(), minDelta)
}

// tryPrune applies the pruning rule: once more than one session is queued,
// drop every session whose mandatory round has already concluded, since
// only an unbroken run of not-yet-mandatory-done sessions needs to be kept
// in order. Runs after every finalization and after every addSession.
func (o *oracle) tryPrune() {
	if len(o.sessions) <= 1 {
		return
	}
	kept := o.sessions[:0]
	for _, s := range o.sessions {
		if !s.isMandatoryDone() {
			kept = append(kept, s)
		}
	}
	o.sessions = kept
}
