package beefy

import (
	"context"

	"go.uber.org/zap"

	"github.com/beefynet/beefy/common/types"
)

// triageVote implements §4.4 step 1-3 for an incoming vote.
func (w *Worker) triageVote(ctx context.Context, v Vote) {
	disposition, err := w.oracle.triageRound(v.Commitment.BlockNumber, w.bestBaseNumber())
	if err != nil {
		w.log.Debug("triaging vote failed", zap.Error(err))
		return
	}
	switch disposition {
	case Process:
		w.handleVote(ctx, v, false)
	case Enqueue:
		w.pendingVotes.add(v.Commitment.BlockNumber, v)
	case Drop:
	}
}

// triageJustification implements §4.4 step 1-3 for an incoming
// justification, whether locally imported or fetched on demand.
func (w *Worker) triageJustification(proof FinalityProof) {
	disposition, err := w.oracle.triageRound(proof.BlockNumber(), w.bestBaseNumber())
	if err != nil {
		w.log.Debug("triaging justification failed", zap.Error(err))
		return
	}
	switch disposition {
	case Process:
		w.finalize(w.ctx, proof, false)
	case Enqueue:
		w.pendingJustifications.add(proof.BlockNumber(), proof)
	case Drop:
	}
}

// drainPending implements the pending-buffer drain pass run after every
// event when the node isn't major-syncing. Justifications drain before
// votes, since a drained justification can advance mandatoryDone and
// widen the interval votes in the same pass get drained against.
func (w *Worker) drainPending() {
	best := w.bestBaseNumber()
	lo, hi, err := w.oracle.acceptedInterval(best)
	if err != nil {
		return
	}
	for _, entry := range w.pendingJustifications.drain(lo, hi) {
		for _, proof := range entry.Items {
			w.finalize(w.ctx, proof, false)
		}
	}

	// The interval may have widened: a drained mandatory justification can
	// flip mandatoryDone, so re-evaluate before draining votes.
	lo, hi, err = w.oracle.acceptedInterval(best)
	if err != nil {
		return
	}
	for _, entry := range w.pendingVotes.drain(lo, hi) {
		for _, v := range entry.Items {
			w.handleVote(w.ctx, v, false)
		}
	}
}

// handleVote feeds v through the Round Aggregator and, if it concludes the
// round, finalizes it. This is the single path both incoming and
// self-produced votes take.
func (w *Worker) handleVote(ctx context.Context, v Vote, isSelfVote bool) {
	w.gossipValidator.NoteRound(v.Commitment.BlockNumber)
	head := w.oracle.head()
	if head == nil {
		return
	}
	if v.Commitment.ValidatorSetID != head.validatorSetID() {
		return
	}
	if !head.addVote(v, isSelfVote) {
		return
	}
	if sigs := head.tryConclude(v.Commitment); sigs != nil {
		roundConcluded.Inc()
		w.finalize(ctx, NewFinalityProofV1(SignedCommitment{
			Commitment: v.Commitment,
			Signatures: sigs,
		}), isSelfVote)
		w.gossipValidator.ConcludeRound(v.Commitment.BlockNumber)
	}
}

func (w *Worker) bestBaseNumber() types.BlockNumber {
	if !w.haveBestBase {
		return 0
	}
	return w.bestBaseFinalized.Number
}
