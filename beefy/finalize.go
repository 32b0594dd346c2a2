package beefy

import (
	"context"

	"go.uber.org/zap"

	"github.com/beefynet/beefy/codec"
	"github.com/beefynet/beefy/common/types"
)

// finalize implements §4.5: record a newly concluded BEEFY block and
// notify the outbound sinks. It never regresses best_beefy_block.
func (w *Worker) finalize(ctx context.Context, proof FinalityProof, selfProduced bool) {
	w.oracle.tryPrune()

	number := proof.BlockNumber()
	if w.bestBeefyBlock != nil && number <= *w.bestBeefyBlock {
		w.log.Debug("can't set best beefy to older", zap.Uint64("block", number.Uint64()))
		return
	}

	n := number
	w.bestBeefyBlock = &n
	observeBestBeefyBlock(n.Uint64())

	if hash, ok, err := w.client.Hash(ctx, number); err != nil {
		w.log.Debug("fetching hash for best beefy block failed", zap.Uint64("block", number.Uint64()), zap.Error(err))
	} else if ok {
		w.bestBlockSink.NotifyBestBlock(hash)
	}

	w.justificationSink.NotifyJustification(proof)

	if selfProduced {
		encoded, err := codec.Encode(&proof)
		if err != nil {
			w.log.Debug("encoding self-produced justification failed", zap.Error(err))
			return
		}
		if err := w.client.AppendJustification(ctx, number, encoded); err != nil {
			w.log.Debug("appending self-produced justification to backend failed",
				zap.Uint64("block", number.Uint64()), zap.Error(err))
		}
	}
}

// verifyFinalityProof checks an on-demand-fetched proof before it reaches
// triage, resolving the acknowledged gap in the source implementation
// that skipped this check. A proof verifies if its signer count meets the
// threshold of the validator set its commitment claims, and every present
// signature actually verifies under that set's corresponding authority.
func (w *Worker) verifyFinalityProof(proof FinalityProof) bool {
	if proof.Version != FinalityProofV1 || w.keystore == nil {
		return false
	}
	sc := proof.V1
	vs, ok := w.validatorSetByID(sc.Commitment.ValidatorSetID)
	if !ok {
		return false
	}
	if len(sc.Signatures) != vs.Len() {
		return false
	}
	encoded, err := codec.Encode(&sc.Commitment)
	if err != nil {
		return false
	}
	signerCount := 0
	for i, sig := range sc.Signatures {
		if sig == nil {
			continue
		}
		if !w.keystore.Verify(vs.Validators()[i], encoded, *sig) {
			return false
		}
		signerCount++
	}
	return signerCount >= vs.Threshold()
}

// validatorSetByID finds the validator set for id among the oracle's
// currently tracked sessions. A proof for a set outside that window can't
// be verified locally and is rejected rather than trusted blindly.
func (w *Worker) validatorSetByID(id types.ValidatorSetID) (ValidatorSet, bool) {
	for _, s := range w.oracle.sessions {
		if s.validatorSetID() == id {
			return s.validatorSet, true
		}
	}
	return ValidatorSet{}, false
}
