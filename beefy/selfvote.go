package beefy

import (
	"context"

	"go.uber.org/zap"

	"github.com/beefynet/beefy/codec"
	"github.com/beefynet/beefy/common/types"
)

// produceSelfVote implements §4.6: pick the next voting target, build and
// sign a commitment for it, run it through the normal vote-handling path,
// and gossip it. Any step that can't proceed aborts quietly (logged at
// debug, or at warn for a signing failure), since voting is best-effort and
// the next event will retry.
func (w *Worker) produceSelfVote(ctx context.Context) {
	head := w.oracle.head()
	if head == nil {
		return
	}
	target := w.oracle.votingTarget(w.bestBeefyBlock, w.bestBaseNumber(), w.config.MinVoteDelta)
	if target == nil {
		return
	}

	header, err := w.headerFor(ctx, *target)
	if err != nil {
		w.log.Debug("fetching target header failed", zap.Uint64("block", target.Uint64()), zap.Error(err))
		return
	}

	root, ok := FindMMRRoot(header)
	if !ok {
		root, ok, err = w.runtime.MMRRoot(ctx, *target)
		if err != nil {
			w.log.Debug("querying runtime mmr root failed", zap.Uint64("block", target.Uint64()), zap.Error(err))
			return
		}
		if !ok {
			return
		}
	}

	commitment := Commitment{
		Payload:        MMRRootPayload(root),
		BlockNumber:    *target,
		ValidatorSetID: head.validatorSetID(),
	}

	if !head.shouldSelfVote(commitment) {
		return
	}

	if w.keystore == nil {
		w.log.Debug("skipping vote", zap.Error(newError(ErrKeystore, "no keystore configured", nil)))
		return
	}
	authority, ok := w.keystore.AuthorityID(head.validators())
	if !ok {
		w.log.Debug("no local authority key for active validator set, skipping vote")
		return
	}

	encoded, err := codec.Encode(&commitment)
	if err != nil {
		w.log.Debug("encoding commitment failed", zap.Error(err))
		return
	}

	sig, err := w.keystore.Sign(authority, encoded)
	if err != nil {
		w.log.Warn("signing commitment failed", zap.Stringer("authority", stringerAuthorityID(authority)), zap.Error(err))
		return
	}

	vote := Vote{Commitment: commitment, AuthorityID: authority, Signature: sig}
	w.handleVote(ctx, vote, true)
	observeBestVotedOn(target.Uint64())

	encodedVote, err := codec.Encode(&vote)
	if err != nil {
		w.log.Debug("encoding vote for gossip failed", zap.Error(err))
		return
	}
	if err := w.gossip.GossipMessage(ctx, encodedVote, false); err != nil {
		w.log.Debug("gossiping vote failed", zap.Error(err))
		return
	}
	votesSent.Inc()
}

// headerFor fetches the header for number, reusing the already-known
// best-base header when the numbers match, then a small LRU cache, before
// falling back to a backend round-trip. Back-off retargeting (§4.6) means
// the same few recent block numbers get looked up repeatedly across
// consecutive self-vote attempts.
func (w *Worker) headerFor(ctx context.Context, number types.BlockNumber) (Header, error) {
	if w.haveBestBase && w.bestBaseFinalized.Number == number {
		return w.bestBaseFinalized, nil
	}
	if w.headerCache != nil {
		if h, ok := w.headerCache.Get(number); ok {
			return h, nil
		}
	}
	header, err := w.client.ExpectHeader(ctx, number)
	if err != nil {
		return Header{}, err
	}
	if w.headerCache != nil {
		w.headerCache.Add(number, header)
	}
	return header, nil
}

type stringerAuthorityID types.AuthorityID

func (a stringerAuthorityID) String() string { return types.AuthorityID(a).ShortString() }
