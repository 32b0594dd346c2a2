package beefy

import "github.com/beefynet/beefy/common/types"

// roundKey identifies one round: a specific payload voted on at a specific
// block number. Two votes for the same block number but different
// payloads (which should not happen under honest operation, but the wire
// format doesn't prevent it) are tracked as separate rounds.
type roundKey struct {
	blockNumber types.BlockNumber
	payload     string // canonical encoding of Payload, used as a map key
}

func keyFor(c Commitment) roundKey {
	enc, _ := encodePayload(c.Payload)
	return roundKey{blockNumber: c.BlockNumber, payload: string(enc)}
}

// round collects votes for a single (payload, block_number) key within one
// session. It never outlives the session whose validator set it indexes
// signatures against.
type round struct {
	commitment Commitment
	signatures []*types.Signature
	signedBy   map[types.AuthorityID]struct{}
	concluded  bool
	selfVoted  bool
}

func newRound(c Commitment, n int) *round {
	return &round{
		commitment: c,
		signatures: make([]*types.Signature, n),
		signedBy:   make(map[types.AuthorityID]struct{}),
	}
}

// addVote records a signature at the validator's position. Returns true
// iff this is the first time this authority signed this round; duplicate
// votes for the same (round, authority) are idempotent.
func (r *round) addVote(idx int, authority types.AuthorityID, sig types.Signature, isSelf bool) bool {
	if _, dup := r.signedBy[authority]; dup {
		return false
	}
	r.signedBy[authority] = struct{}{}
	r.signatures[idx] = &sig
	if isSelf {
		r.selfVoted = true
	}
	return true
}

func (r *round) signerCount() int {
	return len(r.signedBy)
}
