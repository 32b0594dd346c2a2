package beefy

import "github.com/beefynet/beefy/common/types"

// Commitment is the tuple a validator signs: a payload, the block it
// describes, and the validator set it was signed under.
type Commitment struct {
	Payload        Payload
	BlockNumber    types.BlockNumber
	ValidatorSetID types.ValidatorSetID
}

// Vote is one authority's signature over a commitment. Validity (signature
// verifies, authority belongs to the named set) is assumed pre-checked by
// whichever upstream produced it; the aggregator does not re-verify.
type Vote struct {
	Commitment  Commitment
	AuthorityID types.AuthorityID
	Signature   types.Signature
}

// SignedCommitment pairs a commitment with a positional signature vector:
// index i is the signature of validator i in the session's validator set,
// or nil if that validator hasn't signed.
type SignedCommitment struct {
	Commitment Commitment
	Signatures []*types.Signature
}

// SignerCount returns how many positions carry a signature.
func (sc SignedCommitment) SignerCount() int {
	n := 0
	for _, s := range sc.Signatures {
		if s != nil {
			n++
		}
	}
	return n
}

// FinalityProofVersion discriminates the wire envelope. Only V1 is defined;
// decoders must reject anything else rather than guess at a layout.
type FinalityProofVersion uint8

const FinalityProofV1 FinalityProofVersion = 1

// FinalityProof is the versioned, consumable BEEFY output.
type FinalityProof struct {
	Version FinalityProofVersion
	V1      *SignedCommitment
}

// NewFinalityProofV1 wraps sc in the current envelope version.
func NewFinalityProofV1(sc SignedCommitment) FinalityProof {
	return FinalityProof{Version: FinalityProofV1, V1: &sc}
}

// BlockNumber returns the block number the proof attests to, regardless of
// envelope version, panicking on an unrecognized version (decoders must
// never construct one; this is an internal invariant, not an input check).
func (fp FinalityProof) BlockNumber() types.BlockNumber {
	switch fp.Version {
	case FinalityProofV1:
		return fp.V1.Commitment.BlockNumber
	default:
		panic("beefy: finality proof with unrecognized version")
	}
}
