package types

import (
	"encoding/hex"

	"github.com/spacemeshos/go-scale"
)

// AuthorityID is a compressed secp256k1 public key identifying a BEEFY
// validator. It is the unit of identity in a ValidatorSet.
type AuthorityID [33]byte

func (id AuthorityID) String() string {
	return hex.EncodeToString(id[:])
}

func (id AuthorityID) ShortString() string {
	s := id.String()
	if len(s) <= 10 {
		return s
	}
	return s[:10]
}

func (id AuthorityID) EncodeScale(enc *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(enc, id[:])
}

func (id *AuthorityID) DecodeScale(dec *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(dec, id[:])
}

// Signature is a recoverable ECDSA signature over a commitment digest.
type Signature [65]byte

func (s Signature) EncodeScale(enc *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(enc, s[:])
}

func (s *Signature) DecodeScale(dec *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(dec, s[:])
}

// ValidatorSetID uniquely identifies a validator set. It is monotonically
// increasing: set identity is its id, not its membership list.
type ValidatorSetID uint64
