package types

import (
	"encoding/hex"

	"github.com/spacemeshos/go-scale"
)

// Hash32 is a 32-byte digest, used for block hashes and MMR roots alike.
type Hash32 [32]byte

func (h Hash32) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash32) ShortString() string {
	s := h.String()
	if len(s) <= 10 {
		return s
	}
	return s[:10]
}

func (h Hash32) EncodeScale(enc *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(enc, h[:])
}

func (h *Hash32) DecodeScale(dec *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(dec, h[:])
}
