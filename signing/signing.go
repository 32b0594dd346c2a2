// Package signing implements authority signing and verification for BEEFY
// votes. The teacher signs with Ed25519 over a domain-tagged message
// (signing.EdSigner.Sign(signing.HARE, ...), signing.EdVerifier.Verify(...));
// BEEFY's wire scheme is ECDSA over secp256k1 with a blake3 pre-image
// digest, so the domain tag is baked into the digest rather than passed
// alongside it.
package signing

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/zeebo/blake3"

	"github.com/beefynet/beefy"
	"github.com/beefynet/beefy/common/types"
)

var _ beefy.Keystore = (*Keystore)(nil)

// domain separates BEEFY's signature namespace from any other use of the
// same key.
var domain = []byte("beefy-commitment-v1")

func digest(msg []byte) [32]byte {
	h := blake3.New()
	h.Write(domain)
	h.Write(msg)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Signer signs commitments on behalf of one local authority.
type Signer struct {
	priv *secp256k1.PrivateKey
	id   types.AuthorityID
}

// NewSigner generates a fresh signing key. Used by tests and by the voter,
// which generates a new key on every start.
func NewSigner() (*Signer, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return signerFromKey(priv), nil
}

// NewSignerFromBytes loads a signer from a 32-byte scalar, as read from a
// keystore file.
func NewSignerFromBytes(b []byte) (*Signer, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("signing: private key must be 32 bytes, got %d", len(b))
	}
	priv := secp256k1.PrivKeyFromBytes(b)
	return signerFromKey(priv), nil
}

func signerFromKey(priv *secp256k1.PrivateKey) *Signer {
	var id types.AuthorityID
	copy(id[:], priv.PubKey().SerializeCompressed())
	return &Signer{priv: priv, id: id}
}

// AuthorityID returns the public identity this signer votes as.
func (s *Signer) AuthorityID() types.AuthorityID {
	return s.id
}

// Sign produces a recoverable signature over msg.
func (s *Signer) Sign(msg []byte) (types.Signature, error) {
	d := digest(msg)
	sig := ecdsa.SignCompact(s.priv, d[:], false)
	var out types.Signature
	// SignCompact returns [recovery_id || r || s]; BEEFY's wire layout is
	// [r || s || recovery_id], matching the Ethereum-style convention
	// bridge light clients expect.
	copy(out[:64], sig[1:])
	out[64] = sig[0] - 27
	return out, nil
}

// Verify reports whether sig is a valid signature by id over msg.
func Verify(id types.AuthorityID, msg []byte, sig types.Signature) bool {
	pub, err := secp256k1.ParsePubKey(id[:])
	if err != nil {
		return false
	}
	d := digest(msg)
	compact := make([]byte, 65)
	compact[0] = sig[64] + 27
	copy(compact[1:], sig[:64])
	recovered, _, err := ecdsa.RecoverCompact(compact, d[:])
	if err != nil {
		return false
	}
	return recovered.IsEqual(pub)
}

// Keystore abstracts the set of authority identities the local node can
// sign as. A node may run with zero or several concurrently (as in the
// teacher's multi-identity Hare.Register).
type Keystore struct {
	signers map[types.AuthorityID]*Signer
}

// NewKeystore returns an empty keystore.
func NewKeystore() *Keystore {
	return &Keystore{signers: make(map[types.AuthorityID]*Signer)}
}

// Register adds a signer the keystore can subsequently sign with.
func (k *Keystore) Register(s *Signer) {
	k.signers[s.AuthorityID()] = s
}

// AuthorityIDs returns every locally available authority identity.
func (k *Keystore) AuthorityIDs() []types.AuthorityID {
	ids := make([]types.AuthorityID, 0, len(k.signers))
	for id := range k.signers {
		ids = append(ids, id)
	}
	return ids
}

// PublicKeys implements beefy.Keystore.
func (k *Keystore) PublicKeys() ([]types.AuthorityID, error) {
	return k.AuthorityIDs(), nil
}

// AuthorityID implements beefy.Keystore: it returns the first of
// candidates the keystore holds a local key for, if any.
func (k *Keystore) AuthorityID(candidates []types.AuthorityID) (types.AuthorityID, bool) {
	for _, id := range candidates {
		if _, ok := k.signers[id]; ok {
			return id, true
		}
	}
	return types.AuthorityID{}, false
}

// Sign signs msg as id, if the keystore holds that identity.
func (k *Keystore) Sign(id types.AuthorityID, msg []byte) (types.Signature, error) {
	s, ok := k.signers[id]
	if !ok {
		return types.Signature{}, fmt.Errorf("signing: no local key for authority %s", id.ShortString())
	}
	return s.Sign(msg)
}

// Verify implements beefy.Keystore by delegating to the package-level
// Verify, which needs no local key material.
func (k *Keystore) Verify(id types.AuthorityID, msg []byte, sig types.Signature) bool {
	return Verify(id, msg, sig)
}
