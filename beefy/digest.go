package beefy

import "github.com/beefynet/beefy/common/types"

// EngineID is the 4-byte tag consensus digest entries carry when they
// belong to BEEFY.
type EngineID [4]byte

var beefyEngineID = EngineID{'B', 'E', 'E', 'F'}

// DigestKind discriminates the two BEEFY digest variants a header may
// carry.
type DigestKind int

const (
	DigestAuthoritiesChange DigestKind = iota
	DigestMMRRoot
)

// DigestItem is one BEEFY-tagged consensus digest entry.
type DigestItem struct {
	Engine EngineID
	Kind   DigestKind
	Set    ValidatorSet // valid iff Kind == DigestAuthoritiesChange
	Root   types.Hash32 // valid iff Kind == DigestMMRRoot
}

// Header is the narrow slice of block-header shape this worker reads: a
// number and its consensus digest.
type Header struct {
	Number types.BlockNumber
	Hash   types.Hash32
	Digest []DigestItem
}

// FindMMRRoot scans header's digest for the first BEEFY MMR-root entry.
func FindMMRRoot(header Header) (types.Hash32, bool) {
	for _, d := range header.Digest {
		if d.Engine == beefyEngineID && d.Kind == DigestMMRRoot {
			return d.Root, true
		}
	}
	return types.Hash32{}, false
}

// FindAuthoritiesChange scans header's digest for the first BEEFY
// authority-set-change entry.
func FindAuthoritiesChange(header Header) (ValidatorSet, bool) {
	for _, d := range header.Digest {
		if d.Engine == beefyEngineID && d.Kind == DigestAuthoritiesChange {
			return d.Set, true
		}
	}
	return ValidatorSet{}, false
}
