package beefy

import (
	"context"

	"github.com/beefynet/beefy/common/types"
)

// RuntimeAPI is the narrow slice of runtime calls this worker needs.
// validator_set is used only during the startup gate; mmr_root is a
// fallback when a header's digest lacks the MMR root entry.
type RuntimeAPI interface {
	ValidatorSet(ctx context.Context, at types.BlockNumber) (ValidatorSet, bool, error)
	MMRRoot(ctx context.Context, at types.BlockNumber) (types.Hash32, bool, error)
}

// FinalityNotification carries one base-finality event.
type FinalityNotification struct {
	Header Header
}

// Client is the chain client/backend interface: header lookups, the
// finality notification stream, and best-effort justification storage.
type Client interface {
	FinalizedNumber(ctx context.Context) (types.BlockNumber, error)
	ExpectHeader(ctx context.Context, number types.BlockNumber) (Header, error)
	Hash(ctx context.Context, number types.BlockNumber) (types.Hash32, bool, error)
	FinalityNotifications(ctx context.Context) (<-chan FinalityNotification, error)
	AppendJustification(ctx context.Context, number types.BlockNumber, encoded []byte) error
	// ImportedJustifications streams justifications discovered via normal
	// block import, already verified by that path.
	ImportedJustifications(ctx context.Context) (<-chan FinalityProof, error)
}

// Keystore abstracts the signer and public-key provider. It may be
// entirely absent (a node running without any local authority key); the
// Worker then logs an ErrKeystore error and skips self-voting, and rejects
// every on-demand finality proof because it cannot verify signatures.
type Keystore interface {
	PublicKeys() ([]types.AuthorityID, error)
	// AuthorityID intersects candidates with the local keys, returning one
	// present locally, if any.
	AuthorityID(candidates []types.AuthorityID) (types.AuthorityID, bool)
	Sign(id types.AuthorityID, msg []byte) (types.Signature, error)
	Verify(id types.AuthorityID, msg []byte, sig types.Signature) bool
}

// GossipValidator is notified of round lifecycle so it can filter
// messages by topic without consulting the worker directly.
type GossipValidator interface {
	NoteRound(n types.BlockNumber)
	ConcludeRound(n types.BlockNumber)
}

// GossipEngine is the narrow transport surface: an inbound vote stream
// and outbound publish, scoped to one topic. Peer discovery, topic join,
// and transport selection live entirely behind this interface.
type GossipEngine interface {
	Messages(ctx context.Context) (<-chan Vote, error)
	GossipMessage(ctx context.Context, encoded []byte, force bool) error
	// Done reports the engine's termination; its closure is fatal to the
	// worker, matching the termination behavior of streams 1-4.
	Done() <-chan struct{}
}

// OnDemandClient requests and receives justifications fetched from peers
// on demand, outside the regular gossip/import paths.
type OnDemandClient interface {
	FireRequest(ctx context.Context, number types.BlockNumber)
	Next(ctx context.Context) (FinalityProof, error)
}

// PeerEvent is a network connectivity change.
type PeerEvent struct {
	Remote    string
	Connected bool
}

// NetworkPeers delivers connectivity events the worker folds into the
// known-peers map shared with the gossip validator.
type NetworkPeers interface {
	Events(ctx context.Context) (<-chan PeerEvent, error)
}

// BestBlockSink and JustificationSink are the two outbound RPC
// notification channels. Their notify calls are assumed to always
// succeed; backpressure is the sink's problem, not the worker's.
type BestBlockSink interface {
	NotifyBestBlock(hash types.Hash32)
}

type JustificationSink interface {
	NotifyJustification(proof FinalityProof)
}

// SyncOracle reports whether the node is still performing a major
// historical sync; while true, the worker defers pending-buffer drains
// and self-voting.
type SyncOracle interface {
	IsMajorSyncing() bool
}
