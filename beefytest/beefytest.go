// Package beefytest provides in-memory fakes for the capability interfaces
// beefy.Worker depends on, so tests can exercise the worker without a real
// chain client, keystore, or libp2p gossip engine underneath it.
package beefytest

import (
	"context"
	"sync"

	"github.com/beefynet/beefy"
	"github.com/beefynet/beefy/common/types"
)

// Client fakes beefy.Client. Headers are keyed by number; a missing number
// makes ExpectHeader return an error, matching a real client's behavior for
// an unknown block.
type Client struct {
	mu sync.Mutex

	headers    map[types.BlockNumber]beefy.Header
	hashes     map[types.BlockNumber]types.Hash32
	finality   chan beefy.FinalityNotification
	imported   chan beefy.FinalityProof
	appended   []AppendedJustification
	finalizedN types.BlockNumber
}

// AppendedJustification records one call to AppendJustification.
type AppendedJustification struct {
	Number  types.BlockNumber
	Encoded []byte
}

func NewClient() *Client {
	return &Client{
		headers:  make(map[types.BlockNumber]beefy.Header),
		hashes:   make(map[types.BlockNumber]types.Hash32),
		finality: make(chan beefy.FinalityNotification, 16),
		imported: make(chan beefy.FinalityProof, 16),
	}
}

func (c *Client) SetHeader(h beefy.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers[h.Number] = h
	c.hashes[h.Number] = h.Hash
}

func (c *Client) SetFinalizedNumber(n types.BlockNumber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finalizedN = n
}

// NotifyFinality pushes a base-finality notification, blocking the caller
// until the worker's event loop has room to receive it.
func (c *Client) NotifyFinality(ctx context.Context, h beefy.Header) {
	c.SetHeader(h)
	select {
	case c.finality <- beefy.FinalityNotification{Header: h}:
	case <-ctx.Done():
	}
}

// NotifyImportedJustification pushes a justification onto the imported
// stream, as if block import had already verified it.
func (c *Client) NotifyImportedJustification(ctx context.Context, proof beefy.FinalityProof) {
	select {
	case c.imported <- proof:
	case <-ctx.Done():
	}
}

func (c *Client) AppendedJustifications() []AppendedJustification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]AppendedJustification, len(c.appended))
	copy(out, c.appended)
	return out
}

func (c *Client) FinalizedNumber(context.Context) (types.BlockNumber, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finalizedN, nil
}

func (c *Client) ExpectHeader(_ context.Context, number types.BlockNumber) (beefy.Header, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.headers[number]
	if !ok {
		return beefy.Header{}, errNotFound(number)
	}
	return h, nil
}

func (c *Client) Hash(_ context.Context, number types.BlockNumber) (types.Hash32, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.hashes[number]
	return h, ok, nil
}

func (c *Client) FinalityNotifications(context.Context) (<-chan beefy.FinalityNotification, error) {
	return c.finality, nil
}

func (c *Client) AppendJustification(_ context.Context, number types.BlockNumber, encoded []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appended = append(c.appended, AppendedJustification{Number: number, Encoded: encoded})
	return nil
}

func (c *Client) ImportedJustifications(context.Context) (<-chan beefy.FinalityProof, error) {
	return c.imported, nil
}

type notFoundError types.BlockNumber

func errNotFound(n types.BlockNumber) error { return notFoundError(n) }

func (e notFoundError) Error() string { return "beefytest: no header at that block number" }

// Runtime fakes beefy.RuntimeAPI: validator sets and MMR roots are looked
// up by block number from maps the test populates directly.
type Runtime struct {
	mu            sync.Mutex
	validatorSets map[types.BlockNumber]beefy.ValidatorSet
	mmrRoots      map[types.BlockNumber]types.Hash32
}

func NewRuntime() *Runtime {
	return &Runtime{
		validatorSets: make(map[types.BlockNumber]beefy.ValidatorSet),
		mmrRoots:      make(map[types.BlockNumber]types.Hash32),
	}
}

func (r *Runtime) SetValidatorSet(at types.BlockNumber, vs beefy.ValidatorSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validatorSets[at] = vs
}

func (r *Runtime) SetMMRRoot(at types.BlockNumber, root types.Hash32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mmrRoots[at] = root
}

func (r *Runtime) ValidatorSet(_ context.Context, at types.BlockNumber) (beefy.ValidatorSet, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vs, ok := r.validatorSets[at]
	return vs, ok, nil
}

func (r *Runtime) MMRRoot(_ context.Context, at types.BlockNumber) (types.Hash32, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	root, ok := r.mmrRoots[at]
	return root, ok, nil
}

// Keystore fakes beefy.Keystore over a fixed set of local authority keys.
// Sign returns a deterministic non-zero signature keyed off the authority
// id, and Verify accepts exactly the signature Sign would have produced,
// which is enough to drive threshold-signing logic without real ECDSA.
type Keystore struct {
	local map[types.AuthorityID]struct{}
}

func NewKeystore(local ...types.AuthorityID) *Keystore {
	k := &Keystore{local: make(map[types.AuthorityID]struct{}, len(local))}
	for _, id := range local {
		k.local[id] = struct{}{}
	}
	return k
}

func (k *Keystore) PublicKeys() ([]types.AuthorityID, error) {
	out := make([]types.AuthorityID, 0, len(k.local))
	for id := range k.local {
		out = append(out, id)
	}
	return out, nil
}

func (k *Keystore) AuthorityID(candidates []types.AuthorityID) (types.AuthorityID, bool) {
	for _, c := range candidates {
		if _, ok := k.local[c]; ok {
			return c, true
		}
	}
	return types.AuthorityID{}, false
}

func (k *Keystore) Sign(id types.AuthorityID, msg []byte) (types.Signature, error) {
	var sig types.Signature
	copy(sig[:], id[:])
	sig[len(sig)-1] = byte(len(msg))
	return sig, nil
}

func (k *Keystore) Verify(id types.AuthorityID, msg []byte, sig types.Signature) bool {
	want, _ := k.Sign(id, msg)
	return want == sig
}

// GossipValidator fakes beefy.GossipValidator, recording every call so
// tests can assert the worker notifies it in the order the protocol
// requires.
type GossipValidator struct {
	mu        sync.Mutex
	noted     []types.BlockNumber
	concluded []types.BlockNumber
}

func NewGossipValidator() *GossipValidator { return &GossipValidator{} }

func (g *GossipValidator) NoteRound(n types.BlockNumber) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.noted = append(g.noted, n)
}

func (g *GossipValidator) ConcludeRound(n types.BlockNumber) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.concluded = append(g.concluded, n)
}

func (g *GossipValidator) Noted() []types.BlockNumber {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]types.BlockNumber, len(g.noted))
	copy(out, g.noted)
	return out
}

func (g *GossipValidator) Concluded() []types.BlockNumber {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]types.BlockNumber, len(g.concluded))
	copy(out, g.concluded)
	return out
}

// GossipEngine fakes beefy.GossipEngine: Messages is a channel tests feed
// directly, GossipMessage just records what was published.
type GossipEngine struct {
	mu        sync.Mutex
	messages  chan beefy.Vote
	done      chan struct{}
	published [][]byte
}

func NewGossipEngine() *GossipEngine {
	return &GossipEngine{
		messages: make(chan beefy.Vote, 16),
		done:     make(chan struct{}),
	}
}

func (g *GossipEngine) Publish(ctx context.Context, v beefy.Vote) {
	select {
	case g.messages <- v:
	case <-ctx.Done():
	}
}

func (g *GossipEngine) Terminate() { close(g.done) }

func (g *GossipEngine) Published() [][]byte {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([][]byte, len(g.published))
	copy(out, g.published)
	return out
}

func (g *GossipEngine) Messages(context.Context) (<-chan beefy.Vote, error) {
	return g.messages, nil
}

func (g *GossipEngine) GossipMessage(_ context.Context, encoded []byte, _ bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.published = append(g.published, encoded)
	return nil
}

func (g *GossipEngine) Done() <-chan struct{} { return g.done }

// OnDemandClient fakes beefy.OnDemandClient. FireRequest just records the
// block requested; tests push a response with Respond.
type OnDemandClient struct {
	mu       sync.Mutex
	requests []types.BlockNumber
	proofs   chan beefy.FinalityProof
}

func NewOnDemandClient() *OnDemandClient {
	return &OnDemandClient{proofs: make(chan beefy.FinalityProof, 16)}
}

func (o *OnDemandClient) Requested() []types.BlockNumber {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]types.BlockNumber, len(o.requests))
	copy(out, o.requests)
	return out
}

func (o *OnDemandClient) Respond(ctx context.Context, proof beefy.FinalityProof) {
	select {
	case o.proofs <- proof:
	case <-ctx.Done():
	}
}

func (o *OnDemandClient) FireRequest(_ context.Context, number types.BlockNumber) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.requests = append(o.requests, number)
}

func (o *OnDemandClient) Next(ctx context.Context) (beefy.FinalityProof, error) {
	select {
	case p := <-o.proofs:
		return p, nil
	case <-ctx.Done():
		return beefy.FinalityProof{}, ctx.Err()
	}
}

// NetworkPeers fakes beefy.NetworkPeers over a simple event channel.
type NetworkPeers struct {
	events chan beefy.PeerEvent
}

func NewNetworkPeers() *NetworkPeers {
	return &NetworkPeers{events: make(chan beefy.PeerEvent, 16)}
}

func (n *NetworkPeers) Push(ctx context.Context, ev beefy.PeerEvent) {
	select {
	case n.events <- ev:
	case <-ctx.Done():
	}
}

func (n *NetworkPeers) Events(context.Context) (<-chan beefy.PeerEvent, error) {
	return n.events, nil
}

// SyncOracle fakes beefy.SyncOracle with a flag tests can flip.
type SyncOracle struct {
	mu      sync.Mutex
	syncing bool
}

func NewSyncOracle() *SyncOracle { return &SyncOracle{} }

func (s *SyncOracle) SetMajorSyncing(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncing = v
}

func (s *SyncOracle) IsMajorSyncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncing
}

// BestBlockSink fakes beefy.BestBlockSink, recording every notified hash.
type BestBlockSink struct {
	mu     sync.Mutex
	hashes []types.Hash32
}

func NewBestBlockSink() *BestBlockSink { return &BestBlockSink{} }

func (s *BestBlockSink) NotifyBestBlock(hash types.Hash32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes = append(s.hashes, hash)
}

func (s *BestBlockSink) Notified() []types.Hash32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Hash32, len(s.hashes))
	copy(out, s.hashes)
	return out
}

// JustificationSink fakes beefy.JustificationSink, recording every
// notified proof.
type JustificationSink struct {
	mu     sync.Mutex
	proofs []beefy.FinalityProof
}

func NewJustificationSink() *JustificationSink { return &JustificationSink{} }

func (s *JustificationSink) NotifyJustification(proof beefy.FinalityProof) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proofs = append(s.proofs, proof)
}

func (s *JustificationSink) Notified() []beefy.FinalityProof {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]beefy.FinalityProof, len(s.proofs))
	copy(out, s.proofs)
	return out
}
