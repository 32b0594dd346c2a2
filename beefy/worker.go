// Package beefy implements the per-node BEEFY voter worker: the state
// machine that tracks validator sessions, aggregates threshold-signed
// commitments over MMR roots, and emits finality proofs for light clients
// and bridges to consume.
package beefy

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/beefynet/beefy/common/types"
)

// headerCacheSize bounds the header-by-number cache used by headerFor; a
// session's worth of recently-voted-on headers is all that's ever looked
// up twice, so this stays small.
const headerCacheSize = 256

// Config holds the worker's tunables. MinVoteDelta must be >= 1 (Validate
// rejects 0); it is the smallest step the back-off schedule takes past the
// best-beefy block.
type Config struct {
	MinVoteDelta          types.BlockNumber    `mapstructure:"min-vote-delta"`
	GenesisValidatorSetID types.ValidatorSetID `mapstructure:"genesis-validator-set-id"`
}

func DefaultConfig() Config {
	return Config{
		MinVoteDelta:          4,
		GenesisValidatorSetID: 0,
	}
}

func (c *Config) Validate() error {
	if c.MinVoteDelta < 1 {
		return fmt.Errorf("beefy: min-vote-delta must be >= 1, got %d", c.MinVoteDelta)
	}
	return nil
}

func (c *Config) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("min vote delta", c.MinVoteDelta.Uint64())
	enc.AddUint64("genesis validator set id", uint64(c.GenesisValidatorSetID))
	return nil
}

// Opt configures a Worker at construction, following the functional-
// options shape used throughout this module.
type Opt func(*Worker)

func WithConfig(cfg Config) Opt {
	return func(w *Worker) { w.config = cfg }
}

func WithLogger(logger *zap.Logger) Opt {
	return func(w *Worker) { w.log = logger }
}

func WithClock(clock clockwork.Clock) Opt {
	return func(w *Worker) { w.clock = clock }
}

// New constructs a Worker. The capability interfaces are all required
// except keystore, which may be nil if this node runs without a local
// authority key (it will then never self-vote, but still aggregates and
// relays).
func New(
	client Client,
	runtime RuntimeAPI,
	keystore Keystore,
	gossip GossipEngine,
	gossipValidator GossipValidator,
	onDemand OnDemandClient,
	network NetworkPeers,
	sync SyncOracle,
	bestBlockSink BestBlockSink,
	justificationSink JustificationSink,
	opts ...Opt,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		ctx:    ctx,
		cancel: cancel,

		config: DefaultConfig(),
		log:    zap.NewNop(),
		clock:  clockwork.NewRealClock(),

		client:            client,
		runtime:           runtime,
		keystore:          keystore,
		gossip:            gossip,
		gossipValidator:   gossipValidator,
		onDemand:          onDemand,
		network:           network,
		sync:              sync,
		bestBlockSink:     bestBlockSink,
		justificationSink: justificationSink,

		knownPeers:            make(map[string]struct{}),
		oracle:                newOracle(),
		pendingVotes:          newPendingBuffer[Vote](),
		pendingJustifications: newPendingBuffer[FinalityProof](),
	}
	w.headerCache, _ = lru.New[types.BlockNumber, Header](headerCacheSize)
	for _, opt := range opts {
		opt(w)
	}
	w.sessionTracker = newSessionTracker(w.log)
	return w
}

// Worker owns all mutable protocol state. It is single-threaded
// cooperative: no locks protect worker state, and all transitions between
// suspension points (the event-loop select and the startup gate) are
// atomic from the worker's own perspective. The knownPeers map is the one
// exception: it is guarded by mu. It is not shared with the gossip
// validator; only handlePeerEvent touches it.
type Worker struct {
	ctx    context.Context
	cancel context.CancelFunc
	eg     errgroup.Group

	config Config
	log    *zap.Logger
	clock  clockwork.Clock

	client            Client
	runtime           RuntimeAPI
	keystore          Keystore
	gossip            GossipEngine
	gossipValidator   GossipValidator
	onDemand          OnDemandClient
	network           NetworkPeers
	sync              SyncOracle
	bestBlockSink     BestBlockSink
	justificationSink JustificationSink

	mu         sync.Mutex
	knownPeers map[string]struct{}

	oracle                *oracle
	sessionTracker        *sessionTracker
	pendingVotes          *pendingBuffer[Vote]
	pendingJustifications *pendingBuffer[FinalityProof]
	headerCache           *lru.Cache[types.BlockNumber, Header]

	bestBaseFinalized Header
	haveBestBase      bool
	bestBeefyBlock    *types.BlockNumber
}

// Stop cancels the worker and waits for its goroutine to exit.
func (w *Worker) Stop() error {
	w.cancel()
	return w.eg.Wait()
}

// Start runs the startup gate synchronously, then spawns the main event
// loop in the background. It returns once the gate completes (or fails).
func (w *Worker) Start() error {
	if err := w.config.Validate(); err != nil {
		return err
	}
	w.log.Info("starting beefy voter", zap.Inline(&w.config))

	finality, err := w.client.FinalityNotifications(w.ctx)
	if err != nil {
		return fmt.Errorf("beefy: subscribing to finality notifications: %w", err)
	}
	if err := w.startupGate(w.ctx, finality); err != nil {
		return fmt.Errorf("beefy: startup gate: %w", err)
	}

	imported, err := w.client.ImportedJustifications(w.ctx)
	if err != nil {
		return fmt.Errorf("beefy: subscribing to imported justifications: %w", err)
	}
	votes, err := w.gossip.Messages(w.ctx)
	if err != nil {
		return fmt.Errorf("beefy: subscribing to gossiped votes: %w", err)
	}
	peers, err := w.network.Events(w.ctx)
	if err != nil {
		return fmt.Errorf("beefy: subscribing to network events: %w", err)
	}

	w.eg.Go(func() error {
		return w.run(finality, imported, votes, peers)
	})
	return nil
}

// startupGate implements §4.3's startup gate: drain base-finality
// notifications until the runtime reports a validator set. If that first
// observed set is the genesis set, install it as the mandatory session at
// block 1; otherwise proceed uninitialized, to be picked up by the next
// session-change digest. The gossip engine is polled throughout so
// network liveness survives a long gate.
func (w *Worker) startupGate(ctx context.Context, finality <-chan FinalityNotification) error {
	for {
		select {
		case notif, ok := <-finality:
			if !ok {
				return fmt.Errorf("base-finality stream closed")
			}
			w.bestBaseFinalized = notif.Header
			w.haveBestBase = true

			vs, ok, err := w.runtime.ValidatorSet(ctx, notif.Header.Number)
			if err != nil {
				w.log.Debug("runtime validator_set query failed during startup gate", zap.Error(err))
				continue
			}
			if !ok {
				continue
			}
			if vs.ID() == w.config.GenesisValidatorSetID {
				w.oracle.addSession(newAggregator(1, vs))
				observeValidatorSetID(uint64(vs.ID()))
			}
			return nil
		case <-w.gossip.Done():
			return fmt.Errorf("gossip engine terminated")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// run is the biased-priority event loop of §4.3. Streams 1-4 are checked
// in fixed priority order ahead of gossip termination and peer events, so
// a batch of simultaneously ready events always reflects higher-priority
// state before any voting decision is made. Termination of streams 1-4,
// or of the gossip engine, is fatal.
func (w *Worker) run(
	finality <-chan FinalityNotification,
	imported <-chan FinalityProof,
	votes <-chan Vote,
	peers <-chan PeerEvent,
) error {
	onDemandProofs := w.pollOnDemand()
	// A closed peers channel isn't fatal (only streams 1-4 and the gossip
	// engine are); nil it out so a nil-channel select case blocks forever
	// instead of spinning on an always-ready closed channel.

	for {
		var handled bool
		select {
		case notif, ok := <-finality:
			if !ok {
				return fmt.Errorf("beefy: base-finality stream closed")
			}
			w.sessionTracker.onBaseFinalized(w.oracle, notif.Header, func(n types.BlockNumber) {
				w.onDemand.FireRequest(w.ctx, n)
			})
			w.bestBaseFinalized = notif.Header
			w.haveBestBase = true
			handled = true
		default:
		}
		if handled {
			w.afterEvent()
			continue
		}

		select {
		case src, ok := <-imported:
			if !ok {
				return fmt.Errorf("beefy: imported-justification stream closed")
			}
			w.handleJustificationSource(justificationSource{proof: src, trusted: true})
			handled = true
		default:
		}
		if handled {
			w.afterEvent()
			continue
		}

		select {
		case src, ok := <-onDemandProofs:
			if !ok {
				return fmt.Errorf("beefy: on-demand justification stream closed")
			}
			w.handleJustificationSource(src)
			handled = true
		default:
		}
		if handled {
			w.afterEvent()
			continue
		}

		select {
		case v, ok := <-votes:
			if !ok {
				return fmt.Errorf("beefy: gossip vote stream closed")
			}
			w.triageVote(w.ctx, v)
			handled = true
		default:
		}
		if handled {
			w.afterEvent()
			continue
		}

		select {
		case ev, ok := <-peers:
			if ok {
				w.handlePeerEvent(ev)
			} else {
				peers = nil
			}
			handled = true
		default:
		}
		if handled {
			w.afterEvent()
			continue
		}

		select {
		case <-w.gossip.Done():
			return fmt.Errorf("beefy: gossip engine terminated")
		default:
		}

		// Nothing was immediately ready: block on all sources at once so
		// the loop doesn't busy-spin. If several become ready together,
		// select picks one at random; the non-blocking checks above restore
		// priority order on the next iteration.
		select {
		case notif, ok := <-finality:
			if !ok {
				return fmt.Errorf("beefy: base-finality stream closed")
			}
			w.sessionTracker.onBaseFinalized(w.oracle, notif.Header, func(n types.BlockNumber) {
				w.onDemand.FireRequest(w.ctx, n)
			})
			w.bestBaseFinalized = notif.Header
			w.haveBestBase = true
		case src, ok := <-imported:
			if !ok {
				return fmt.Errorf("beefy: imported-justification stream closed")
			}
			w.handleJustificationSource(justificationSource{proof: src, trusted: true})
		case src, ok := <-onDemandProofs:
			if !ok {
				return fmt.Errorf("beefy: on-demand justification stream closed")
			}
			w.handleJustificationSource(src)
		case v, ok := <-votes:
			if !ok {
				return fmt.Errorf("beefy: gossip vote stream closed")
			}
			w.triageVote(w.ctx, v)
		case ev, ok := <-peers:
			if ok {
				w.handlePeerEvent(ev)
			} else {
				peers = nil
			}
		case <-w.gossip.Done():
			return fmt.Errorf("beefy: gossip engine terminated")
		case <-w.ctx.Done():
			return nil
		}
		w.afterEvent()
	}
}

// justificationSource unifies the two justification input streams
// (locally-imported and on-demand-fetched), which otherwise differ only
// in whether the proof has already been verified.
type justificationSource struct {
	proof   FinalityProof
	trusted bool
}

// handleJustificationSource is the single body both justification select
// arms dispatch to. On-demand proofs (trusted=false) are verified before
// triage; locally-imported ones are pre-verified by the block-import path
// and trusted as-is.
func (w *Worker) handleJustificationSource(src justificationSource) {
	if !src.trusted && !w.verifyFinalityProof(src.proof) {
		w.log.Debug("dropping on-demand justification that failed verification",
			zap.Uint64("block", src.proof.BlockNumber().Uint64()))
		return
	}
	w.triageJustification(src.proof)
}

// pollOnDemand bridges the on-demand client's blocking Next() into a
// channel so it composes with the rest of the event loop's select.
func (w *Worker) pollOnDemand() <-chan FinalityProof {
	out := make(chan FinalityProof)
	w.eg.Go(func() error {
		defer close(out)
		for {
			proof, err := w.onDemand.Next(w.ctx)
			if err != nil {
				if w.ctx.Err() != nil {
					return nil
				}
				w.log.Debug("on-demand justification stream error", zap.Error(err))
				return nil
			}
			select {
			case out <- proof:
			case <-w.ctx.Done():
				return nil
			}
		}
	})
	return out
}

func (w *Worker) handlePeerEvent(ev PeerEvent) {
	w.mu.Lock()
	if ev.Connected {
		w.knownPeers[ev.Remote] = struct{}{}
	} else {
		delete(w.knownPeers, ev.Remote)
	}
	w.mu.Unlock()
}

// afterEvent implements the post-event pass common to every branch of the
// loop: if the node isn't mid major-sync, drain pending buffers then run
// the self-vote producer.
func (w *Worker) afterEvent() {
	if w.sync.IsMajorSyncing() {
		return
	}
	w.drainPending()
	w.produceSelfVote(w.ctx)
}
