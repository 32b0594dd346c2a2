package gossip

import (
	"context"
	"sync"

	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/beefynet/beefy"
	"github.com/beefynet/beefy/codec"
	"github.com/beefynet/beefy/common/types"
)

// roundSlack tolerates votes slightly behind the oldest tracked round,
// since a slow peer's vote for a just-pruned session is still worth
// forwarding to others who may not have pruned it yet.
const roundSlack = 2

// Validator rejects gossiped votes outside the currently relevant round
// window before they're decoded a second time by the worker, and
// implements beefy.GossipValidator so the worker can keep the window
// current as rounds open and close.
type Validator struct {
	mu       sync.Mutex
	lo, hi   types.BlockNumber
	haveLo   bool
}

func NewValidator() *Validator {
	return &Validator{}
}

// NoteRound implements beefy.GossipValidator: n becomes the new upper
// bound of acceptable votes, and the lower bound if none was set yet.
func (v *Validator) NoteRound(n types.BlockNumber) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.haveLo || n < v.lo {
		v.lo = n
		v.haveLo = true
	}
	if n > v.hi {
		v.hi = n
	}
}

// ConcludeRound implements beefy.GossipValidator: once a round concludes,
// raise the lower bound past it. validate still accepts votes up to
// roundSlack blocks below that bound.
func (v *Validator) ConcludeRound(n types.BlockNumber) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n >= v.lo {
		v.lo = n + 1
		v.haveLo = true
	}
}

func (v *Validator) bounds() (lo, hi types.BlockNumber, have bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lo, v.hi, v.haveLo
}

func (v *Validator) validate(_ context.Context, _ peer.ID, msg *pubsub.Message) pubsub.ValidationResult {
	var vote beefy.Vote
	if _, err := codec.Decode(msg.Data, &vote); err != nil {
		return pubsub.ValidationReject
	}
	lo, hi, have := v.bounds()
	if !have {
		// No round has opened locally yet; accept and let the worker's own
		// triage (pending buffers) decide, rather than rejecting gossip
		// before the local session state exists.
		return pubsub.ValidationAccept
	}
	n := vote.Commitment.BlockNumber
	if n+roundSlack < lo || n > hi {
		return pubsub.ValidationIgnore
	}
	return pubsub.ValidationAccept
}

var _ beefy.GossipValidator = (*Validator)(nil)
