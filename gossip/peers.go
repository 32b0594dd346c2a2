package gossip

import (
	"context"
	"sync"

	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/beefynet/beefy"
)

// PeerTracker implements network.Notifiee to maintain the set of connected
// peers, and doubles as both beefy.NetworkPeers (connectivity events for
// the worker's known-peers bookkeeping) and justifysync.PeerSource (a
// candidate list for on-demand justification fetches).
type PeerTracker struct {
	mu    sync.Mutex
	peers map[peer.ID]struct{}
	out   chan beefy.PeerEvent
}

func NewPeerTracker() *PeerTracker {
	return &PeerTracker{
		peers: make(map[peer.ID]struct{}),
		out:   make(chan beefy.PeerEvent, 32),
	}
}

// Events implements beefy.NetworkPeers.
func (t *PeerTracker) Events(ctx context.Context) (<-chan beefy.PeerEvent, error) {
	return t.out, nil
}

// Peers implements justifysync.PeerSource.
func (t *PeerTracker) Peers() []peer.ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]peer.ID, 0, len(t.peers))
	for p := range t.peers {
		out = append(out, p)
	}
	return out
}

func (t *PeerTracker) Connected(_ network.Network, c network.Conn) {
	p := c.RemotePeer()
	t.mu.Lock()
	t.peers[p] = struct{}{}
	t.mu.Unlock()
	t.emit(beefy.PeerEvent{Remote: p.String(), Connected: true})
}

func (t *PeerTracker) Disconnected(_ network.Network, c network.Conn) {
	p := c.RemotePeer()
	t.mu.Lock()
	delete(t.peers, p)
	t.mu.Unlock()
	t.emit(beefy.PeerEvent{Remote: p.String(), Connected: false})
}

func (t *PeerTracker) Listen(network.Network, ma.Multiaddr)      {}
func (t *PeerTracker) ListenClose(network.Network, ma.Multiaddr) {}

func (t *PeerTracker) emit(ev beefy.PeerEvent) {
	select {
	case t.out <- ev:
	default:
		// Slow consumer: drop rather than block the libp2p notifiee
		// callback, which must not stall the swarm.
	}
}

var _ beefy.NetworkPeers = (*PeerTracker)(nil)
