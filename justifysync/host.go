// Package justifysync implements the on-demand justification request
// protocol: a node that notices it has fallen behind the mandatory voting
// interval asks a connected peer directly for the finality proof covering a
// given block, instead of waiting for it to arrive through gossip or normal
// block import.
package justifysync

import (
	"context"

	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/protocol"
)

// ProtocolID identifies the justification sync stream protocol.
const ProtocolID = protocol.ID("/beefy/justif-sync/1")

// Host is the slice of a libp2p host this package needs: registering a
// stream handler and dialing existing peers. Connection management and
// peer scoring are left to the rest of the node.
type Host interface {
	SetStreamHandler(pid protocol.ID, handler network.StreamHandler)
	NewStream(ctx context.Context, p peer.ID, pids ...protocol.ID) (network.Stream, error)
	Network() network.Network
}
