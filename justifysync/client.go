package justifysync

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"go.uber.org/zap"

	"github.com/beefynet/beefy"
	"github.com/beefynet/beefy/codec"
	"github.com/beefynet/beefy/common/types"
)

// ErrNotConnected means the target peer has no live connection.
var ErrNotConnected = errors.New("justifysync: peer not connected")

// ServerError wraps a peer-reported failure to answer the request.
type ServerError struct{ msg string }

func (e *ServerError) Error() string { return fmt.Sprintf("justifysync: peer error: %s", e.msg) }

// PeerSource supplies candidate peers to fetch from, most useful first.
type PeerSource interface {
	Peers() []peer.ID
}

// Client implements beefy.OnDemandClient over a libp2p stream protocol,
// trying known peers in turn until one answers or the set is exhausted.
type Client struct {
	host   Host
	peers  PeerSource
	logger *zap.Logger

	timeout      time.Duration
	hardTimeout  time.Duration
	requestLimit int

	results chan beefy.FinalityProof
}

// ClientOpt configures a Client.
type ClientOpt func(c *Client)

func WithClientLog(log *zap.Logger) ClientOpt {
	return func(c *Client) { c.logger = log }
}

func WithClientTimeout(timeout time.Duration) ClientOpt {
	return func(c *Client) { c.timeout = timeout }
}

func NewClient(h Host, peers PeerSource, opts ...ClientOpt) *Client {
	c := &Client{
		host:         h,
		peers:        peers,
		logger:       zap.NewNop(),
		timeout:      15 * time.Second,
		hardTimeout:  time.Minute,
		requestLimit: 256,
		results:      make(chan beefy.FinalityProof, 4),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FireRequest implements beefy.OnDemandClient. It fans the request out to
// known peers in the background and returns immediately; a successful
// answer surfaces later through Next.
func (c *Client) FireRequest(ctx context.Context, number types.BlockNumber) {
	go c.fetch(ctx, number)
}

func (c *Client) fetch(ctx context.Context, number types.BlockNumber) {
	for _, p := range c.peers.Peers() {
		proof, err := c.requestFrom(ctx, p, number)
		if err != nil {
			c.logger.Debug("justification request failed",
				zap.Uint64("block", number.Uint64()), zap.Stringer("peer", p), zap.Error(err))
			continue
		}
		select {
		case c.results <- proof:
		case <-ctx.Done():
		}
		return
	}
	c.logger.Debug("no peer answered justification request", zap.Uint64("block", number.Uint64()))
}

// Next implements beefy.OnDemandClient, blocking until a fired request
// succeeds or ctx is canceled.
func (c *Client) Next(ctx context.Context) (beefy.FinalityProof, error) {
	select {
	case proof := <-c.results:
		return proof, nil
	case <-ctx.Done():
		return beefy.FinalityProof{}, ctx.Err()
	}
}

func (c *Client) requestFrom(ctx context.Context, p peer.ID, number types.BlockNumber) (beefy.FinalityProof, error) {
	if c.host.Network().Connectedness(p) != network.Connected {
		return beefy.FinalityProof{}, fmt.Errorf("%w: %s", ErrNotConnected, p)
	}

	ctx, cancel := context.WithTimeout(ctx, c.hardTimeout)
	defer cancel()

	stream, err := c.host.NewStream(network.WithNoDial(ctx, "existing connection"), p, ProtocolID)
	if err != nil {
		return beefy.FinalityProof{}, err
	}
	ds := newDeadlineStream(stream, c.timeout, c.hardTimeout)
	defer ds.Close()

	req := Request{BlockNumber: number}
	encoded, err := codec.Encode(&req)
	if err != nil {
		return beefy.FinalityProof{}, err
	}
	if len(encoded) > c.requestLimit {
		return beefy.FinalityProof{}, fmt.Errorf("request length %d exceeds limit %d", len(encoded), c.requestLimit)
	}

	wr := bufio.NewWriter(ds)
	sz := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(sz, uint64(len(encoded)))
	if _, err := wr.Write(sz[:n]); err != nil {
		return beefy.FinalityProof{}, err
	}
	if _, err := wr.Write(encoded); err != nil {
		return beefy.FinalityProof{}, err
	}
	if err := wr.Flush(); err != nil {
		return beefy.FinalityProof{}, err
	}

	var resp Response
	if _, err := codec.DecodeFrom(bufio.NewReader(ds), &resp); err != nil {
		return beefy.FinalityProof{}, fmt.Errorf("peer %s: %w", p, err)
	}
	if resp.Error != "" {
		return beefy.FinalityProof{}, &ServerError{msg: resp.Error}
	}

	var proof beefy.FinalityProof
	if _, err := codec.Decode(resp.Data, &proof); err != nil {
		return beefy.FinalityProof{}, fmt.Errorf("peer %s: decode proof: %w", p, err)
	}
	return proof, nil
}

var _ beefy.OnDemandClient = (*Client)(nil)
