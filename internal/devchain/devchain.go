// Package devchain is a minimal, single-process stand-in for the real
// chain client/backend/runtime that beefy.Worker normally sits behind
// (spec.md §1 names those as external collaborators reached only through
// interfaces, never owned by this module). It exists so cmd/beefy-voter
// can run end-to-end locally without a real node attached: it ticks out
// synthetic blocks on a timer, derives a deterministic MMR root per
// block, and serves a single fixed validator set from genesis onward.
// Production deployments replace this with the embedding node's own
// client.
package devchain

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/beefynet/beefy"
	"github.com/beefynet/beefy/common/types"
)

// Chain simulates base-layer finality.
type Chain struct {
	interval   time.Duration
	validators []types.AuthorityID
	vsID       types.ValidatorSetID

	number  types.BlockNumber
	headers map[types.BlockNumber]beefy.Header

	finality chan beefy.FinalityNotification
	imported chan beefy.FinalityProof
}

// New builds a Chain that produces one block every interval, under the
// single validator set (vsID, validators) for its entire run.
func New(interval time.Duration, vsID types.ValidatorSetID, validators []types.AuthorityID) *Chain {
	return &Chain{
		interval:   interval,
		validators: validators,
		vsID:       vsID,
		headers:    make(map[types.BlockNumber]beefy.Header),
		finality:   make(chan beefy.FinalityNotification, 8),
		imported:   make(chan beefy.FinalityProof, 8),
	}
}

// Run ticks out blocks until ctx is canceled.
func (c *Chain) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.number++
			header := beefy.Header{
				Number: c.number,
				Hash:   c.leafHash(c.number),
			}
			c.headers[c.number] = header
			select {
			case c.finality <- beefy.FinalityNotification{Header: header}:
			default:
			}
		}
	}
}

func (c *Chain) leafHash(n types.BlockNumber) types.Hash32 {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n.Uint64())
	return sha256.Sum256(buf[:])
}

// FinalizedNumber implements beefy.Client.
func (c *Chain) FinalizedNumber(context.Context) (types.BlockNumber, error) {
	return c.number, nil
}

// ExpectHeader implements beefy.Client.
func (c *Chain) ExpectHeader(_ context.Context, number types.BlockNumber) (beefy.Header, error) {
	h, ok := c.headers[number]
	if !ok {
		h = beefy.Header{Number: number, Hash: c.leafHash(number)}
	}
	return h, nil
}

// Hash implements beefy.Client.
func (c *Chain) Hash(_ context.Context, number types.BlockNumber) (types.Hash32, bool, error) {
	h, ok := c.headers[number]
	if !ok {
		return types.Hash32{}, false, nil
	}
	return h.Hash, true, nil
}

// FinalityNotifications implements beefy.Client.
func (c *Chain) FinalityNotifications(context.Context) (<-chan beefy.FinalityNotification, error) {
	return c.finality, nil
}

// AppendJustification implements beefy.Client; devchain discards them.
func (c *Chain) AppendJustification(context.Context, types.BlockNumber, []byte) error {
	return nil
}

// ImportedJustifications implements beefy.Client; devchain never imports
// one through block sync, only ever self-produces.
func (c *Chain) ImportedJustifications(context.Context) (<-chan beefy.FinalityProof, error) {
	return c.imported, nil
}

// ValidatorSet implements beefy.RuntimeAPI.
func (c *Chain) ValidatorSet(_ context.Context, _ types.BlockNumber) (beefy.ValidatorSet, bool, error) {
	return beefy.NewValidatorSet(c.vsID, c.validators), true, nil
}

// MMRRoot implements beefy.RuntimeAPI.
func (c *Chain) MMRRoot(_ context.Context, at types.BlockNumber) (types.Hash32, bool, error) {
	return c.leafHash(at), true, nil
}

// IsMajorSyncing implements beefy.SyncOracle; devchain is never syncing.
func (c *Chain) IsMajorSyncing() bool { return false }

var (
	_ beefy.Client     = (*Chain)(nil)
	_ beefy.RuntimeAPI = (*Chain)(nil)
	_ beefy.SyncOracle = (*Chain)(nil)
)
