// Package rpc exposes the worker's two outbound notification streams —
// best BEEFY block and finality justifications — over a small hand-built
// gRPC service. There is no protobuf schema: messages are scale-encoded
// the same way everything else on the wire in this module is, carried
// through a custom grpc encoding.Codec instead of generated marshal code.
package rpc

import (
	"github.com/beefynet/beefy"
	"github.com/beefynet/beefy/common/types"
)

// Empty is the request message for both subscription methods.
type Empty struct{}

// BestBlockMessage is one item of the SubscribeBestBlock stream.
type BestBlockMessage struct {
	Hash types.Hash32
}

// JustificationMessage is one item of the SubscribeJustifications stream.
type JustificationMessage struct {
	Proof beefy.FinalityProof
}
