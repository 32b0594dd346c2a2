package justifysync

import "github.com/beefynet/beefy/common/types"

// Request asks the peer for the finality proof covering BlockNumber.
type Request struct {
	BlockNumber types.BlockNumber
}

// Response carries either the scale-encoded beefy.FinalityProof in Data, or
// a human-readable reason in Error when the peer can't satisfy the request.
// Exactly one of the two is populated.
type Response struct {
	Data  []byte `scale:"max=65536"`
	Error string `scale:"max=1024"`
}
