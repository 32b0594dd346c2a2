package beefy_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/beefynet/beefy"
	"github.com/beefynet/beefy/beefytest"
	"github.com/beefynet/beefy/common/types"
)

// TestWorkerEndToEndGenesisRoundConcludesAndNotifiesSinks drives a Worker
// entirely through its exported surface and the beefytest fakes: startup
// gate install of the genesis session, four gossiped votes reaching
// threshold, and the resulting finalize notifying both outbound sinks.
func TestWorkerEndToEndGenesisRoundConcludesAndNotifiesSinks(t *testing.T) {
	t.Parallel()

	validators := []types.AuthorityID{{0x01}, {0x02}, {0x03}, {0x04}}
	vs := beefy.NewValidatorSet(types.ValidatorSetID(0), validators)

	client := beefytest.NewClient()
	runtime := beefytest.NewRuntime()
	gossip := beefytest.NewGossipEngine()
	gossipValidator := beefytest.NewGossipValidator()
	onDemand := beefytest.NewOnDemandClient()
	network := beefytest.NewNetworkPeers()
	sync := beefytest.NewSyncOracle()
	bestBlockSink := beefytest.NewBestBlockSink()
	justificationSink := beefytest.NewJustificationSink()

	var genesisHash, root types.Hash32
	copy(genesisHash[:], []byte("genesis block hash for testing!"))
	copy(root[:], []byte("mmr root for the first round!!!"))

	client.SetHeader(beefy.Header{Number: bn(1), Hash: genesisHash})
	runtime.SetValidatorSet(bn(1), vs)

	w := beefy.New(client, runtime, nil, gossip, gossipValidator, onDemand, network, sync,
		bestBlockSink, justificationSink)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client.NotifyFinality(ctx, beefy.Header{Number: bn(1), Hash: genesisHash})
	require.NoError(t, w.Start())
	defer func() { require.NoError(t, w.Stop()) }()

	commitment := beefy.Commitment{
		Payload:        beefy.MMRRootPayload(root),
		BlockNumber:    bn(1),
		ValidatorSetID: vs.ID(),
	}
	for _, id := range validators {
		gossip.Publish(ctx, beefy.Vote{Commitment: commitment, AuthorityID: id})
	}

	require.Eventually(t, func() bool {
		return len(justificationSink.Notified()) == 1
	}, 2*time.Second, 10*time.Millisecond, "round never concluded")

	proof := justificationSink.Notified()[0]
	require.Equal(t, bn(1), proof.BlockNumber())
	require.Equal(t, 4, proof.V1.SignerCount())

	require.Eventually(t, func() bool {
		return len(bestBlockSink.Notified()) == 1
	}, time.Second, 10*time.Millisecond, "best block sink never notified")
	require.Equal(t, genesisHash, bestBlockSink.Notified()[0])

	require.Contains(t, gossipValidator.Concluded(), bn(1))
	require.NotEmpty(t, gossipValidator.Noted(), "handleVote must note every vote's round")
}

// TestWorkerBuffersVotesAheadOfAcceptedWindow checks that a vote for a
// block past the current accepted window never reaches the sinks: it
// should sit in the pending buffer instead of being silently dropped or
// finalized early.
func TestWorkerBuffersVotesAheadOfAcceptedWindow(t *testing.T) {
	t.Parallel()

	validators := []types.AuthorityID{{0x01}, {0x02}, {0x03}, {0x04}}
	vs := beefy.NewValidatorSet(types.ValidatorSetID(0), validators)

	client := beefytest.NewClient()
	runtime := beefytest.NewRuntime()
	gossip := beefytest.NewGossipEngine()
	gossipValidator := beefytest.NewGossipValidator()
	onDemand := beefytest.NewOnDemandClient()
	network := beefytest.NewNetworkPeers()
	sync := beefytest.NewSyncOracle()
	bestBlockSink := beefytest.NewBestBlockSink()
	justificationSink := beefytest.NewJustificationSink()

	var genesisHash, root types.Hash32
	copy(genesisHash[:], []byte("genesis block hash for testing!"))
	copy(root[:], []byte("mmr root for a later round!!!!!"))

	client.SetHeader(beefy.Header{Number: bn(1), Hash: genesisHash})
	runtime.SetValidatorSet(bn(1), vs)

	w := beefy.New(client, runtime, nil, gossip, gossipValidator, onDemand, network, sync,
		bestBlockSink, justificationSink)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client.NotifyFinality(ctx, beefy.Header{Number: bn(1), Hash: genesisHash})
	require.NoError(t, w.Start())
	defer func() { require.NoError(t, w.Stop()) }()

	// Block 2 is past the mandatory round (session start 1, not yet
	// mandatory-done): it must buffer, not finalize.
	commitment := beefy.Commitment{
		Payload:        beefy.MMRRootPayload(root),
		BlockNumber:    bn(2),
		ValidatorSetID: vs.ID(),
	}
	for _, id := range validators {
		gossip.Publish(ctx, beefy.Vote{Commitment: commitment, AuthorityID: id})
	}

	require.Never(t, func() bool {
		return len(justificationSink.Notified()) > 0
	}, 200*time.Millisecond, 10*time.Millisecond, "a vote past the accepted window must not finalize")
}

func bn(n uint64) types.BlockNumber { return types.BlockNumber(n) }
