package rpc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"

	"github.com/beefynet/beefy"
	"github.com/beefynet/beefy/common/types"
)

// fakeServerStream is a minimal grpc.ServerStream that captures sent
// messages and can be canceled to end a Subscribe* loop, standing in for a
// real network connection.
type fakeServerStream struct {
	ctx  context.Context
	sent chan interface{}
}

func newFakeServerStream(ctx context.Context) *fakeServerStream {
	return &fakeServerStream{ctx: ctx, sent: make(chan interface{}, 8)}
}

func (f *fakeServerStream) SetHeader(metadata.MD) error  { return nil }
func (f *fakeServerStream) SendHeader(metadata.MD) error { return nil }
func (f *fakeServerStream) SetTrailer(metadata.MD)       {}
func (f *fakeServerStream) Context() context.Context     { return f.ctx }
func (f *fakeServerStream) SendMsg(m interface{}) error {
	f.sent <- m
	return nil
}
func (f *fakeServerStream) RecvMsg(interface{}) error { return nil }

func TestNotifyBestBlockReachesSubscriber(t *testing.T) {
	t.Parallel()

	s := NewServer(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := newFakeServerStream(ctx)

	done := make(chan error, 1)
	go func() { done <- s.SubscribeBestBlock(&Empty{}, stream) }()

	var hash types.Hash32
	copy(hash[:], []byte("best block hash................"))

	// SubscribeBestBlock registers its channel asynchronously; retry the
	// notify until the subscription has taken effect or we time out.
	deadline := time.After(time.Second)
	var received *BestBlockMessage
	for received == nil {
		s.NotifyBestBlock(hash)
		select {
		case m := <-stream.sent:
			received = m.(*BestBlockMessage)
		case <-time.After(time.Millisecond):
		case <-deadline:
			t.Fatal("timed out waiting for subscriber to receive notification")
		}
	}
	require.Equal(t, hash, received.Hash)

	cancel()
	<-done
}

func TestNotifyJustificationReachesSubscriber(t *testing.T) {
	t.Parallel()

	s := NewServer(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := newFakeServerStream(ctx)

	done := make(chan error, 1)
	go func() { done <- s.SubscribeJustifications(&Empty{}, stream) }()

	proof := beefy.NewFinalityProofV1(beefy.SignedCommitment{
		Commitment: beefy.Commitment{BlockNumber: types.BlockNumber(1)},
	})

	deadline := time.After(time.Second)
	var received *JustificationMessage
	for received == nil {
		s.NotifyJustification(proof)
		select {
		case m := <-stream.sent:
			received = m.(*JustificationMessage)
		case <-time.After(time.Millisecond):
		case <-deadline:
			t.Fatal("timed out waiting for subscriber to receive notification")
		}
	}
	require.Equal(t, proof.BlockNumber(), received.Proof.BlockNumber())

	cancel()
	<-done
}

func TestNotifyWithNoSubscribersIsNoop(t *testing.T) {
	t.Parallel()

	s := NewServer(nil)
	var hash types.Hash32
	s.NotifyBestBlock(hash) // must not block or panic with zero subscribers
}
