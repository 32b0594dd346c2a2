package rpc

import (
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/beefynet/beefy"
	"github.com/beefynet/beefy/common/types"
)

// ServiceName is the fully-qualified name advertised in the hand-built
// ServiceDesc below.
const ServiceName = "beefy.v1.BeefyAPI"

// Server implements both outbound notification sinks the worker uses
// (beefy.BestBlockSink, beefy.JustificationSink) by fanning each
// notification out to every currently subscribed gRPC stream.
type Server struct {
	log *zap.Logger

	mu                 sync.Mutex
	nextID             int
	bestBlockSubs      map[int]chan types.Hash32
	justificationSubs  map[int]chan beefy.FinalityProof
}

func NewServer(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		log:               log,
		bestBlockSubs:     make(map[int]chan types.Hash32),
		justificationSubs: make(map[int]chan beefy.FinalityProof),
	}
}

// NotifyBestBlock implements beefy.BestBlockSink.
func (s *Server) NotifyBestBlock(hash types.Hash32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.bestBlockSubs {
		select {
		case ch <- hash:
		default:
		}
	}
}

// NotifyJustification implements beefy.JustificationSink.
func (s *Server) NotifyJustification(proof beefy.FinalityProof) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.justificationSubs {
		select {
		case ch <- proof:
		default:
		}
	}
}

// SubscribeBestBlock streams every best-block update until the client
// disconnects.
func (s *Server) SubscribeBestBlock(_ *Empty, stream grpc.ServerStream) error {
	ch := make(chan types.Hash32, 8)
	id := s.addBestBlockSub(ch)
	defer s.removeBestBlockSub(id)

	for {
		select {
		case <-stream.Context().Done():
			return stream.Context().Err()
		case hash := <-ch:
			if err := stream.SendMsg(&BestBlockMessage{Hash: hash}); err != nil {
				return err
			}
		}
	}
}

// SubscribeJustifications streams every finalized justification until the
// client disconnects.
func (s *Server) SubscribeJustifications(_ *Empty, stream grpc.ServerStream) error {
	ch := make(chan beefy.FinalityProof, 8)
	id := s.addJustificationSub(ch)
	defer s.removeJustificationSub(id)

	for {
		select {
		case <-stream.Context().Done():
			return stream.Context().Err()
		case proof := <-ch:
			if err := stream.SendMsg(&JustificationMessage{Proof: proof}); err != nil {
				return err
			}
		}
	}
}

func (s *Server) addBestBlockSub(ch chan types.Hash32) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.bestBlockSubs[id] = ch
	return id
}

func (s *Server) removeBestBlockSub(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bestBlockSubs, id)
}

func (s *Server) addJustificationSub(ch chan beefy.FinalityProof) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.justificationSubs[id] = ch
	return id
}

func (s *Server) removeJustificationSub(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.justificationSubs, id)
}

func subscribeBestBlockHandler(srv interface{}, stream grpc.ServerStream) error {
	var req Empty
	if err := stream.RecvMsg(&req); err != nil {
		return err
	}
	return srv.(*Server).SubscribeBestBlock(&req, stream)
}

func subscribeJustificationsHandler(srv interface{}, stream grpc.ServerStream) error {
	var req Empty
	if err := stream.RecvMsg(&req); err != nil {
		return err
	}
	return srv.(*Server).SubscribeJustifications(&req, stream)
}

// ServiceDesc is registered with a *grpc.Server via RegisterService, in
// place of a protoc-generated _grpc.pb.go file.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*interface{})(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "SubscribeBestBlock",
			Handler:       subscribeBestBlockHandler,
			ServerStreams: true,
		},
		{
			StreamName:    "SubscribeJustifications",
			Handler:       subscribeJustificationsHandler,
			ServerStreams: true,
		},
	},
	Metadata: "beefy/rpc/service.go",
}

var (
	_ beefy.BestBlockSink    = (*Server)(nil)
	_ beefy.JustificationSink = (*Server)(nil)
)
