package justifysync

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/libp2p/go-libp2p/core/network"
	"github.com/multiformats/go-varint"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/beefynet/beefy"
	"github.com/beefynet/beefy/codec"
)

// LookupFunc answers a justification request. A false ok means the local
// node doesn't have a proof for that block; err is reserved for unexpected
// failures (store errors, etc).
type LookupFunc func(ctx context.Context, number uint64) (beefy.FinalityProof, bool, error)

// Opt configures a Server.
type Opt func(s *Server)

func WithLog(log *zap.Logger) Opt {
	return func(s *Server) { s.logger = log }
}

func WithTimeout(timeout time.Duration) Opt {
	return func(s *Server) { s.timeout = timeout }
}

func WithHardTimeout(timeout time.Duration) Opt {
	return func(s *Server) { s.hardTimeout = timeout }
}

func WithQueueSize(size int) Opt {
	return func(s *Server) { s.queueSize = size }
}

func WithRequestsPerInterval(n int, interval time.Duration) Opt {
	return func(s *Server) {
		s.requestsPerInterval = n
		s.interval = interval
	}
}

// Server answers on-demand justification requests from peers.
type Server struct {
	logger  *zap.Logger
	lookup  LookupFunc
	h       Host

	timeout             time.Duration
	hardTimeout         time.Duration
	requestLimit        int
	queueSize           int
	requestsPerInterval int
	interval            time.Duration

	limit   *rate.Limiter
	sem     *semaphore.Weighted
	queue   chan network.Stream
	stopped chan struct{}
}

// New registers the justification sync stream handler on h and returns a
// Server whose Run loop must be started to actually process requests.
func New(h Host, lookup LookupFunc, opts ...Opt) *Server {
	s := &Server{
		logger:              zap.NewNop(),
		lookup:              lookup,
		h:                   h,
		timeout:             15 * time.Second,
		hardTimeout:         time.Minute,
		requestLimit:        256,
		queueSize:           256,
		requestsPerInterval: 50,
		interval:            time.Second,
		queue:               make(chan network.Stream),
		stopped:             make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.limit = rate.NewLimiter(rate.Every(s.interval/time.Duration(s.requestsPerInterval)), s.requestsPerInterval)
	s.sem = semaphore.NewWeighted(int64(s.queueSize))
	h.SetStreamHandler(ProtocolID, func(stream network.Stream) {
		if !s.sem.TryAcquire(1) {
			stream.Close()
			return
		}
		select {
		case <-s.stopped:
			s.sem.Release(1)
			stream.Close()
		case s.queue <- stream:
		}
	})
	return s
}

// Run processes queued requests until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	var eg errgroup.Group
	for {
		select {
		case <-ctx.Done():
			close(s.stopped)
			eg.Wait()
			return nil
		case stream := <-s.queue:
			if err := s.limit.Wait(ctx); err != nil {
				s.sem.Release(1)
				stream.Close()
				eg.Wait()
				return nil
			}
			eg.Go(func() error {
				defer s.sem.Release(1)
				defer stream.Close()
				s.handle(ctx, stream)
				return nil
			})
		}
	}
}

func (s *Server) handle(ctx context.Context, stream network.Stream) {
	ds := newDeadlineStream(stream, s.timeout, s.hardTimeout)
	rd := bufio.NewReader(ds)
	size, err := varint.ReadUvarint(rd)
	if err != nil {
		s.logger.Debug("reading request length failed", zap.Error(err))
		return
	}
	if size > uint64(s.requestLimit) {
		s.logger.Warn("request length over limit", zap.Uint64("size", size), zap.Int("limit", s.requestLimit))
		stream.Reset()
		return
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(rd, buf); err != nil {
		s.logger.Debug("reading request body failed", zap.Error(err))
		return
	}
	var req Request
	if _, err := codec.Decode(buf, &req); err != nil {
		s.logger.Debug("decoding request failed", zap.Error(err))
		return
	}

	var resp Response
	proof, ok, err := s.lookup(ctx, req.BlockNumber.Uint64())
	switch {
	case err != nil:
		resp.Error = err.Error()
	case !ok:
		resp.Error = fmt.Sprintf("no justification for block %d", req.BlockNumber.Uint64())
	default:
		encoded, err := codec.Encode(&proof)
		if err != nil {
			resp.Error = err.Error()
			break
		}
		resp.Data = encoded
	}

	wr := bufio.NewWriter(ds)
	if _, err := codec.EncodeTo(wr, &resp); err != nil {
		s.logger.Debug("writing response failed", zap.Error(err))
		return
	}
	if err := wr.Flush(); err != nil {
		s.logger.Debug("flushing response failed", zap.Error(err))
	}
}
