package rpc

import (
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_zap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// NewGRPCServer builds a *grpc.Server with the scale codec forced for
// every call and zap request logging on both call shapes, the way the
// teacher wires grpc-middleware's logging interceptors.
func NewGRPCServer(log *zap.Logger) *grpc.Server {
	if log == nil {
		log = zap.NewNop()
	}
	return grpc.NewServer(
		grpc.ForceServerCodec(scaleCodec{}),
		grpc.StreamInterceptor(grpc_middleware.ChainStreamServer(
			grpc_zap.StreamServerInterceptor(log),
		)),
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(
			grpc_zap.UnaryServerInterceptor(log),
		)),
	)
}

// Register attaches the hand-built BeefyAPI service to srv.
func Register(grpcServer *grpc.Server, impl *Server) {
	grpcServer.RegisterService(&ServiceDesc, impl)
}
