package main

import (
	"context"
	"net"
	"net/http"

	"go.uber.org/zap"
)

func netListen(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}

type httpServer struct {
	addr    string
	handler http.Handler
}

func (s *httpServer) run(ctx context.Context, log *zap.Logger) {
	srv := &http.Server{Addr: s.addr, Handler: s.handler}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warn("http server exited", zap.Error(err))
	}
}
