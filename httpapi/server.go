// Package httpapi serves the worker's plain-HTTP surface: a liveness
// probe and a Prometheus scrape endpoint, the ambient ops surface every
// long-running service in this style carries regardless of what its
// primary protocol is.
package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	metricsprom "github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	"github.com/slok/go-http-metrics/middleware/std"
	"go.uber.org/zap"

	"github.com/beefynet/beefy"
)

// NewHandler builds the full HTTP surface: CORS-wrapped, request-metered,
// exposing /healthz and /metrics.
func NewHandler(log *zap.Logger, sync beefy.SyncOracle) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	mdlw := middleware.New(middleware.Config{
		Recorder: metricsprom.NewRecorder(metricsprom.Config{Prefix: "beefy_http"}),
	})

	mux := http.NewServeMux()
	mux.Handle("/healthz", std.Handler("healthz", mdlw, healthzHandler(sync)))
	mux.Handle("/metrics", std.Handler("metrics", mdlw, promhttp.Handler()))

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet},
	}).Handler(mux)
}

func healthzHandler(sync beefy.SyncOracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sync != nil && sync.IsMajorSyncing() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("syncing"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}
