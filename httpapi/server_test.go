package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSyncOracle struct{ syncing bool }

func (f fakeSyncOracle) IsMajorSyncing() bool { return f.syncing }

func TestHealthzOKWhenNotSyncing(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, fakeSyncOracle{syncing: false})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthzUnavailableWhileSyncing(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, fakeSyncOracle{syncing: true})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsServesPrometheusFormat(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, fakeSyncOracle{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestHealthzHandlerNilSyncOracleIsOK(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}
