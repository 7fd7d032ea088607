package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDMiddleware(t *testing.T) {
	var (
		seen   string
		scoped *zap.Logger
	)
	core, logs := observer.New(zap.DebugLevel)
	handler := RequestIDMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r)
		scoped = LoggerFrom(r)
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
	})

	t.Run("propagated", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Request-Id", "req-123")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", w.Header().Get("X-Request-Id"))
	})

	t.Run("scoped logger carries the id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Request-Id", "req-456")
		handler.ServeHTTP(httptest.NewRecorder(), r)

		scoped.Info("resolving")
		entries := logs.FilterMessage("resolving").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-456", entries[0].ContextMap()["request_id"])
	})

	t.Run("unsafe client id is replaced", func(t *testing.T) {
		for _, id := range []string{"has space", "line\nbreak", strings.Repeat("a", 129)} {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("X-Request-Id", id)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.NotEqual(t, id, seen)
			assert.NotEmpty(t, seen)
			assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
		}
		assert.Equal(t, 3, logs.FilterMessage("replacing client request id").Len())
	})
}

func TestLoggerFrom_WithoutMiddleware(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.NotNil(t, LoggerFrom(r))
}

func TestAccessLogMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := RequestIDMiddleware(nil)(AccessLogMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))

	r := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	r.Header.Set("X-Request-Id", "req-1")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	entries := logs.FilterMessage("access").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/graphql", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, int64(15), fields["bytes"])
	assert.Equal(t, "req-1", fields["request_id"])
}

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := RecoveryMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimitMiddleware(0.001, 2)
	defer rl.Close()
	handler := rl.Middleware(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodGet, "/graphql", nil)
		r.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	r := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	r.RemoteAddr = "10.0.0.2:5555"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code, "other clients keep their own budget")
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "/graphql")
	handler := m.Middleware(okHandler())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/graphql", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/random/path", nil))

	expected := `
# HELP bookgraph_http_requests_total HTTP requests by method, path and status.
# TYPE bookgraph_http_requests_total counter
bookgraph_http_requests_total{method="GET",path="other",status="200"} 1
bookgraph_http_requests_total{method="POST",path="/graphql",status="200"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "bookgraph_http_requests_total"))
}
