package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldnote/foldnote-server/internal/metrics"
	"github.com/foldnote/foldnote-server/internal/ratelimit"
)

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	limiter := ratelimit.New(0.01, 2)
	t.Cleanup(limiter.Stop)
	m := metrics.New()

	ts := setupTestServerWith(t, testServerOptions{
		Options: Options{RateLimiter: limiter, Metrics: m},
	})

	for range 2 {
		resp := ts.api.Get("/api/v1/users/google/nobody")
		require.Equal(t, http.StatusNotFound, resp.Code)
	}

	resp := ts.api.Get("/api/v1/users/google/nobody")
	require.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.NotEmpty(t, resp.Header().Get("Retry-After"))

	env := decode[any](t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "RATE_LIMITED", env.Code)
	expected := `
# HELP foldnote_http_rate_limited_total Requests rejected by the rate limiter.
# TYPE foldnote_http_rate_limited_total counter
foldnote_http_rate_limited_total 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "foldnote_http_rate_limited_total"))

	// Health checks are outside /api and never limited.
	assert.Equal(t, http.StatusOK, ts.api.Get("/health").Code)
}

func TestRateLimit_SeparateClients(t *testing.T) {
	limiter := ratelimit.New(0.01, 1)
	t.Cleanup(limiter.Stop)

	ts := setupTestServerWith(t, testServerOptions{Options: Options{RateLimiter: limiter}})

	for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/google/nobody", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		ts.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, "client %s", ip)
	}
	assert.Equal(t, 2, limiter.Len())
}

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	m := metrics.New()
	ts := setupTestServerWith(t, testServerOptions{Options: Options{Metrics: m}})

	u := ts.createUser(t, "g-1")
	require.Equal(t, http.StatusOK, ts.api.Get("/api/v1/users/"+u.ID).Code)
	require.Equal(t, http.StatusNotFound, ts.api.Get("/api/v1/users/missing").Code)

	expected := `
# HELP foldnote_http_requests_total HTTP requests by method, route pattern and status code.
# TYPE foldnote_http_requests_total counter
foldnote_http_requests_total{method="GET",route="/api/v1/users/{id}",status="200"} 1
foldnote_http_requests_total{method="GET",route="/api/v1/users/{id}",status="404"} 1
foldnote_http_requests_total{method="POST",route="/api/v1/users",status="201"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "foldnote_http_requests_total"))

	resp := ts.api.Get("/metrics")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "foldnote_http_requests_total")
}

func TestRecoverer_PanicReturnsEnvelope(t *testing.T) {
	ts := setupTestServer(t)
	ts.router.Get("/api/v1/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	resp := ts.api.Get("/api/v1/boom")
	require.Equal(t, http.StatusInternalServerError, resp.Code)

	env := decode[any](t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "INTERNAL", env.Code)
	assert.Equal(t, "internal server error", env.Error)
	assert.NotContains(t, resp.Body.String(), "boom")

	// The server keeps serving after a panic.
	assert.Equal(t, http.StatusOK, ts.api.Get("/health").Code)
}
