package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(c *Collector) http.Handler {
	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	r.Get("/metrics", c.Handler().ServeHTTP)
	return r
}

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	router := newTestRouter(c)

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requestsTotal.WithLabelValues("GET", "/items/{id}", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requestsTotal.WithLabelValues("GET", unmatchedRoute, "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.requestDuration))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	c := NewCollector(nil)
	router := newTestRouter(c)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/1", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, `http_requests_total{method="GET",route="/items/{id}",status="201"} 1`), text)
	assert.Contains(t, text, "http_request_duration_seconds_bucket")
	assert.Contains(t, text, "go_goroutines")
}
