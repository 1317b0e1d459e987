package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movies_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movies_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Metrics records a request counter and a duration histogram per route.
// Paths with identifiers are normalized to keep label cardinality flat.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := normalizePath(r.URL.Path)

			wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.status)

			httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
		})
	}
}

// normalizePath collapses per-record path segments into placeholders so
// every movie id or title does not become its own label value.
func normalizePath(path string) string {
	switch path {
	case "/health", "/health/ready", "/metrics",
		"/api/v1/login", "/api/v1/movies":
		return path
	}

	const titlePrefix = "/api/v1/movies/title/"
	if strings.HasPrefix(path, titlePrefix) {
		return "/api/v1/movies/title/{title}"
	}

	const idPrefix = "/api/v1/movies/id/"
	if strings.HasPrefix(path, idPrefix) {
		return "/api/v1/movies/id/{id}"
	}

	const moviesPrefix = "/api/v1/movies/"
	if strings.HasPrefix(path, moviesPrefix) {
		return "/api/v1/movies/{id}"
	}

	return path
}
