// Package metrics exposes the daemon's Prometheus instrumentation: upstream
// fetch outcomes, cache effectiveness, parse quality, and HTTP traffic.
package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	fetchAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sattrack_fetch_attempts_total",
			Help: "Upstream provider fetch attempts.",
		},
		[]string{"provider"},
	)

	fetchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sattrack_fetch_failures_total",
			Help: "Upstream provider fetch failures.",
		},
		[]string{"provider"},
	)

	cacheOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sattrack_cache_ops_total",
			Help: "Cache lookups by data class and outcome.",
		},
		[]string{"class", "outcome"},
	)

	recordsParsedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sattrack_records_parsed_total",
			Help: "TLE records successfully parsed.",
		},
	)

	recordsRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sattrack_records_rejected_total",
			Help: "TLE records rejected as malformed.",
		},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sattrack_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sattrack_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
)

func init() {
	prometheus.MustRegister(
		fetchAttemptsTotal,
		fetchFailuresTotal,
		cacheOpsTotal,
		recordsParsedTotal,
		recordsRejectedTotal,
		httpRequestsTotal,
		httpDurationSeconds,
	)
}

func FetchAttempt(provider string) { fetchAttemptsTotal.WithLabelValues(provider).Inc() }
func FetchFailure(provider string) { fetchFailuresTotal.WithLabelValues(provider).Inc() }

func CacheHit(class string)  { cacheOpsTotal.WithLabelValues(class, "hit").Inc() }
func CacheMiss(class string) { cacheOpsTotal.WithLabelValues(class, "miss").Inc() }

func RecordParsed()   { recordsParsedTotal.Inc() }
func RecordRejected() { recordsRejectedTotal.Inc() }

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack forwards to the underlying writer so WebSocket upgrades keep
// working behind the middleware.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return h.Hijack()
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		httpRequestsTotal.WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(rw.statusCode)).Inc()
		httpDurationSeconds.WithLabelValues(r.URL.Path, r.Method).Observe(time.Since(start).Seconds())
	})
}
