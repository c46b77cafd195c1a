package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequests counts served requests.
	// Labels: method, route (mux pattern), status
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "querycloud",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served",
	}, []string{"method", "route", "status"})

	// httpDuration measures handler latency. Upgraded connections are excluded.
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "querycloud",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Metrics returns middleware that records Prometheus request metrics.
// Routes are labelled by the matched ServeMux pattern to keep cardinality
// bounded; unmatched requests are labelled "unmatched".
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
			if !sw.hijacked {
				httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			}
		})
	}
}
