package http

import (
	"net/http"
	"strconv"
	"time"

	"newspress/internal/handler/http/pathutil"
	"newspress/internal/handler/http/responsewriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request metrics are labelled by route template, never by raw path.
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Requests served, by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	// Page renders wait on the upstream API, so the buckets reach past the
	// upstream timeout.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "Time to serve a request, by method, route and status",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portal_http_requests_in_flight",
			Help: "Requests currently being served",
		},
	)

	// Form posts carry uploads up to the body limit; GETs have no body.
	httpRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_size_bytes",
			Help:    "Declared request body size of requests with a body",
			Buckets: prometheus.ExponentialBuckets(256, 4, 9),
		},
		[]string{"method", "route"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_response_size_bytes",
			Help:    "Bytes written in the response body",
			Buckets: prometheus.ExponentialBuckets(256, 4, 9),
		},
		[]string{"method", "route"},
	)
)

// MetricsMiddleware records count, latency and size of every request.
// Routes come from pathutil.NormalizePath, so /news/markets-rally is
// recorded as /news/:slug and unknown paths as /:unknown.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		route := pathutil.NormalizePath(r.URL.Path)
		if r.ContentLength > 0 {
			httpRequestSize.WithLabelValues(r.Method, route).Observe(float64(r.ContentLength))
		}

		rw := responsewriter.Wrap(w)
		start := time.Now()
		next.ServeHTTP(rw, r)
		elapsed := time.Since(start).Seconds()

		status := strconv.Itoa(rw.StatusCode())
		httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route, status).Observe(elapsed)
		httpResponseSize.WithLabelValues(r.Method, route).Observe(float64(rw.BytesWritten()))
	})
}

// MetricsHandler serves the Prometheus exposition for /metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
