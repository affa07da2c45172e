// Copyright (c) 2026 ClaimPoint. All rights reserved.

/*
Package metrics exposes Prometheus instrumentation for the HTTP layer.

It registers a small, fixed set of collectors (request totals, latency
histogram, in-flight gauge) and provides a middleware that records them for
every request.

Cardinality note: the path label uses the chi route PATTERN (e.g.
"/api/v1/items/{id}"), never the raw URL, so item IDs don't explode the
label space.
*/
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "claimpoint_http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimpoint_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "claimpoint_http_request_duration_seconds",
			Help:    "HTTP request latency distribution.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// register installs all collectors into the default registry exactly once.
func register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpInFlight, httpRequestsTotal, httpRequestDuration)
	})
}

// Handler returns the /metrics scrape endpoint.
func Handler() http.Handler {
	register()
	return promhttp.Handler()
}

// statusRecorder captures the response status for labelling.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// Instrument records request counts, latency, and in-flight gauge for every
// request passing through it.
func Instrument() func(http.Handler) http.Handler {
	register()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()
			httpInFlight.Inc()
			defer httpInFlight.Dec()

			wrappedWriter := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
			next.ServeHTTP(wrappedWriter, request)

			path := routePattern(request)
			httpRequestsTotal.WithLabelValues(
				request.Method,
				path,
				strconv.Itoa(wrappedWriter.status),
			).Inc()
			httpRequestDuration.WithLabelValues(request.Method, path).
				Observe(time.Since(startTime).Seconds())
		})
	}
}

// routePattern resolves the matched chi route pattern, falling back to a
// constant for unmatched requests.
func routePattern(request *http.Request) string {
	routeContext := chi.RouteContext(request.Context())
	if routeContext == nil {
		return "unmatched"
	}
	pattern := routeContext.RoutePattern()
	if pattern == "" {
		return "unmatched"
	}
	return pattern
}
