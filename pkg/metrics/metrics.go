// Package metrics holds the service's Prometheus collectors on a private
// registry so tests and embedding programs never collide with the default one.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nightlife"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	directoryCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "calls_total",
			Help:      "Total number of business directory calls by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	directoryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "call_duration_seconds",
			Help:      "Duration of business directory calls.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"op"},
	)

	attendanceOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "attendance",
			Name:      "operations_total",
			Help:      "Total number of attendance changes by operation and result.",
		},
		[]string{"op", "result"},
	)

	rateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by a rate limiter.",
		},
		[]string{"path"},
	)

	sessionsPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "purged_total",
			Help:      "Total number of expired sessions removed by housekeeping.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		directoryCalls,
		directoryDuration,
		attendanceOps,
		rateLimited,
		sessionsPurged,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := CanonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

// RecordDirectoryCall records one outbound directory request.
func RecordDirectoryCall(op, outcome string, duration time.Duration) {
	if duration <= 0 {
		duration = time.Millisecond
	}
	directoryCalls.WithLabelValues(op, outcome).Inc()
	directoryDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordAttendance counts an attendance change. result is "ok" or "error".
func RecordAttendance(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	attendanceOps.WithLabelValues(op, result).Inc()
}

// RecordRateLimited counts a request rejected with 429.
func RecordRateLimited(path string) {
	rateLimited.WithLabelValues(CanonicalPath(path)).Inc()
}

// RecordSessionsPurged adds n to the purged sessions counter.
func RecordSessionsPurged(n int64) {
	if n > 0 {
		sessionsPurged.Add(float64(n))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// unknownPath labels every request that matches no route.
const unknownPath = "/:unknown"

var (
	// rootPaths are the top-level segments served outside /api.
	rootPaths = map[string]bool{"livez": true, "readyz": true, "metrics": true, "swagger": true}

	// apiPaths maps /api/<segment> to whether the route takes a path parameter.
	apiPaths = map[string]bool{
		"register":             false,
		"login":                false,
		"logout":               false,
		"current-session":      false,
		"venues-attending":     false,
		"venue-remove":         false,
		"number-attending":     true,
		"get-venues-attending": true,
		"yelp-data":            true,
	}
)

// CanonicalPath maps a request path onto a fixed set of route labels so
// label cardinality stays bounded: /api/yelp-data/London becomes
// /api/yelp-data/:param and anything unrouted becomes /:unknown.
func CanonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	if parts[0] != "api" {
		if rootPaths[parts[0]] {
			return "/" + parts[0]
		}
		return unknownPath
	}
	if len(parts) < 2 {
		return unknownPath
	}

	if parts[1] == "auth" {
		switch {
		case len(parts) == 3:
			return "/api/auth/:provider"
		case len(parts) == 4 && parts[3] == "callback":
			return "/api/auth/:provider/callback"
		}
		return unknownPath
	}

	hasParam, ok := apiPaths[parts[1]]
	switch {
	case !ok:
		return unknownPath
	case hasParam && len(parts) == 3:
		return "/api/" + parts[1] + "/:param"
	case !hasParam && len(parts) == 2:
		return "/api/" + parts[1]
	}
	return unknownPath
}
