package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "entryform",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "entryform",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	nameChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "entryform",
			Subsystem: "names",
			Name:      "checks_total",
			Help:      "Name availability checks by outcome.",
		},
		[]string{"outcome"},
	)
	locationFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "entryform",
			Subsystem: "locations",
			Name:      "fetches_total",
			Help:      "Location list fetches by success.",
		},
		[]string{"success"},
	)
)

// Name check outcomes.
const (
	OutcomeAvailable = "available"
	OutcomeTaken     = "taken"
	OutcomeError     = "error"
)

// RegisterMetrics registers the collectors with the default registry exactly once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, nameChecks, locationFetches)
	})
}

// RecordHTTPRequest counts one served request and observes its duration.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

// RecordNameCheck counts a name check by outcome.
func RecordNameCheck(outcome string) {
	RegisterMetrics()
	nameChecks.WithLabelValues(outcome).Inc()
}

// RecordLocationFetch counts a location fetch by success.
func RecordLocationFetch(success bool) {
	RegisterMetrics()
	locationFetches.WithLabelValues(strconv.FormatBool(success)).Inc()
}
