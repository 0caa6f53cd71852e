// Package metrics defines the Prometheus instruments of the URL checker.
// Everything is registered on the default registerer and exposed through the
// /metrics endpoint of the API server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that
// can be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

//nolint: gochecknoglobals
var (
	// CacheLookups counts cache lookups by outcome: fresh, stale, expired,
	// miss, forced or error.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "urlcheck",
		Name:      "cache_lookups_total",
		Help:      "Cache store lookups by freshness outcome.",
	}, []string{"outcome"})

	// ChecksCompleted counts finished full checks by resolved status and by
	// trigger (sync or background).
	ChecksCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "urlcheck",
		Name:      "checks_completed_total",
		Help:      "Completed full checks by resolved status and trigger.",
	}, []string{"status", "trigger"})

	// SignalFailures counts degraded verification signals by source
	// (threat_list, certificate, opinion).
	SignalFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "urlcheck",
		Name:      "signal_failures_total",
		Help:      "Verification signals that degraded instead of answering.",
	}, []string{"source"})

	// StoreWriteFailures counts best-effort cache upserts that failed.
	StoreWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "urlcheck",
		Name:      "store_write_failures_total",
		Help:      "Cache store upserts that failed and were dropped.",
	})

	// CheckDuration observes the wall time of full checks in seconds.
	CheckDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "urlcheck",
		Name:      "check_duration_seconds",
		Help:      "Duration of full checks including the opinion call.",
		Buckets:   DefaultBuckets,
	})
)
