// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onecup_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "onecup_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// DefinitionLookups counts definition branch outcomes. branch is "ai" or
	// "dictionary"; outcome is "cache_hit", "ok", "empty", "failed" or
	// "stale".
	DefinitionLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onecup_definition_lookups_total",
			Help: "Definition lookups by branch and outcome",
		},
		[]string{"branch", "outcome"},
	)

	DefinitionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "onecup_definition_latency_seconds",
			Help:    "Latency of each definition branch",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"branch"},
	)

	WordDetailFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onecup_word_detail_fetches_total",
			Help: "Saved-word detail fetches by outcome",
		},
		[]string{"outcome"},
	)

	WorkerQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "onecup_worker_queue_depth",
			Help: "Jobs waiting in the worker queue",
		},
	)

	ActiveReadingSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "onecup_active_reading_sessions",
			Help: "Reading controllers currently open",
		},
	)
)
