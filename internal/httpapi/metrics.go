package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langid_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "langid_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	detectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langid_detections_total",
			Help: "Total number of detections by outcome",
		},
		[]string{"outcome"}, // matched, empty
	)

	detectionTokens = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "langid_detection_tokens",
			Help:    "Number of normalized tokens per detection request",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
		},
	)

	authFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "langid_auth_failures_total",
			Help: "Requests rejected for a missing or unknown API key",
		},
	)

	loadedLanguages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "langid_loaded_languages",
			Help: "Number of language models loaded at startup",
		},
	)

	ledgerFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "langid_ledger_write_failures_total",
			Help: "Detection ledger inserts that failed",
		},
	)
)
