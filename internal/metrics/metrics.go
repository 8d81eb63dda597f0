// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

// Package metrics defines Prometheus collectors for the recommendation
// engine and HTTP layer. All collectors are registered with the default
// registry via promauto and exposed on /metrics by the API router.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "motorgraph"

var (
	// RecommendRequests counts recommendation runs by filter mode and outcome.
	// Outcome is one of: ok, empty, invalid, error.
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommend_requests_total",
			Help:      "Recommendation requests by filter mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)

	// RecommendDuration observes end-to-end recommendation latency.
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommend_duration_seconds",
			Help:      "Recommendation latency in seconds.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"mode"},
	)

	// EmptyResults counts requests where filtering eliminated every car.
	EmptyResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_results_total",
			Help:      "Recommendation requests that matched no cars.",
		},
	)

	// CompareRequests counts comparison runs by outcome.
	// Outcome is one of: ok, unknown_id, too_small, invalid, error.
	CompareRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compare_requests_total",
			Help:      "Comparison requests by outcome.",
		},
		[]string{"outcome"},
	)

	// CatalogSize tracks the number of cars in the loaded catalog.
	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_size",
			Help:      "Cars in the currently loaded catalog.",
		},
	)

	// CatalogLoadDuration observes CSV ingestion time.
	CatalogLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_load_duration_seconds",
			Help:      "Catalog load latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// HTTPRequests counts HTTP requests by method, route pattern and status class.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status class.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration observes HTTP handler latency by route pattern.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// ObserveRecommend records one recommendation run.
func ObserveRecommend(mode string, outcome string, elapsed time.Duration) {
	RecommendRequests.WithLabelValues(mode, outcome).Inc()
	RecommendDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// ObserveCompare records one comparison run.
func ObserveCompare(outcome string) {
	CompareRequests.WithLabelValues(outcome).Inc()
}

// ObserveCatalogLoad records a catalog load.
func ObserveCatalogLoad(size int, elapsed time.Duration) {
	CatalogSize.Set(float64(size))
	CatalogLoadDuration.Observe(elapsed.Seconds())
}
