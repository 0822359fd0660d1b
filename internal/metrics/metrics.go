// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

// Package metrics provides Prometheus instrumentation for the query path,
// the ingestion pipeline, and the HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Query Metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platescout_queries_total",
			Help: "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"}, // "results", "no_results", "empty_query", "time_format", "midnight_crossing"
	)

	QueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "platescout_query_duration_seconds",
			Help:    "Duration of query parse and match in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	QueryResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "platescout_query_results",
			Help:    "Number of restaurants returned per successful query",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
	)

	// Dataset Metrics
	DatasetSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "platescout_dataset_restaurants",
			Help: "Number of restaurants in the live snapshot",
		},
	)

	IngestRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platescout_ingest_runs_total",
			Help: "Total number of ingestion runs by outcome",
		},
		[]string{"outcome"}, // "success", "warnings", "failure"
	)

	IngestSkippedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platescout_ingest_skipped_records_total",
			Help: "Total number of records skipped during ingestion by reason",
		},
		[]string{"reason"},
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "platescout_ingest_duration_seconds",
			Help:    "Duration of ingestion runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platescout_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "platescout_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// RecordQuery records one query by outcome label.
func RecordQuery(outcome string, duration time.Duration, results int) {
	QueriesTotal.WithLabelValues(outcome).Inc()
	QueryDuration.Observe(duration.Seconds())
	if outcome == "results" || outcome == "no_results" {
		QueryResults.Observe(float64(results))
	}
}

// RecordIngest records one ingestion run and its skipped records.
func RecordIngest(outcome string, duration time.Duration, skippedByReason map[string]int) {
	IngestRuns.WithLabelValues(outcome).Inc()
	IngestDuration.Observe(duration.Seconds())
	for reason, n := range skippedByReason {
		IngestSkippedRecords.WithLabelValues(reason).Add(float64(n))
	}
}

// statusRecorder captures the response status for the HTTP metrics
// middleware.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware instruments handlers with request counts and latencies.
// The path label uses the raw request path; the route surface is small and
// fixed, so label cardinality stays bounded.
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}
