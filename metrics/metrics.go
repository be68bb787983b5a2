// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is private to the service so tests can build routers repeatedly
// without tripping duplicate registration in the default registry.
var Registry = prometheus.NewRegistry()

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openpockets_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "code"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "openpockets_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	IngestRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openpockets_ingest_rows_total",
			Help: "Rows seen by the bulk loader, by table and outcome (inserted, duplicate, malformed)",
		},
		[]string{"table", "outcome"},
	)
	IngestFileErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openpockets_ingest_file_errors_total",
			Help: "Source files that could not be read",
		},
		[]string{"table"},
	)

	Resolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openpockets_identity_resolutions_total",
			Help: "Politician name resolutions by outcome (exact, partial, miss, cached)",
		},
		[]string{"outcome"},
	)
	CandidateLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openpockets_candidate_lookups_total",
			Help: "Candidate info lookups by satisfying source (summary, master, none)",
		},
		[]string{"source"},
	)

	UpstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openpockets_upstream_errors_total",
			Help: "Failed calls to external collaborators",
		},
		[]string{"provider"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequests,
		HTTPDuration,
		IngestRows,
		IngestFileErrors,
		Resolutions,
		CandidateLookups,
		UpstreamErrors,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
