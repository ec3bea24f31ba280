// Package metrics exposes the Prometheus instruments of the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locagest_http_requests_total",
			Help: "Total HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "locagest_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RentalTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locagest_rental_transitions_total",
			Help: "Lifecycle transitions applied, by action and outcome.",
		},
		[]string{"action", "outcome"},
	)
)
