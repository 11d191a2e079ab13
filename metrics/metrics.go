package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts the number of requests served by
	// the welcome service.
	//
	// Example usage:
	// metrics.RequestsTotal.WithLabelValues("welcome", "authenticated", "OK").Inc()
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iap_hello_requests_total",
			Help: "Number of requests served by the welcome service.",
		},
		[]string{"type", "condition", "status"},
	)

	// ClaimExtractionsTotal counts identity extractions by strategy and
	// outcome.
	//
	// Example usage:
	// metrics.ClaimExtractionsTotal.WithLabelValues("token", "error").Inc()
	ClaimExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iap_hello_claim_extractions_total",
			Help: "Number of identity claim extractions by mode and status.",
		},
		[]string{"mode", "status"},
	)

	// RequestHandlerDuration is a histogram that tracks the latency of each request handler.
	RequestHandlerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "iap_hello_request_handler_duration",
			Help: "A histogram of latencies for each request handler.",
		},
		[]string{"path", "code"},
	)
)
