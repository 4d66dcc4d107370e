package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontdesk_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "frontdesk_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	StoreCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontdesk_store_calls_total",
			Help: "Spreadsheet calls by worksheet, operation and outcome.",
		},
		[]string{"table", "op", "outcome"},
	)

	StoreCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "frontdesk_store_call_duration_seconds",
			Help:    "Spreadsheet call latency.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"table", "op"},
	)

	FlowOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontdesk_flow_outcomes_total",
			Help: "Form submissions by flow and outcome.",
		},
		[]string{"flow", "outcome"},
	)

	PartialMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontdesk_partial_mutations_total",
			Help: "Two-step operations that stopped after their first step.",
		},
		[]string{"op"},
	)
)

// Flow outcome labels
const (
	OutcomeSuccess    = "success"
	OutcomeInvalid    = "invalid"
	OutcomeStoreError = "store_error"
	OutcomePartial    = "partial"
)
