// Package metrics defines and registers the Prometheus metrics of the
// marketplace client. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init via
// promauto; the CLI exposes nothing by default, the mock backend serves
// them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "market_client"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeAPI     = "api_error"
	OutcomeNetwork = "network_error"
)

// ── Gateway metrics ──────────────────────────────────────────────────────────

// RequestsTotal counts gateway requests by result.
// Labels:
//   - method: HTTP verb
//   - route: the request path with ids collapsed (e.g. "/products/:id")
//   - outcome: "success", "api_error" or "network_error"
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of backend requests issued, by outcome.",
	},
	[]string{"method", "route", "outcome"},
)

// RequestDuration measures round-trip time including body read.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of backend requests from send to parsed body.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "outcome"},
)

// NetworkErrorsTotal counts requests that got no response at all.
var NetworkErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "network_errors_total",
		Help:      "Total number of requests that failed before a response was received.",
	},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// SessionOperationsTotal counts session store calls.
// Labels:
//   - op: "get", "set" or "clear"
//   - result: "ok", "empty" (get with no usable session) or "error"
var SessionOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_operations_total",
		Help:      "Total number of session store operations, by result.",
	},
	[]string{"op", "result"},
)
