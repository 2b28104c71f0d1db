// Package metrics declares the service's prometheus collectors; the
// /metrics endpoint itself is served by pkg/metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flipscan_scans_total",
		Help: "Listing analyses started, by delivery surface.",
	}, []string{"surface"})

	FallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flipscan_fallbacks_total",
		Help: "Analyses answered by the local estimator because the inference backend was unavailable.",
	})

	ToolInvocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flipscan_tool_invocations_total",
		Help: "Agent tool invocations, by tool name and outcome.",
	}, []string{"tool", "status"})

	PaymentEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flipscan_payment_events_total",
		Help: "Payment webhook events, by outcome.",
	}, []string{"outcome"})
)
