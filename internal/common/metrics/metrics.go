// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ParseRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_parse_requests_total",
			Help: "Total number of parse requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	ParseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "nlu_parse_duration_seconds",
			Help: "Duration of parse requests in seconds",
		},
		[]string{"endpoint"},
	)

	IntentsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_intents_detected_total",
			Help: "Total number of detected intents by intent name and language",
		},
		[]string{"intent", "language"},
	)

	UncertainResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_uncertain_results_total",
			Help: "Total number of parse results flagged uncertain",
		},
		[]string{"endpoint"},
	)

	ActiveSessions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nlu_active_sessions",
			Help: "Number of sessions currently tracked",
		},
		[]string{"store"},
	)
)
