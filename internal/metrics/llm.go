package metrics

import "github.com/prometheus/client_golang/prometheus"

// LLM backend Prometheus metrics.
var (
	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kitvault",
			Name:      "llm_requests_total",
			Help:      "Total number of LLM backend requests",
		},
		[]string{"provider", "model", "operation", "status"},
	)

	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kitvault",
			Name:      "llm_request_duration_seconds",
			Help:      "LLM backend request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model", "operation"},
	)

	LLMErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kitvault",
			Name:      "llm_errors_total",
			Help:      "Total LLM backend errors",
		},
		[]string{"provider", "model", "operation", "error_type"},
	)

	SelectorFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kitvault",
			Name:      "selector_fallbacks_total",
			Help:      "Relevance selections that fell back to all documents",
		},
		[]string{"reason"}, // "unconfigured" / "backend_error" / "unparseable"
	)
)

var llmMetricsRegistered bool

// RegisterLLMMetrics registers Prometheus LLM metrics. Must be called once from main.
func RegisterLLMMetrics() {
	if llmMetricsRegistered {
		return
	}
	prometheus.MustRegister(LLMRequestsTotal)
	prometheus.MustRegister(LLMRequestDuration)
	prometheus.MustRegister(LLMErrorsTotal)
	prometheus.MustRegister(SelectorFallbacksTotal)
	llmMetricsRegistered = true
}
