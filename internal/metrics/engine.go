package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search engine Prometheus metrics.
var (
	EngineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ftquery",
			Name:      "engine_requests_total",
			Help:      "Total number of search engine commands",
		},
		[]string{"command", "status"},
	)

	EngineRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ftquery",
			Name:      "engine_request_duration_seconds",
			Help:      "Search engine command duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"command"},
	)

	EngineDocumentsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ftquery",
			Name:      "engine_documents_returned",
			Help:      "Documents returned per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"command"},
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers Prometheus engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(EngineRequestsTotal)
	prometheus.MustRegister(EngineRequestDuration)
	prometheus.MustRegister(EngineDocumentsReturned)
	engineMetricsRegistered = true
}

// ObserveEngine records one engine command outcome.
func ObserveEngine(command string, seconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	EngineRequestsTotal.WithLabelValues(command, status).Inc()
	EngineRequestDuration.WithLabelValues(command).Observe(seconds)
}
