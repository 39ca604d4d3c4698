package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search provider Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "matseek",
			Name:      "search_requests_total",
			Help:      "Total number of search provider requests",
		},
		[]string{"endpoint", "status"},
	)

	SearchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "matseek",
			Name:      "search_request_duration_seconds",
			Help:      "Search provider request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	AdFilteredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "matseek",
			Name:      "ad_filtered_snippets_total",
			Help:      "Total review snippets dropped by ad-keyword filtering",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchRequestDuration)
	prometheus.MustRegister(AdFilteredTotal)
	searchMetricsRegistered = true
}
