package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for the AI transports and the hybrid search core.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hirepath",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hirepath",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hirepath",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"model", "type"},
	)

	QueryParseTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hirepath",
			Name:      "query_parse_total",
			Help:      "Query parser outcomes: parsed or fallback",
		},
		[]string{"outcome"}, // "parsed" / "fallback"
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hirepath",
			Name:      "search_requests_total",
			Help:      "Hybrid search requests by kind",
		},
		[]string{"kind"},
	)

	SearchSourceResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hirepath",
			Name:      "search_source_results_total",
			Help:      "Results contributed per source before merging",
		},
		[]string{"kind", "source"}, // source: "structured" / "semantic"
	)
)

var coreMetricsRegistered bool

// RegisterCoreMetrics registers the AI and search metrics. Must be called
// once from main (no init() side effects).
func RegisterCoreMetrics() {
	if coreMetricsRegistered {
		return
	}
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingTokensTotal)
	prometheus.MustRegister(QueryParseTotal)
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchSourceResults)
	coreMetricsRegistered = true
}
