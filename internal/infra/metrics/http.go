package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		httpRequestsLatencyMs,
	)
}

var httpRequestsLatencyMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_requests_latency_ms",
		Help:    "HTTP request latency distribution in milliseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600, 3000},
	},
	[]string{"method", "path", "status"},
)

func ObserveHTTPRequest(method, path string, status int, latencyMs float64) {
	httpRequestsLatencyMs.WithLabelValues(method, path, strconv.Itoa(status)).Observe(latencyMs)
}
