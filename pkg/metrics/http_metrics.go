// Package metrics provides Prometheus metrics for the Sola development
// server.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// requestsTotal records handled HTTP requests.
	// Labels:
	//   - method: HTTP method (e.g., "GET", "POST")
	//   - route: gin route template (e.g., "/api/tasks/:id")
	//   - status: response status code as string
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sola_http_requests_total",
			Help: "Total number of handled HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// requestDuration records request handling latency.
	// Buckets cover an in-memory server: 1ms to 1s.
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sola_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "route"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(requestDuration)
}

// RecordRequest records one handled request.
func RecordRequest(method, route, status string) {
	requestsTotal.WithLabelValues(method, route, status).Inc()
}

// RecordRequestDuration records the handling latency of one request.
func RecordRequestDuration(method, route string, seconds float64) {
	requestDuration.WithLabelValues(method, route).Observe(seconds)
}
