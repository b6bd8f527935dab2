package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "path"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests in flight",
		},
	)

	// Chain RPC metrics
	ChainRPCRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chain_rpc_requests_total",
			Help: "Total number of Ethereum RPC receipt lookups",
		},
		[]string{"result"},
	)
	ChainRPCRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "chain_rpc_request_duration_seconds",
			Help: "Duration of Ethereum RPC receipt lookups in seconds",
		},
	)

	// Payment metrics
	PaymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Total number of payment submissions by intent and outcome",
		},
		[]string{"intent", "outcome"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestsInFlight)

	prometheus.MustRegister(ChainRPCRequestsTotal)
	prometheus.MustRegister(ChainRPCRequestDuration)

	prometheus.MustRegister(PaymentsTotal)
}
