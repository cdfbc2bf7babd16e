package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActionsReceivedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_actions_received_total",
			Help: "Total number of valid actions received by the gateway (count)",
		},
	)

	ActionsForwardedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_actions_forwarded_total",
			Help: "Total number of actions successfully forwarded downstream (count)",
		},
	)

	DispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_dispatch_total",
			Help: "Total number of dispatch attempts per transport (count)",
		},
		[]string{"transport", "status"},
	)

	DispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_dispatch_duration_ms",
			Help:    "Dispatch duration per transport in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		},
		[]string{"transport"},
	)

	RateLimitRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_requests_total",
			Help: "Total number of requests checked against rate limit (count)",
		},
		[]string{"status"},
	)
)

func RegisterGatewayMetrics() {
	prometheus.MustRegister(ActionsReceivedTotal)
	prometheus.MustRegister(ActionsForwardedTotal)
	prometheus.MustRegister(DispatchTotal)
	prometheus.MustRegister(DispatchDuration)
	prometheus.MustRegister(RateLimitRequestsTotal)
}

func IncActionsReceived() {
	ActionsReceivedTotal.Inc()
}

func IncActionsForwarded() {
	ActionsForwardedTotal.Inc()
}

func IncDispatch(transport, status string) {
	DispatchTotal.WithLabelValues(transport, status).Inc()
}

func ObserveDispatchDuration(transport string, duration time.Duration) {
	DispatchDuration.WithLabelValues(transport).Observe(float64(duration.Milliseconds()))
}
