// Package metrics provides Prometheus instrumentation for the payment-ops service.
package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paymentops",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path pattern, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "paymentops",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ActionsTotal counts store mutations by action and result.
	ActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paymentops",
			Name:      "actions_total",
			Help:      "Total payment store actions by action type and result.",
		},
		[]string{"action", "result"},
	)

	// RiskAssessmentsTotal counts risk assessments by level.
	RiskAssessmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paymentops",
			Name:      "risk_assessments_total",
			Help:      "Total risk assessments by resulting risk level.",
		},
		[]string{"level"},
	)

	// RoutingDecisionsTotal counts routing decisions by disposition.
	RoutingDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paymentops",
			Name:      "routing_decisions_total",
			Help:      "Total routing decisions by disposition.",
		},
		[]string{"route"},
	)

	// ActiveWebSocketClients tracks connected stream clients.
	ActiveWebSocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "paymentops",
			Name:      "active_websocket_clients",
			Help:      "Number of currently connected WebSocket clients.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ActionsTotal,
		RiskAssessmentsTotal,
		RoutingDecisionsTotal,
		ActiveWebSocketClients,
	)
}

// Middleware records request counts and latency per route pattern.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := statusBucket(c.Writer.Status())

		HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler returns the /metrics endpoint handler.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func statusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
