package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripledger_http_requests_total",
			Help: "Total number of HTTP requests processed, by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripledger_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// ExpensesRecorded counts ledger expenses successfully recorded.
	ExpensesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripledger_expenses_recorded_total",
		Help: "Total number of expenses recorded.",
	})

	// ObligationsSettled counts obligations flipped to settled.
	ObligationsSettled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripledger_obligations_settled_total",
		Help: "Total number of obligations settled.",
	})
)

// Metrics creates a Gin middleware that records request counts and latency.
// The route template (not the raw path) is used as the label so ids do not
// explode cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
