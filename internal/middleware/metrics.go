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
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	reportsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civic_reports_created_total",
			Help: "Total number of reports created",
		},
		[]string{"category"},
	)

	votesToggledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civic_votes_toggled_total",
			Help: "Total number of vote toggles",
		},
		[]string{"action"},
	)

	chatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civic_chat_requests_total",
			Help: "Total number of chat requests",
		},
		[]string{"rule"},
	)

	rateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "civic_rate_limited_total",
			Help: "Total number of report submissions rejected by the cooldown",
		},
	)

	reportsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "civic_reports_by_status",
			Help: "Current number of reports in each status",
		},
		[]string{"status"},
	)

	voteRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "civic_vote_rows",
			Help: "Current number of vote rows",
		},
	)
)

// MetricsMiddleware collects Prometheus metrics for each HTTP request.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		httpRequestsInFlight.Inc()

		// c.FullPath() keeps route parameters symbolic, e.g.
		// /api/reports/:id/upvote, so cardinality stays bounded.
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		c.Next()

		httpRequestsInFlight.Dec()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(duration)
	}
}

// RecordReportCreated records a successfully created report.
func RecordReportCreated(category string) {
	reportsCreatedTotal.WithLabelValues(category).Inc()
}

// RecordVoteToggle records a toggle outcome: "added" or "removed".
func RecordVoteToggle(action string) {
	votesToggledTotal.WithLabelValues(action).Inc()
}

// RecordChatRequest records which responder rule answered a chat message.
func RecordChatRequest(rule string) {
	chatRequestsTotal.WithLabelValues(rule).Inc()
}

// RecordRateLimited records a submission rejected by the cooldown.
func RecordRateLimited() {
	rateLimitedTotal.Inc()
}

// SetReportsByStatus updates the status gauge, written by the stats collector.
func SetReportsByStatus(status string, count int64) {
	reportsByStatus.WithLabelValues(status).Set(float64(count))
}

// SetVoteRows updates the vote-row gauge, written by the stats collector.
func SetVoteRows(count int64) {
	voteRows.Set(float64(count))
}
