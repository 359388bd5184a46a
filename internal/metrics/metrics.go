// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Divyansh670/FeedbackHub/internal/model"
)

// Collector records the application metrics.
type Collector struct {
	loginSuccess      prometheus.Counter
	loginFailure      prometheus.Counter
	feedbackSubmitted *prometheus.CounterVec
	feedbackAcked     prometheus.Counter
	httpStatus        *prometheus.CounterVec
	requestLatency    prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics with the given
// registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedbackhub_login_success_total",
			Help: "Total number of successful logins.",
		}),
		loginFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedbackhub_login_failure_total",
			Help: "Total number of failed login attempts.",
		}),
		feedbackSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedbackhub_feedback_submitted_total",
			Help: "Total number of feedback records submitted, by sentiment.",
		}, []string{"sentiment"}),
		feedbackAcked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedbackhub_feedback_acknowledged_total",
			Help: "Total number of feedback acknowledgments.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedbackhub_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "feedbackhub_request_latency_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.loginSuccess,
		c.loginFailure,
		c.feedbackSubmitted,
		c.feedbackAcked,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordLoginSuccess records a successful login.
func (c *Collector) RecordLoginSuccess() {
	c.loginSuccess.Inc()
}

// RecordLoginFailure records a failed login attempt.
func (c *Collector) RecordLoginFailure() {
	c.loginFailure.Inc()
}

// RecordFeedbackSubmitted records a created feedback record.
func (c *Collector) RecordFeedbackSubmitted(sentiment model.Sentiment) {
	c.feedbackSubmitted.WithLabelValues(string(sentiment)).Inc()
}

// RecordFeedbackAcknowledged records an acknowledgment.
func (c *Collector) RecordFeedbackAcknowledged() {
	c.feedbackAcked.Inc()
}

// RecordHTTPStatus records a response status code.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency records a request duration.
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute returns an HTTP handler serving /metrics.
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
