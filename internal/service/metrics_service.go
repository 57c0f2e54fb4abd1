package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService wraps the Prometheus registry for the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	remindersFired  prometheus.Counter
	slackDeliveries *prometheus.CounterVec
	stateReads      prometheus.Histogram
}

// NewMetricsService registers the collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	remindersFired := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reminders_fired_total",
		Help: "Total reminders fired by the poller",
	})

	slackDeliveries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "slack_deliveries_total",
		Help: "Slack webhook delivery attempts by outcome",
	}, []string{"outcome"})

	stateReads := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "state_read_seconds",
		Help:    "Latency of state document reads",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, remindersFired, slackDeliveries, stateReads, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		remindersFired:  remindersFired,
		slackDeliveries: slackDeliveries,
		stateReads:      stateReads,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ReminderFired counts a fired reminder.
func (m *MetricsService) ReminderFired() {
	if m == nil {
		return
	}
	m.remindersFired.Inc()
}

// SlackDelivery counts a webhook delivery attempt.
func (m *MetricsService) SlackDelivery(success bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.slackDeliveries.WithLabelValues(outcome).Inc()
}

// ObserveStateRead records a state document read duration.
func (m *MetricsService) ObserveStateRead(duration time.Duration) {
	if m == nil {
		return
	}
	m.stateReads.Observe(duration.Seconds())
}
