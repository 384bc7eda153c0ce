package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus instruments on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	service  string

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	detectionsTotal  *prometheus.CounterVec
	logInsertFailed  prometheus.Counter
	inferenceSeconds prometheus.Histogram
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		service:  service,
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uad",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests processed.",
			},
			[]string{"service", "method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "uad",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service", "method", "path"},
		),
		requestInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "uad",
				Subsystem: "http",
				Name:      "in_flight_requests",
				Help:      "Number of in-flight HTTP requests.",
				ConstLabels: prometheus.Labels{
					"service": service,
				},
			},
		),
		detectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uad",
				Subsystem: "detect",
				Name:      "detections_total",
				Help:      "Total successful classifications by predicted class.",
			},
			[]string{"service", "class"},
		),
		logInsertFailed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "uad",
				Subsystem: "detect",
				Name:      "log_insert_failures_total",
				Help:      "Detection log inserts that failed and were swallowed.",
				ConstLabels: prometheus.Labels{
					"service": service,
				},
			},
		),
		inferenceSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "uad",
				Subsystem: "detect",
				Name:      "inference_duration_seconds",
				Help:      "Forward pass duration in seconds.",
				Buckets:   prometheus.DefBuckets,
				ConstLabels: prometheus.Labels{
					"service": service,
				},
			},
		),
	}

	registry.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.requestInFlight,
		m.detectionsTotal,
		m.logInsertFailed,
		m.inferenceSeconds,
	)

	return m
}

// Handler serves the Prometheus exposition for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request totals, duration and in-flight gauge per route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.requestInFlight.Inc()
		c.Next()
		m.requestInFlight.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requestTotal.WithLabelValues(m.service, c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(m.service, c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveDetection counts one successful classification.
func (m *Metrics) ObserveDetection(class string) {
	m.detectionsTotal.WithLabelValues(m.service, class).Inc()
}

// ObserveInference records the duration of one forward pass.
func (m *Metrics) ObserveInference(d time.Duration) {
	m.inferenceSeconds.Observe(d.Seconds())
}

// LogInsertFailed counts one swallowed detection log failure.
func (m *Metrics) LogInsertFailed() {
	m.logInsertFailed.Inc()
}
