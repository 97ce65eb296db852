// Package metrics records Prometheus metrics for calls made by the API client.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const nanosecondsPerMillisecond = 1e6

// Recorder is what the API client reports to.
type Recorder interface {
	ObserveRequest(method, route string, status int, d time.Duration)
	RecordFailure(kind string)
	RecordDownload(size int)
}

// Nop discards every observation.
type Nop struct{}

func (Nop) ObserveRequest(string, string, int, time.Duration) {}
func (Nop) RecordFailure(string)                              {}
func (Nop) RecordDownload(int)                                {}

// Manager owns the client metrics and the registry they live on.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	failures        *prometheus.CounterVec
	downloads       prometheus.Counter
	downloadBytes   prometheus.Histogram
}

// NewManager creates a Manager. Without WithRegistry the metrics go to a
// private registry so several clients can coexist in one process.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mycv",
		subsystem:        "client",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.requests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "requests_total",
		Help:      "Total number of API requests by method, route and status code",
	}, []string{"method", "route", "status"})

	m.requestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "request_duration_milliseconds",
		Help:      "API request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"method", "route"})

	m.failures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "request_failures_total",
		Help:      "Total number of failed API requests by failure kind",
	}, []string{"kind"})

	m.downloads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "downloads_total",
		Help:      "Total number of PDF downloads delivered to a sink",
	})

	m.downloadBytes = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "download_bytes",
		Help:      "Size of delivered PDF downloads in bytes",
		Buckets:   prometheus.ExponentialBuckets(16*1024, 2, 10),
	})
}

// ObserveRequest records one completed exchange. status 0 means no response.
func (m *Manager) ObserveRequest(method, route string, status int, d time.Duration) {
	code := "none"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(method, route, code).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(float64(d.Nanoseconds()) / nanosecondsPerMillisecond)
}

func (m *Manager) RecordFailure(kind string) {
	m.failures.WithLabelValues(kind).Inc()
}

func (m *Manager) RecordDownload(size int) {
	m.downloads.Inc()
	m.downloadBytes.Observe(float64(size))
}

// Registry exposes the registry for promhttp or for tests.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}
