package projector

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the projector's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "widgetkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "projector").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the projector's metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "widgetkit",
		Subsystem: "projector",
		// passes are expected well under a frame
		Buckets:  []float64{.0005, .001, .002, .004, .008, .016, .033, .066, .1},
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics holds the projector's Prometheus metrics. A nil *Metrics records
// nothing.
type Metrics struct {
	passesTotal   *prometheus.CounterVec
	passDuration  prometheus.Histogram
	coalesceTotal prometheus.Counter
	skippedTotal  prometheus.Counter
	projections   prometheus.Gauge
}

// NewMetrics registers the projector metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		passesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_total",
			Help:        "Total number of render passes",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		coalesceTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "coalesced_requests_total",
			Help:        "Render requests absorbed by an already scheduled pass",
			ConstLabels: config.ConstLabels,
		}),

		skippedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "skipped_frames_total",
			Help:        "Frames that fired while no pass could run",
			ConstLabels: config.ConstLabels,
		}),

		projections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "projections",
			Help:        "Number of registered projections",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) observePass(d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.passesTotal.WithLabelValues(status).Inc()
	m.passDuration.Observe(d.Seconds())
}

func (m *Metrics) coalesced() {
	if m != nil {
		m.coalesceTotal.Inc()
	}
}

func (m *Metrics) skipped() {
	if m != nil {
		m.skippedTotal.Inc()
	}
}

func (m *Metrics) setProjections(n int) {
	if m != nil {
		m.projections.Set(float64(n))
	}
}
