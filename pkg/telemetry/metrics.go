package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/statectx/pkg/statectx"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "statectx").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry. Registering twice on the same
// registry panics, so tests should pass a fresh prometheus.NewRegistry().
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "statectx",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a statectx.Observer that records provider activity. Every
// series is labelled with the context name.
type Metrics struct {
	mounted   *prometheus.CounterVec
	active    *prometheus.GaugeVec
	commits   *prometheus.CounterVec
	revision  *prometheus.GaugeVec
	dropped   *prometheus.CounterVec
	frames    prometheus.Counter
	frameSize prometheus.Histogram
}

var _ statectx.Observer = (*Metrics)(nil)

// Prometheus registers the statectx metrics and returns an observer that
// updates them.
//
// Metrics collected:
//   - statectx_providers_mounted_total: providers mounted, by context
//   - statectx_providers_active: providers currently mounted
//   - statectx_commits_total: rendered commits
//   - statectx_revision: last rendered revision
//   - statectx_dropped_writes_total: writes after unmount
//   - statectx_frames_total: frames pushed to clients (RecordFrame)
//   - statectx_frame_bytes: size of pushed frames
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)
	labels := []string{"context"}

	return &Metrics{
		mounted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "providers_mounted_total",
			Help:        "Total number of providers mounted",
			ConstLabels: config.ConstLabels,
		}, labels),

		active: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "providers_active",
			Help:        "Number of providers currently mounted",
			ConstLabels: config.ConstLabels,
		}, labels),

		commits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commits_total",
			Help:        "Total number of state commits rendered",
			ConstLabels: config.ConstLabels,
		}, labels),

		revision: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "revision",
			Help:        "Last rendered state revision",
			ConstLabels: config.ConstLabels,
		}, labels),

		dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dropped_writes_total",
			Help:        "Total number of state writes dropped after provider unmount",
			ConstLabels: config.ConstLabels,
		}, labels),

		frames: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_total",
			Help:        "Total number of rendered frames pushed to clients",
			ConstLabels: config.ConstLabels,
		}),

		frameSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frame_bytes",
			Help:        "Size of rendered frames pushed to clients",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{256, 1024, 4096, 16384, 65536},
		}),
	}
}

// ProviderMounted implements statectx.Observer.
func (m *Metrics) ProviderMounted(name string) {
	m.mounted.WithLabelValues(name).Inc()
	m.active.WithLabelValues(name).Inc()
}

// StateCommitted implements statectx.Observer.
func (m *Metrics) StateCommitted(name string, revision uint64) {
	m.commits.WithLabelValues(name).Inc()
	m.revision.WithLabelValues(name).Set(float64(revision))
}

// ProviderUnmounted implements statectx.Observer.
func (m *Metrics) ProviderUnmounted(name string) {
	m.active.WithLabelValues(name).Dec()
}

// WriteDropped implements statectx.Observer.
func (m *Metrics) WriteDropped(name string) {
	m.dropped.WithLabelValues(name).Inc()
}

// RecordFrame counts one frame of size bytes pushed to a client.
func (m *Metrics) RecordFrame(size int) {
	m.frames.Inc()
	m.frameSize.Observe(float64(size))
}
