package comm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics of a Sender.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "hidlink").
	Namespace string
	// Buckets are the histogram buckets for send duration.
	Buckets []float64
	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures Metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// Metrics is an Observer which exports send statistics.
type Metrics struct {
	packets   *prometheus.CounterVec
	errors    *prometheus.CounterVec
	responses prometheus.Counter
	duration  prometheus.Histogram
}

// NewMetrics creates and registers the metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	conf := MetricsConfig{
		Namespace: "hidlink",
		Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2},
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&conf)
	}
	factory := promauto.With(conf.Registry)
	return &Metrics{
		packets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: conf.Namespace,
			Name:      "packets_sent_total",
			Help:      "Packets written to the device, by command type.",
		}, []string{"type"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: conf.Namespace,
			Name:      "transport_errors_total",
			Help:      "Transport failures, by operation.",
		}, []string{"op"}),
		responses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: conf.Namespace,
			Name:      "responses_total",
			Help:      "Non-empty response lines read from the device.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: conf.Namespace,
			Name:      "send_duration_seconds",
			Help:      "Time spent writing a packet and waiting for the response.",
			Buckets:   conf.Buckets,
		}),
	}
}

// PacketSent implements Observer.
func (m *Metrics) PacketSent(res *SendResult) {
	if res.Sent {
		m.packets.WithLabelValues(res.Packet.Type.String()).Inc()
	}
	if res.Response != "" {
		m.responses.Inc()
	}
	if te, ok := res.Err.(*TransportError); ok {
		m.errors.WithLabelValues(te.Op).Inc()
	}
	m.duration.Observe(res.Duration.Seconds())
}
