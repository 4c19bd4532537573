// Package metrics exposes training and classification counters to Prometheus.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/zpam/nbayes/pkg/learning"
)

var _ learning.Recorder = (*Collector)(nil)

// Collector records per-phase document counts and durations.
// A nil *Collector is valid and records nothing.
type Collector struct {
	documentsTotal *prometheus.CounterVec
	phaseDuration  *prometheus.HistogramVec
	modelsTrained  prometheus.Counter

	gatherer prometheus.Gatherer
	logger   *zap.Logger
}

// NewCollector registers the nbayes collectors on reg. When reg is nil a
// private registry is used.
func NewCollector(namespace string, reg *prometheus.Registry, logger *zap.Logger) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := promauto.With(reg)

	return &Collector{
		documentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_total",
				Help:      "Total number of documents processed",
			},
			[]string{"phase", "label"},
		),
		phaseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "phase_duration_seconds",
				Help:      "Duration of training and classification phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"phase"},
		),
		modelsTrained: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "models_trained_total",
				Help:      "Total number of models estimated",
			},
		),
		gatherer: reg,
		logger:   logger.With(zap.String("component", "metrics")),
	}
}

// ObservePhase records how long a phase took.
func (c *Collector) ObservePhase(phase string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.phaseDuration.WithLabelValues(phase).Observe(elapsed.Seconds())
	if phase == learning.PhaseEstimate {
		c.modelsTrained.Inc()
	}
}

// AddDocuments counts n documents of the given label seen in a phase.
func (c *Collector) AddDocuments(phase, label string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.documentsTotal.WithLabelValues(phase, label).Add(float64(n))
}

// WriteTextfile writes the current metrics in the text exposition format,
// suitable for the node_exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.gatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	c.logger.Debug("metrics written", zap.String("path", path))
	return nil
}
