// Package metrics provides Prometheus metrics collection for ModGate.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/modgate/modgate/ports"
)

// Collector holds all Prometheus metrics for ModGate. It implements
// ports.MetricsSink.
type Collector struct {
	DecisionsTotal    *prometheus.CounterVec
	FlaggedTotal      *prometheus.CounterVec
	CreditsSpentTotal *prometheus.CounterVec
	ClassifierSeconds prometheus.Histogram
}

// New creates a collector registered with the default registry.
func New() *Collector {
	return newWith(promauto.With(prometheus.DefaultRegisterer))
}

// NewWithRegistry creates a collector registered with the given
// registry (used by tests to avoid duplicate registration).
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	return newWith(promauto.With(reg))
}

func newWith(factory promauto.Factory) *Collector {
	return &Collector{
		DecisionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "modgate",
				Name:      "decisions_total",
				Help:      "Total number of moderation events by outcome",
			},
			[]string{"outcome"},
		),
		FlaggedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "modgate",
				Name:      "flagged_total",
				Help:      "Total number of active labels on flagged decisions",
			},
			[]string{"label"},
		),
		CreditsSpentTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "modgate",
				Name:      "credits_spent_total",
				Help:      "Total credits charged, by model",
			},
			[]string{"model"},
		),
		ClassifierSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "modgate",
				Name:      "classifier_duration_seconds",
				Help:      "Classifier round-trip duration in seconds",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
		),
	}
}

// Decision counts one moderation event by outcome.
func (c *Collector) Decision(outcome string) {
	c.DecisionsTotal.WithLabelValues(outcome).Inc()
}

// Flagged counts one active label on a flagged decision.
func (c *Collector) Flagged(label string) {
	c.FlaggedTotal.WithLabelValues(label).Inc()
}

// CreditsSpent counts credits charged, by model.
func (c *Collector) CreditsSpent(model string, amount int64) {
	c.CreditsSpentTotal.WithLabelValues(model).Add(float64(amount))
}

// ClassifierDuration observes one classifier round-trip in seconds.
func (c *Collector) ClassifierDuration(seconds float64) {
	c.ClassifierSeconds.Observe(seconds)
}

// Ensure interface compliance.
var _ ports.MetricsSink = (*Collector)(nil)
