// SPDX-License-Identifier: MIT
package connector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for the evaluations counter.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics holds the connector's Prometheus collectors.
type Metrics struct {
	// evaluations counts Evaluate calls by outcome (ok, rejected, error).
	evaluations *prometheus.CounterVec

	// duration measures one update/compute/reset cycle in seconds.
	duration prometheus.Histogram

	// loglike is the last successful log-likelihood.
	loglike prometheus.Gauge
}

// NewMetrics registers the collectors on reg. A nil reg gives a private
// registry, so several connectors in one process never collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)

	return &Metrics{
		evaluations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lvlike",
			Subsystem: "connector",
			Name:      "evaluations_total",
			Help:      "Likelihood evaluations by outcome",
		}, []string{"outcome"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lvlike",
			Subsystem: "connector",
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of one likelihood evaluation cycle",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		loglike: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "lvlike",
			Subsystem: "connector",
			Name:      "last_loglike",
			Help:      "Log-likelihood of the last successful evaluation",
		}),
	}
}

func (m *Metrics) observe(outcome string, seconds, loglike float64) {
	m.evaluations.WithLabelValues(outcome).Inc()
	m.duration.Observe(seconds)
	if outcome == OutcomeOK {
		m.loglike.Set(loglike)
	}
}
