// Package metrics exposes Prometheus collectors for validation runs.
package metrics

import (
	"errors"
	"time"

	"github.com/aretw0/envchecker/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeValid         = "valid"
	OutcomeInvalid       = "invalid"
	OutcomeInvalidConfig = "invalid_config"
	OutcomeError         = "error"
)

// Metrics groups the collectors recorded for each validation run.
type Metrics struct {
	Runs     *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Duration prometheus.Histogram
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "envchecker_validations_total",
				Help: "Total number of validation runs by outcome",
			},
			[]string{"outcome"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "envchecker_variable_failures_total",
				Help: "Total number of per-variable failures",
			},
			[]string{"variable"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "envchecker_validation_duration_seconds",
				Help:    "Duration of validation runs",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
		),
	}
	reg.MustRegister(m.Runs, m.Failures, m.Duration)
	return m
}

// Observe records the outcome of a single Validate call.
func (m *Metrics) Observe(err error, elapsed time.Duration) {
	m.Duration.Observe(elapsed.Seconds())
	m.Runs.WithLabelValues(Outcome(err)).Inc()

	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			m.Failures.WithLabelValues(f.Key).Inc()
		}
	}
}

// Outcome maps a Validate error to its label.
func Outcome(err error) string {
	var verr *schema.ValidationError
	switch {
	case err == nil:
		return OutcomeValid
	case errors.Is(err, schema.ErrInvalidConfig):
		return OutcomeInvalidConfig
	case errors.As(err, &verr):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
