package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "atomsolve"
	solverSubsystem  = "solver"
)

// Metrics records per-trial solver outcomes. A nil *Metrics is valid and
// records nothing. All methods are safe for concurrent use.
type Metrics struct {
	// TrialsTotal counts finished trials. Labels: status (converged, stopped, failed).
	TrialsTotal *prometheus.CounterVec
	// AcceptedMovesTotal counts accepted swaps over all trials.
	AcceptedMovesTotal prometheus.Counter
	// IterationsTotal counts local-search steps over all trials.
	IterationsTotal prometheus.Counter
	// TrialDurationSeconds measures wall-clock time per trial.
	TrialDurationSeconds prometheus.Histogram
	// BestEnergy is the energy returned by the most recent Solve.
	BestEnergy prometheus.Gauge
}

// NewMetrics creates the solver metrics and registers them on reg.
//
// Errors: the registry's error (for example prometheus.AlreadyRegisteredError
// when two Metrics share one registry).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		TrialsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "trials_total",
			Help:      "Finished solver trials by terminal status.",
		}, []string{"status"}),
		AcceptedMovesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "accepted_moves_total",
			Help:      "Accepted swap moves across all trials.",
		}),
		IterationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "iterations_total",
			Help:      "Local-search steps across all trials.",
		}),
		TrialDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "trial_duration_seconds",
			Help:      "Wall-clock duration of one trial.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		BestEnergy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "best_energy",
			Help:      "Total energy of the most recent solution.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.TrialsTotal, m.AcceptedMovesTotal, m.IterationsTotal, m.TrialDurationSeconds, m.BestEnergy,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("NewMetrics: %w", err)
		}
	}

	return m, nil
}

// RecordTrial records one finished trial.
func (m *Metrics) RecordTrial(status string, iterations, accepted int, d time.Duration) {
	if m == nil {
		return
	}
	m.TrialsTotal.WithLabelValues(status).Inc()
	m.IterationsTotal.Add(float64(iterations))
	m.AcceptedMovesTotal.Add(float64(accepted))
	m.TrialDurationSeconds.Observe(d.Seconds())
}

// SetBestEnergy publishes the energy of a finished Solve.
func (m *Metrics) SetBestEnergy(energy int64) {
	if m == nil {
		return
	}
	m.BestEnergy.Set(float64(energy))
}
