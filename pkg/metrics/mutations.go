package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MutationMetrics records outcomes for cart mutation submissions and
// newsletter handoffs.
type MutationMetrics struct {
	duration *prometheus.HistogramVec
	settled  *prometheus.CounterVec
	failed   *prometheus.CounterVec
}

// NewMutationMetrics registers the mutation metrics on the provided registerer.
func NewMutationMetrics(reg prometheus.Registerer) *MutationMetrics {
	if reg == nil {
		return &MutationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mutation_duration_seconds",
		Help:    "Duration of cart mutation submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})
	settled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mutation_settled",
		Help: "Mutation submissions that settled successfully.",
	}, []string{"action"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mutation_failed",
		Help: "Mutation submissions that settled with an error.",
	}, []string{"action"})
	reg.MustRegister(duration, settled, failed)
	return &MutationMetrics{
		duration: duration,
		settled:  settled,
		failed:   failed,
	}
}

// ObserveDuration records the submission duration for the named action.
func (m *MutationMetrics) ObserveDuration(action string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(action)).Observe(duration.Seconds())
}

// IncSettled increments the settled counter for the named action.
func (m *MutationMetrics) IncSettled(action string) {
	if m == nil || m.settled == nil {
		return
	}
	m.settled.WithLabelValues(normalizeLabel(action)).Inc()
}

// IncFailed increments the failure counter for the named action.
func (m *MutationMetrics) IncFailed(action string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(action)).Inc()
}

func normalizeLabel(action string) string {
	if action == "" {
		return "unknown"
	}
	return action
}
