package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MarketplaceMetrics records matching and assignment activity.
type MarketplaceMetrics struct {
	matchDuration   *prometheus.HistogramVec
	candidatesFound *prometheus.HistogramVec
	assignments     *prometheus.CounterVec
	jobTransitions  *prometheus.CounterVec
}

// NewMarketplaceMetrics registers the marketplace metrics on the provided registerer.
func NewMarketplaceMetrics(reg prometheus.Registerer) *MarketplaceMetrics {
	if reg == nil {
		return &MarketplaceMetrics{}
	}
	matchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "matching_duration_seconds",
		Help:    "Duration of matching runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"direction"})
	candidatesFound := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "matching_candidates",
		Help:    "Candidates returned per matching run.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
	}, []string{"direction"})
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignments_total",
		Help: "Assignment operations by kind and outcome.",
	}, []string{"kind", "outcome"})
	jobTransitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_status_transitions_total",
		Help: "Job status transitions by target status.",
	}, []string{"to"})
	reg.MustRegister(matchDuration, candidatesFound, assignments, jobTransitions)
	return &MarketplaceMetrics{
		matchDuration:   matchDuration,
		candidatesFound: candidatesFound,
		assignments:     assignments,
		jobTransitions:  jobTransitions,
	}
}

// ObserveMatch records one matching run for the given direction.
func (m *MarketplaceMetrics) ObserveMatch(direction string, duration time.Duration, candidates int) {
	if m == nil || m.matchDuration == nil {
		return
	}
	label := normalizeLabel(direction)
	m.matchDuration.WithLabelValues(label).Observe(duration.Seconds())
	m.candidatesFound.WithLabelValues(label).Observe(float64(candidates))
}

// IncAssignment counts one assignment operation.
func (m *MarketplaceMetrics) IncAssignment(kind, outcome string) {
	if m == nil || m.assignments == nil {
		return
	}
	m.assignments.WithLabelValues(normalizeLabel(kind), normalizeLabel(outcome)).Inc()
}

// IncJobTransition counts one job status transition.
func (m *MarketplaceMetrics) IncJobTransition(to string) {
	if m == nil || m.jobTransitions == nil {
		return
	}
	m.jobTransitions.WithLabelValues(normalizeLabel(to)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
