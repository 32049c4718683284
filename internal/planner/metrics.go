package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeSuccess    = "success"
	OutcomeInvalid    = "invalid_input"
	OutcomeBusy       = "in_progress"
	OutcomeFailed     = "generation_error"
	OutcomeMalformed  = "malformed_response"
	OutcomeStoreError = "store_error"
)

// Metrics holds the planner's prometheus collectors.
type Metrics struct {
	generations *prometheus.CounterVec
	swaps       *prometheus.CounterVec
	warnings    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which keeps tests isolated.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		generations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutrigenius",
			Name:      "plan_generations_total",
			Help:      "Meal plan generation attempts by outcome.",
		}, []string{"outcome"}),
		swaps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutrigenius",
			Name:      "food_swaps_total",
			Help:      "Food swap suggestions by outcome.",
		}, []string{"outcome"}),
		warnings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutrigenius",
			Name:      "validation_warnings_total",
			Help:      "Non-fatal findings on generated plans by kind.",
		}, []string{"kind"}),
	}
}

func (m *Metrics) generation(outcome string) {
	m.generations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) swap(outcome string) {
	m.swaps.WithLabelValues(outcome).Inc()
}

func (m *Metrics) report(r *Report) {
	if r.DayCountMismatch() {
		m.warnings.WithLabelValues("day_count").Inc()
	}
	m.warnings.WithLabelValues("title_mismatch").Add(float64(len(r.TitleMismatches)))
	m.warnings.WithLabelValues("incomplete_item").Add(float64(len(r.IncompleteItems)))
	m.warnings.WithLabelValues("nutrition_format").Add(float64(len(r.FormatWarnings)))
}

// outcomeFor maps a gateway or validation error to its outcome label.
func outcomeFor(err error) string {
	switch {
	case IsFatalStructure(err):
		return OutcomeMalformed
	case IsGeneration(err):
		return OutcomeFailed
	case IsValidation(err):
		return OutcomeInvalid
	default:
		return OutcomeFailed
	}
}
