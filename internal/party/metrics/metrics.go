package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the party module.
// Tracks write outcomes per variant and the duration of each operation.
type Metrics struct {
	PartiesCreated    *prometheus.CounterVec
	PartiesUpdated    *prometheus.CounterVec
	PartiesDeleted    *prometheus.CounterVec
	EmailConflicts    *prometheus.CounterVec
	ValidationFailure *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

// New registers the party metrics with reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		PartiesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "partyhub_parties_created_total",
			Help: "Total number of parties created",
		}, []string{"kind"}),
		PartiesUpdated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "partyhub_parties_updated_total",
			Help: "Total number of successful party updates",
		}, []string{"kind"}),
		PartiesDeleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "partyhub_parties_deleted_total",
			Help: "Total number of parties deleted",
		}, []string{"kind"}),
		EmailConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "partyhub_email_conflicts_total",
			Help: "Writes rejected because a contact email is owned by another party",
		}, []string{"kind", "source"}),
		ValidationFailure: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "partyhub_validation_failures_total",
			Help: "Payloads rejected by field validation",
		}, []string{"kind", "mode"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "partyhub_operation_duration_seconds",
			Help:    "Duration of party operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"kind", "operation"}),
	}
}

func (m *Metrics) IncrementCreated(kind string) {
	m.PartiesCreated.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementUpdated(kind string) {
	m.PartiesUpdated.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementDeleted(kind string) {
	m.PartiesDeleted.WithLabelValues(kind).Inc()
}

// IncrementConflict records a rejected email. source is "precheck" or
// "constraint".
func (m *Metrics) IncrementConflict(kind, source string) {
	m.EmailConflicts.WithLabelValues(kind, source).Inc()
}

func (m *Metrics) IncrementValidationFailure(kind, mode string) {
	m.ValidationFailure.WithLabelValues(kind, mode).Inc()
}

// ObserveOperation records the duration of an operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(kind, operation string, start time.Time) {
	m.OperationDuration.WithLabelValues(kind, operation).Observe(time.Since(start).Seconds())
}
