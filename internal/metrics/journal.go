package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	journalOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "journal",
		Name:      "operations_total",
		Help:      "Count of submission journal operations.",
	}, []string{"operation", "backend", "status"})
	journalOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "journal",
		Name:      "operation_duration_seconds",
		Help:      "Duration of submission journal operations.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"operation", "backend", "status"})
)

// Journal tracks metrics for one journal backend.
type Journal struct {
	backend string
}

func NewJournal(backend string) *Journal {
	if backend == "" {
		backend = "unknown"
	}
	return &Journal{backend: backend}
}

// Observe records duration and status of a journal operation.
func (m Journal) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	journalOperationsTotal.WithLabelValues(operation, m.backend, status).Inc()
	journalOperationDuration.WithLabelValues(operation, m.backend, status).Observe(time.Since(started).Seconds())
}
