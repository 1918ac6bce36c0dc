package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/txsubmitter/internal/model"
	"github.com/goodnatureofminers/txsubmitter/internal/txbuilder"
)

var (
	stageTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "transfer",
		Name:      "stage_total",
		Help:      "Count of pipeline stage executions.",
	}, []string{"stage", "network", "status"})
	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "transfer",
		Name:      "stage_duration_seconds",
		Help:      "Duration of pipeline stages.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage", "network", "status"})
	stageFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "transfer",
		Name:      "stage_failures_total",
		Help:      "Count of pipeline stage failures by reason.",
	}, []string{"stage", "network", "reason"})
	transfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "transfer",
		Name:      "transfers_total",
		Help:      "Count of transfers by outcome.",
	}, []string{"network", "outcome"})
	transferDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "transfer",
		Name:      "transfer_duration_seconds",
		Help:      "End to end duration of transfers.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"network", "outcome"})
)

// Transfer tracks the submission pipeline.
type Transfer struct {
	network model.Network
}

func NewTransfer(network model.Network) *Transfer {
	if network == "" {
		network = "unknown"
	}
	return &Transfer{network: network}
}

// ObserveStage records one pipeline stage. Failures are also counted by reason.
func (m Transfer) ObserveStage(stage txbuilder.Stage, err error, started time.Time) {
	status := statusOf(err)
	stageTotal.WithLabelValues(string(stage), string(m.network), status).Inc()
	stageDuration.WithLabelValues(string(stage), string(m.network), status).Observe(time.Since(started).Seconds())
	if err == nil {
		return
	}
	reason := "unknown"
	if _, r, ok := txbuilder.StageOf(err); ok && r != "" {
		reason = string(r)
	}
	stageFailuresTotal.WithLabelValues(string(stage), string(m.network), reason).Inc()
}

// ObserveTransfer records the outcome of a whole transfer.
func (m Transfer) ObserveTransfer(outcome string, started time.Time) {
	transfersTotal.WithLabelValues(string(m.network), outcome).Inc()
	transferDuration.WithLabelValues(string(m.network), outcome).Observe(time.Since(started).Seconds())
}
