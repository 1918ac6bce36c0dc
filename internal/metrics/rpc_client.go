// Package metrics provides the Prometheus collectors of the submitter.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/txsubmitter/internal/model"
)

const namespace = "txsubmitter"

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "requests_total",
		Help:      "Count of wallet node RPC calls.",
	}, []string{"method", "network", "status"})
	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "request_duration_seconds",
		Help:      "Duration of wallet node RPC calls, retries included.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "network", "status"})
)

// RPCClient tracks metrics for calls to the wallet node.
type RPCClient struct {
	network model.Network
}

func NewRPCClient(network model.Network) *RPCClient {
	if network == "" {
		network = "unknown"
	}
	return &RPCClient{network: network}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(method string, err error, started time.Time) {
	status := statusOf(err)
	rpcRequestsTotal.WithLabelValues(method, string(m.network), status).Inc()
	rpcRequestDuration.WithLabelValues(method, string(m.network), status).Observe(time.Since(started).Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
