package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight dispatch observability without external
// dependencies. All operations are atomic so readers never block the
// dispatch path.
type Metrics struct {
	actionsProcessed atomic.Uint64
	errorsTotal      atomic.Uint64

	latencySumNs atomic.Int64
	latencyCount atomic.Uint64

	activeClients atomic.Int32
}

// NewMetrics returns an empty metrics sink
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordAction records one dispatched action with its propagation latency
func (m *Metrics) RecordAction(latencyNs int64) {
	m.actionsProcessed.Add(1)
	m.latencySumNs.Add(latencyNs)
	m.latencyCount.Add(1)
}

// RecordError records an error occurrence
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

// ClientConnected increments the connected view client gauge
func (m *Metrics) ClientConnected() {
	m.activeClients.Add(1)
}

// ClientDisconnected decrements the connected view client gauge
func (m *Metrics) ClientDisconnected() {
	m.activeClients.Add(-1)
}

// ActionsProcessed returns the total number of dispatched actions
func (m *Metrics) ActionsProcessed() uint64 {
	return m.actionsProcessed.Load()
}

// ErrorsTotal returns the total number of recorded errors
func (m *Metrics) ErrorsTotal() uint64 {
	return m.errorsTotal.Load()
}

// ActiveClients returns the number of currently connected view clients
func (m *Metrics) ActiveClients() int32 {
	return m.activeClients.Load()
}

// AvgLatency returns the mean propagation latency of all dispatched actions
func (m *Metrics) AvgLatency() time.Duration {
	count := m.latencyCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(m.latencySumNs.Load() / int64(count))
}
