package server

import (
	"sync/atomic"
	"time"
)

// Metrics holds runtime counters for a Server. Every field is safe to
// update from concurrent connection goroutines.
type Metrics struct {
	// ConnectionsTotal counts accepted connections, including ones
	// that were dropped before a response.
	ConnectionsTotal  atomic.Int64
	ActiveConnections atomic.Int64

	// RequestsTotal counts requests that produced a response.
	RequestsTotal     atomic.Int64
	MalformedRequests atomic.Int64

	RouteHits  atomic.Int64
	StaticHits atomic.Int64
	NotFound   atomic.Int64

	BytesWritten   atomic.Int64
	TotalLatencyNs atomic.Int64
}

// NewMetrics returns zeroed counters.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordRequest notes one answered request and how long the connection
// took from accept to written response.
func (m *Metrics) RecordRequest(duration time.Duration) {
	m.RequestsTotal.Add(1)
	m.TotalLatencyNs.Add(duration.Nanoseconds())
}

// AverageLatency returns the mean time across recorded requests.
func (m *Metrics) AverageLatency() time.Duration {
	total := m.RequestsTotal.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.TotalLatencyNs.Load() / total)
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	ConnectionsTotal  int64
	ActiveConnections int64
	RequestsTotal     int64
	MalformedRequests int64
	RouteHits         int64
	StaticHits        int64
	NotFound          int64
	BytesWritten      int64
	AverageLatency    time.Duration
}

// Snapshot copies the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		ConnectionsTotal:  m.ConnectionsTotal.Load(),
		ActiveConnections: m.ActiveConnections.Load(),
		RequestsTotal:     m.RequestsTotal.Load(),
		MalformedRequests: m.MalformedRequests.Load(),
		RouteHits:         m.RouteHits.Load(),
		StaticHits:        m.StaticHits.Load(),
		NotFound:          m.NotFound.Load(),
		BytesWritten:      m.BytesWritten.Load(),
		AverageLatency:    m.AverageLatency(),
	}
}
