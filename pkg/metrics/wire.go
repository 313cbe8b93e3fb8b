package metrics

import (
	"time"
)

// WireMetrics provides observability for the wire-protocol layer.
//
// Implementations collect handshake outcomes, per-operation latency and raw
// byte throughput. The interface is optional - pass nil to disable metrics
// collection with zero overhead.
//
// Example usage:
//
//	metrics.InitRegistry()
//	wm := metrics.NewWireMetrics()
//	conn := wire.Connect(ctx, cfg, wm)
type WireMetrics interface {
	// RecordHandshake records a completed attachment handshake with the
	// negotiated protocol generation, its duration, and the outcome
	// ("attached", or the failure class such as "no_version" or "auth").
	RecordHandshake(generation int32, duration time.Duration, outcome string)

	// RecordOperation records a completed wire operation round trip.
	// errorCode is empty on success, otherwise a short failure class.
	RecordOperation(op string, duration time.Duration, errorCode string)

	// RecordBytesSent adds to the outbound byte counter.
	RecordBytesSent(n int)

	// RecordBytesReceived adds to the inbound byte counter.
	RecordBytesReceived(n int)

	// RecordEncryption records that transport encryption was enabled with
	// the named cipher plugin.
	RecordEncryption(plugin string)
}

// NewWireMetrics creates a Prometheus-backed WireMetrics instance, or nil
// when metrics are disabled (InitRegistry not called).
func NewWireMetrics() WireMetrics {
	if !IsEnabled() || newPrometheusWireMetrics == nil {
		return nil
	}
	return newPrometheusWireMetrics()
}

// newPrometheusWireMetrics is installed by the prometheus subpackage during
// package initialization; the indirection avoids an import cycle.
var newPrometheusWireMetrics func() WireMetrics

// RegisterWireMetricsConstructor registers the Prometheus wire metrics
// constructor. Called by pkg/metrics/prometheus during init.
func RegisterWireMetricsConstructor(constructor func() WireMetrics) {
	newPrometheusWireMetrics = constructor
}
