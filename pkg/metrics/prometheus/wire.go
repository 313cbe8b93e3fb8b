// Package prometheus provides the Prometheus implementations of the metrics
// interfaces. Importing it for side effects registers the constructors with
// the interface layer:
//
//	import _ "github.com/rcastelli/fbwire/pkg/metrics/prometheus"
package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rcastelli/fbwire/pkg/metrics"
)

func init() {
	metrics.RegisterWireMetricsConstructor(newWireMetrics)
}

// wireMetrics is the Prometheus implementation of metrics.WireMetrics.
type wireMetrics struct {
	handshakes        *prometheus.CounterVec
	handshakeDuration *prometheus.HistogramVec
	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	bytesSent         prometheus.Counter
	bytesReceived     prometheus.Counter
	encryptedConns    *prometheus.CounterVec
}

func newWireMetrics() metrics.WireMetrics {
	reg := metrics.GetRegistry()
	if reg == nil {
		return nil
	}

	return &wireMetrics{
		handshakes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fbwire_handshakes_total",
				Help: "Total attachment handshakes by protocol generation and outcome",
			},
			[]string{"generation", "outcome"},
		),
		handshakeDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fbwire_handshake_duration_seconds",
				Help:    "Attachment handshake duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"outcome"},
		),
		operations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fbwire_operations_total",
				Help: "Total wire operation round trips by operation and error class",
			},
			[]string{"op", "error"},
		),
		operationDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fbwire_operation_duration_seconds",
				Help:    "Wire operation round trip duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"op"},
		),
		bytesSent: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "fbwire_bytes_sent_total",
				Help: "Total bytes written to the transport",
			},
		),
		bytesReceived: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "fbwire_bytes_received_total",
				Help: "Total bytes read from the transport",
			},
		),
		encryptedConns: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fbwire_encrypted_connections_total",
				Help: "Connections that enabled transport encryption, by cipher plugin",
			},
			[]string{"plugin"},
		),
	}
}

func (m *wireMetrics) RecordHandshake(generation int32, duration time.Duration, outcome string) {
	m.handshakes.WithLabelValues(strconv.Itoa(int(generation)), outcome).Inc()
	m.handshakeDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *wireMetrics) RecordOperation(op string, duration time.Duration, errorCode string) {
	m.operations.WithLabelValues(op, errorCode).Inc()
	m.operationDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func (m *wireMetrics) RecordBytesSent(n int) {
	m.bytesSent.Add(float64(n))
}

func (m *wireMetrics) RecordBytesReceived(n int) {
	m.bytesReceived.Add(float64(n))
}

func (m *wireMetrics) RecordEncryption(plugin string) {
	m.encryptedConns.WithLabelValues(plugin).Inc()
}
