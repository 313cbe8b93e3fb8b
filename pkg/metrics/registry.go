// Package metrics defines the observability interfaces for the wire layer.
//
// Metrics are optional: every interface accepts nil to disable collection
// with zero overhead. The Prometheus implementations live in the prometheus
// subpackage and register themselves through constructor indirection, which
// keeps this package free of a hard dependency on a specific backend in the
// interface layer.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	mu       sync.Mutex
	registry *prometheus.Registry
)

// InitRegistry creates the process-wide metrics registry. Call once at
// startup before constructing any metrics; until then all constructors
// return nil and collection is disabled.
func InitRegistry() {
	mu.Lock()
	defer mu.Unlock()
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return registry != nil
}

// GetRegistry returns the process-wide registry, or nil when metrics are
// disabled.
func GetRegistry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	return registry
}
