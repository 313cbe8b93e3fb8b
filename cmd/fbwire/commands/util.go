package commands

import (
	"fmt"

	"github.com/rcastelli/fbwire/internal/logger"
	"github.com/rcastelli/fbwire/pkg/config"
	"github.com/rcastelli/fbwire/pkg/metrics"

	// Register the Prometheus wire metrics constructor.
	_ "github.com/rcastelli/fbwire/pkg/metrics/prometheus"
)

// InitLogger initializes the structured logger from configuration.
func InitLogger(cfg *config.Config) error {
	loggerCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if err := logger.Init(loggerCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// InitMetrics returns wire metrics when enabled in configuration, nil
// otherwise.
func InitMetrics(cfg *config.Config) metrics.WireMetrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	metrics.InitRegistry()
	return metrics.NewWireMetrics()
}
