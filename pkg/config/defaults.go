package config

import (
	"strings"
	"time"
)

// Default connection parameters.
const (
	DefaultPort           = 3050
	DefaultCharset        = "UTF8"
	DefaultWireCrypt      = "enabled"
	DefaultConnectTimeout = 10 * time.Second
)

// DefaultAuthPlugins is the authentication plugin preference order used when
// the configuration does not override it.
var DefaultAuthPlugins = []string{"Srp256", "Srp", "Legacy_Auth"}

// DefaultCryptPlugins is the transport cipher preference order.
var DefaultCryptPlugins = []string{"ChaCha", "Arc4"}

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// This function is called after loading configuration from file and environment
// variables to fill in any missing values with sensible defaults.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyServerDefaults(&cfg.Server)
	applyAuthDefaults(&cfg.Auth)
	applyWireDefaults(cfg)
	applyMetricsDefaults(&cfg.Metrics)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyServerDefaults sets server endpoint defaults.
func applyServerDefaults(cfg *ServerConfig) {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
}

// applyAuthDefaults sets authentication defaults.
func applyAuthDefaults(cfg *AuthConfig) {
	if len(cfg.Plugins) == 0 {
		cfg.Plugins = append([]string(nil), DefaultAuthPlugins...)
	}
}

// applyWireDefaults sets wire protocol defaults.
func applyWireDefaults(cfg *Config) {
	if cfg.WireCrypt == "" {
		cfg.WireCrypt = DefaultWireCrypt
	}
	cfg.WireCrypt = strings.ToLower(cfg.WireCrypt)

	if len(cfg.CryptPlugins) == 0 {
		cfg.CryptPlugins = append([]string(nil), DefaultCryptPlugins...)
	}
	if cfg.Charset == "" {
		cfg.Charset = DefaultCharset
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
}

// applyMetricsDefaults sets metrics defaults.
func applyMetricsDefaults(cfg *MetricsConfig) {
	// Enabled defaults to false (opt-in for metrics)
	// Port defaults to 9090 if metrics are enabled
	if cfg.Enabled && cfg.Port == 0 {
		cfg.Port = 9090
	}
}

// GetDefaultConfig returns a Config struct with all default values applied.
//
// This is useful for:
//   - Generating sample configuration files
//   - Testing
//   - Documentation
func GetDefaultConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host: "localhost",
		},
		Database: "employee",
		Auth: AuthConfig{
			User: "SYSDBA",
		},
	}

	ApplyDefaults(cfg)
	return cfg
}
