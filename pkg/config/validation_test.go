package config

import (
	"strings"
	"testing"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	err := Validate(cfg)
	if err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "INVALID"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("Expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_InvalidLogFormat(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Format = "xml"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log format")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Server.Port = 70000 // Out of range

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for port out of range")
	}
	if !strings.Contains(err.Error(), "max") {
		t.Errorf("Expected 'max' validation error, got: %v", err)
	}
}

func TestValidate_NegativePort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Server.Port = -1

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for negative port")
	}
}

func TestValidate_MissingHost(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Server.Host = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for missing host")
	}
	errStr := strings.ToLower(err.Error())
	if !strings.Contains(errStr, "host") {
		t.Errorf("Expected error about host, got: %v", err)
	}
}

func TestValidate_MissingDatabase(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Database = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for missing database")
	}
}

func TestValidate_MissingUser(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Auth.User = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for missing user")
	}
}

func TestValidate_InvalidWireCrypt(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.WireCrypt = "maybe"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid wire_crypt policy")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("Expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_EmptyPluginEntry(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Auth.Plugins = []string{"Srp", ""}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for empty plugin entry")
	}
	if !strings.Contains(err.Error(), "plugin") {
		t.Errorf("Expected error about plugin name, got: %v", err)
	}
}

func TestValidate_LogLevelNormalization(t *testing.T) {
	// Test that validation accepts both uppercase and lowercase log levels
	testCases := []string{"info", "INFO", "debug", "DEBUG", "warn", "WARN", "error", "ERROR"}

	for _, level := range testCases {
		cfg := GetDefaultConfig()
		cfg.Logging.Level = level

		err := Validate(cfg)
		if err != nil {
			t.Errorf("Validation failed for level %q: %v", level, err)
		}

		// Validation should NOT normalize - level should remain as-is
		if cfg.Logging.Level != level {
			t.Errorf("Expected level to remain %q after validation, got %q", level, cfg.Logging.Level)
		}
	}

	// Test that normalization happens in ApplyDefaults
	cfg := &Config{Logging: LoggingConfig{Level: "info"}}
	ApplyDefaults(cfg)
	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected ApplyDefaults to normalize 'info' to 'INFO', got %q", cfg.Logging.Level)
	}
}
