package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. Struct tags drive the rules;
// cross-field checks that tags cannot express live in Validate itself.
var validate = validator.New()

// Validate checks the configuration for errors.
//
// Validation covers:
//   - Struct tag rules (required fields, oneof enumerations, port ranges)
//   - Plugin list sanity (no empty entries)
//
// Returns an error describing the first problem found, or nil.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if err := validate.Struct(cfg); err != nil {
		return err
	}

	for i, p := range cfg.Auth.Plugins {
		if p == "" {
			return fmt.Errorf("auth.plugins[%d]: plugin name cannot be empty", i)
		}
	}
	for i, p := range cfg.CryptPlugins {
		if p == "" {
			return fmt.Errorf("crypt_plugins[%d]: plugin name cannot be empty", i)
		}
	}

	return nil
}
