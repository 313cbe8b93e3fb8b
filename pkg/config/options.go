package config

import (
	"fmt"

	"github.com/rcastelli/fbwire/internal/wire"
	"github.com/rcastelli/fbwire/internal/wire/proto"
	"github.com/rcastelli/fbwire/pkg/metrics"
)

// ConnectionOptions converts the loaded configuration into the wire layer's
// connection options. The metrics collector is passed in by the caller so
// command-line tools can decide whether the registry is initialized.
func ConnectionOptions(cfg *Config, m metrics.WireMetrics) (wire.Options, error) {
	crypt, err := parseWireCrypt(cfg.WireCrypt)
	if err != nil {
		return wire.Options{}, err
	}

	return wire.Options{
		Database:       cfg.Database,
		User:           cfg.Auth.User,
		Password:       cfg.Auth.Password,
		Role:           cfg.Auth.Role,
		AuthPlugins:    cfg.Auth.Plugins,
		WireCrypt:      &crypt,
		CryptPlugins:   cfg.CryptPlugins,
		Charset:        cfg.Charset,
		ConnectTimeout: cfg.ConnectTimeout,
		Metrics:        m,
	}, nil
}

// parseWireCrypt maps the configuration policy string to the wire level.
func parseWireCrypt(policy string) (int32, error) {
	switch policy {
	case "disabled":
		return proto.WireCryptDisabled, nil
	case "", "enabled":
		return proto.WireCryptEnabled, nil
	case "required":
		return proto.WireCryptRequired, nil
	default:
		return 0, fmt.Errorf("invalid wire_crypt policy %q (want disabled, enabled or required)", policy)
	}
}
