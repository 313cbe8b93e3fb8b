package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// configTemplate is the sample configuration written by `fbwire init`.
const configTemplate = `# fbwire Configuration File
#
# Any value here can be overridden with an FBWIRE_* environment variable,
# for example FBWIRE_AUTH_PASSWORD or FBWIRE_LOGGING_LEVEL.

logging:
  level: "INFO"       # DEBUG, INFO, WARN, ERROR
  format: "text"      # text, json
  output: "stdout"    # stdout, stderr, or a file path

server:
  host: "localhost"
  port: 3050

# Attachment path on the server, or "service_mgr" for the service manager.
database: "employee"

auth:
  user: "SYSDBA"
  # password: set FBWIRE_AUTH_PASSWORD instead of writing it here
  plugins: ["Srp256", "Srp", "Legacy_Auth"]

# Transport encryption policy: disabled, enabled, required
wire_crypt: "enabled"
crypt_plugins: ["ChaCha", "Arc4"]

charset: "UTF8"
connect_timeout: "10s"

metrics:
  enabled: false
  port: 9090
`

// InitConfig creates a sample configuration file at the default location.
// Returns the path written. Refuses to overwrite unless force is set.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath creates a sample configuration file at the given path.
// Refuses to overwrite unless force is set.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Restricted permissions, the file may later carry a password.
	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
