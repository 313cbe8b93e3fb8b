package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/rcastelli/fbwire/internal/cli/prompt"
	"github.com/rcastelli/fbwire/pkg/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample fbwire configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/fbwire/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  fbwire init

  # Initialize with custom path
  fbwire init --config /etc/fbwire/config.yaml

  # Force overwrite existing config
  fbwire init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	overwrite := initForce
	if _, err := os.Stat(configPath); err == nil {
		ok, err := prompt.ConfirmOverwrite(
			fmt.Sprintf("Configuration file %s exists, overwrite", configPath), initForce)
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				return nil
			}
			return err
		}
		if !ok {
			fmt.Println("Keeping the existing configuration file.")
			return nil
		}
		overwrite = true
	}

	if err := config.InitConfigToPath(configPath, overwrite); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to point at your server")
	fmt.Println("  2. Set the password: export FBWIRE_AUTH_PASSWORD=...")
	fmt.Println("  3. Check connectivity with: fbwire ping")

	return nil
}
