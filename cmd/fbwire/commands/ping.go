package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rcastelli/fbwire/internal/wire"
	"github.com/rcastelli/fbwire/internal/wire/proto"
	"github.com/rcastelli/fbwire/pkg/config"
	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check connectivity to the configured server",
	Long: `Check connectivity to the configured server.

Performs a full attachment handshake (protocol negotiation, authentication,
and wire encryption when negotiated), attaches to the configured database,
and sends an op_ping round trip on protocol generation 13 or later.

Examples:
  # Ping the configured server
  fbwire ping

  # Ping using a custom config file
  fbwire ping --config /etc/fbwire/config.yaml`,
	RunE: runPing,
}

func runPing(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	if err := InitLogger(cfg); err != nil {
		return err
	}

	opts, err := config.ConnectionOptions(cfg, InitMetrics(cfg))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	start := time.Now()
	cn, err := wire.Dial(ctx, cfg.Server.Host, cfg.Server.Port, opts)
	if err != nil {
		return fmt.Errorf("handshake failed: %w", err)
	}
	defer cn.Close()

	handshake := time.Since(start)
	generation := proto.Generation(cn.Descriptor().Version())
	fmt.Printf("Connected to %s:%d (protocol generation %d, %s)\n",
		cfg.Server.Host, cfg.Server.Port, generation, handshake.Round(time.Millisecond))
	if enc, plugin := cn.Encrypted(); enc {
		fmt.Printf("Wire encryption: %s\n", plugin)
	} else {
		fmt.Println("Wire encryption: none")
	}

	db, err := cn.Attach(ctx)
	if err != nil {
		return fmt.Errorf("attach failed: %w", err)
	}

	start = time.Now()
	switch err := db.Ping(); {
	case err == nil:
		fmt.Printf("Ping: ok (%s)\n", time.Since(start).Round(time.Millisecond))
	case errors.Is(err, proto.ErrNotSupported):
		fmt.Printf("Ping: not supported before generation 13 (negotiated %d)\n", generation)
	default:
		return fmt.Errorf("ping failed: %w", err)
	}

	if err := cn.Detach(); err != nil {
		return fmt.Errorf("detach failed: %w", err)
	}
	return nil
}
