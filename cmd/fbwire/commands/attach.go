package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rcastelli/fbwire/internal/cli/output"
	"github.com/rcastelli/fbwire/internal/wire"
	"github.com/rcastelli/fbwire/internal/wire/proto"
	"github.com/rcastelli/fbwire/pkg/config"
	"github.com/spf13/cobra"
)

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Attach to the configured database and print server information",
	Long: `Attach to the configured database and print server information.

Performs a full attachment handshake, attaches to the configured database,
queries the server through op_info_database, and prints the result.

Examples:
  # Attach and print database information
  fbwire attach

  # Attach using a custom config file
  fbwire attach --config /etc/fbwire/config.yaml`,
	RunE: runAttach,
}

// attachInfoItems is the info request sent after a successful attach.
var attachInfoItems = []byte{
	proto.InfoFirebirdVersion,
	proto.InfoPageSize,
	proto.InfoODSVersion,
	proto.InfoODSMinorVersion,
	proto.InfoDBSQLDialect,
	proto.InfoAttachmentID,
	proto.InfoEnd,
}

func runAttach(cmd *cobra.Command, args []string) error {
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

	cn, err := wire.Dial(ctx, cfg.Server.Host, cfg.Server.Port, opts)
	if err != nil {
		return fmt.Errorf("handshake failed: %w", err)
	}
	defer cn.Close()

	start := time.Now()
	db, err := cn.Attach(ctx)
	if err != nil {
		return fmt.Errorf("attach failed: %w", err)
	}

	fmt.Printf("Attached to %s on %s:%d (%s)\n",
		cfg.Database, cfg.Server.Host, cfg.Server.Port,
		time.Since(start).Round(time.Millisecond))
	fmt.Printf("Protocol generation: %d\n", proto.Generation(cn.Descriptor().Version()))
	if enc, plugin := cn.Encrypted(); enc {
		fmt.Printf("Wire encryption: %s\n", plugin)
	} else {
		fmt.Println("Wire encryption: none")
	}

	raw, err := db.Info(attachInfoItems, 1024)
	if err != nil {
		return fmt.Errorf("info request failed: %w", err)
	}
	info, err := proto.ParseInfo(raw)
	if err != nil {
		return fmt.Errorf("info reply malformed: %w", err)
	}
	if err := printDatabaseInfo(info); err != nil {
		return err
	}

	if err := cn.Detach(); err != nil {
		return fmt.Errorf("detach failed: %w", err)
	}
	return nil
}

func printDatabaseInfo(info *proto.InfoResult) error {
	var pairs [][2]string
	if raw, ok := info.Get(proto.InfoFirebirdVersion); ok && len(raw) > 2 {
		// The version clump nests counted strings: a line count byte, then
		// per line a length byte and the text.
		data := raw[1:]
		label := "Server version"
		for len(data) > 1 {
			n := int(data[0])
			if n > len(data)-1 {
				break
			}
			pairs = append(pairs, [2]string{label, string(data[1 : 1+n])})
			label = ""
			data = data[1+n:]
		}
	}
	if v, ok := info.Int(proto.InfoPageSize); ok {
		pairs = append(pairs, [2]string{"Page size", strconv.FormatInt(int64(v), 10)})
	}
	if major, ok := info.Int(proto.InfoODSVersion); ok {
		ods := strconv.FormatInt(int64(major), 10)
		if minor, ok := info.Int(proto.InfoODSMinorVersion); ok {
			ods = fmt.Sprintf("%d.%d", major, minor)
		}
		pairs = append(pairs, [2]string{"ODS version", ods})
	}
	if v, ok := info.Int(proto.InfoDBSQLDialect); ok {
		pairs = append(pairs, [2]string{"SQL dialect", strconv.FormatInt(int64(v), 10)})
	}
	if v, ok := info.Int(proto.InfoAttachmentID); ok {
		pairs = append(pairs, [2]string{"Attachment id", strconv.FormatInt(int64(v), 10)})
	}
	if err := output.KeyValueTable(os.Stdout, pairs); err != nil {
		return err
	}
	if info.Truncated {
		fmt.Println("(info reply truncated)")
	}
	return nil
}
