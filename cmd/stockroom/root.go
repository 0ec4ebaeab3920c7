package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/stockroom/internal/config"
	"github.com/dshills/stockroom/internal/inventory"
	"github.com/dshills/stockroom/internal/logging"
	"github.com/dshills/stockroom/internal/storage"
)

// app carries what every subcommand needs once flags are parsed
type app struct {
	v   *viper.Viper
	cfg *config.Config
	log *slog.Logger
}

// newRootCmd builds the command tree. Running the binary without a
// subcommand starts the interactive menu.
func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "stockroom",
		Short:         "Inventory manager backed by SQLite",
		Long:          `Track named items with a quantity and a price. Items live in a SQLite table and are served from an in-memory index.`,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMenu(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("db", config.DefaultDBPath, "path to the SQLite database file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")

	_ = a.v.BindPFlag(config.KeyDBPath, flags.Lookup("db"))
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	root.AddCommand(
		newMenuCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

// load resolves configuration and builds the logger. Logs always go to
// stderr because stdout carries the menu or the MCP protocol.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(cfg, cmd.ErrOrStderr())
	return nil
}

// openInventory opens the store at the configured path and loads it into memory.
func (a *app) openInventory(ctx context.Context) (*inventory.Inventory, error) {
	store, err := storage.NewSQLiteStorage(ctx, a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory database: %w", err)
	}

	inv, err := inventory.New(ctx, store, inventory.WithLogger(a.log))
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	a.log.InfoContext(ctx, "inventory loaded",
		"db", a.cfg.DBPath,
		"items", inv.Stats().Items,
		"driver", storage.DriverName,
	)
	return inv, nil
}
