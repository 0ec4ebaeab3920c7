package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/stockroom/internal/storage"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// version needs neither config nor logging
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Stockroom\n")
			_, _ = fmt.Fprintf(out, "Version: %s\n", version)
			_, _ = fmt.Fprintf(out, "Build Time: %s\n", buildTime)
			_, _ = fmt.Fprintf(out, "Build Mode: %s\n", storage.BuildMode)
			_, _ = fmt.Fprintf(out, "SQLite Driver: %s\n", storage.DriverName)
		},
	}
}
