package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/stockroom/internal/menu"
)

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive text menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMenu(cmd)
		},
	}
}

func (a *app) runMenu(cmd *cobra.Command) error {
	ctx := cmd.Context()

	inv, err := a.openInventory(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := inv.Close(); err != nil {
			a.log.Error("failed to close inventory", "error", err)
		}
	}()

	return menu.New(inv, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
}
