package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/stockroom/internal/mcp"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the inventory as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd)
		},
	}
}

func (a *app) runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inv, err := a.openInventory(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := inv.Close(); err != nil {
			a.log.Error("failed to close inventory", "error", err)
		}
	}()

	srv, err := mcp.NewServer(inv, a.log)
	if err != nil {
		return err
	}

	// Serve returns nil when the client closes stdin; cancel so the
	// watcher below exits and the inventory is closed.
	sctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(sctx)
	g.Go(func() error {
		defer cancel()
		return srv.Serve(gctx, cmd.InOrStdin(), cmd.OutOrStdout())
	})
	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			a.log.Info("shutdown signal received, stopping server")
		}
		return nil
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	a.log.Info("server stopped")
	return err
}
