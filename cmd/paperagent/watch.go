// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amonso/paperagent/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the inbox directory and process new PDFs as they arrive",
	Long: `Watch monitors the inbox directory for newly dropped PDF files. Each
stable file runs through the full pipeline; per-file failures are logged and
the watcher keeps running. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		w := watch.NewWatcher(a.cfg.Watch, func(ctx context.Context, path string) error {
			return runDocument(ctx, a, path)
		}, a.log)

		err = w.Run(ctx)
		if errors.Is(err, context.Canceled) {
			a.log.Info("stopping watcher")
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
