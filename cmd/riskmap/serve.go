package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lcalzada-xor/riskmap/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the assessment API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.New(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		slog.Info("riskmap starting", "addr", cfg.Addr)

		err = application.Run(ctx)
		application.Shutdown(context.Background())
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	rootCmd.AddCommand(serveCmd)
}
