package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/mortem-dev/mortem/handler"
	"github.com/spf13/cobra"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve the web form and the generation API",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := handler.Serve(ctx, configPath, listenAddr); err != nil {
			slog.Error("Failed to run server", slog.Any("error", err))
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address, overrides the configured one")
	rootCmd.AddCommand(serveCmd)
}
