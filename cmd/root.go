package cmd

import (
	"context"
	"log/slog"
	"os"
	"path"

	"github.com/mortem-dev/mortem/handler"
	"github.com/spf13/cobra"
)

var (
	configPath string
	opts       handler.GenerateOptions
)

var rootCmd = &cobra.Command{
	Use:   "mortem",
	Short: "mortem generates incident post-mortem documents",
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(); err != nil {
			slog.Error("Failed to run command", slog.Any("error", err))
			os.Exit(1)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Error("Failed to get user home directory", slog.Any("error", err))
		os.Exit(1)
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", path.Join(home, "mortem.toml"), "config file path")

	rootCmd.Flags().StringVar(&opts.Incident, "incident", "", "incident name/title")
	rootCmd.Flags().StringVar(&opts.Date, "date", "", "incident date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&opts.Duration, "duration", "", "duration of incident")
	rootCmd.Flags().StringVar(&opts.Impact, "impact", "", "impact description")
	rootCmd.Flags().StringVar(&opts.RootCause, "root-cause", "", "root cause analysis")
	rootCmd.Flags().StringVar(&opts.Timeline, "timeline", "", "timeline of events (file path or text)")
	rootCmd.Flags().StringVar(&opts.Resolution, "resolution", "", "resolution steps (file path or text)")
	rootCmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	rootCmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "interactive mode")
	rootCmd.Flags().BoolVar(&opts.Export, "export", false, "export the generated document to confluence")
	rootCmd.Flags().BoolVar(&opts.Announce, "announce", false, "announce the generated document to slack")
	rootCmd.Flags().BoolVar(&opts.AI, "ai", false, "draft blank prompted fields with AI")
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	return handler.Generate(ctx, configPath, opts)
}
