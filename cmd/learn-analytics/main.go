package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:           "learn-analytics",
		Short:         "Personal learning analytics and adaptive review scheduling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debug)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(
		newIngestCommand(),
		newAnalyzeCommand(),
		newReviewsCommand(),
		newRecommendCommand(),
		newGuidanceCommand(),
		newReportCommand(),
		newProfileCommand(),
	)

	return cmd
}

func setupLogger(debugMode bool) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
