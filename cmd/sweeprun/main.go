package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sweeplab/sweeprun/internal/logging"
)

var (
	// Version information (set via ldflags at build time)
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global logger
	logger *slog.Logger
)

func main() {
	logger = logging.New("info")
	slog.SetDefault(logger)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sweeprun",
	Short: "Query experiment run collections and expand parameter sweeps",
	Long: `Sweeprun manages large collections of experiment run records.

It queries, filters, groups, and tabulates runs by arbitrary nested
configuration or metadata fields, and expands compact sweep specifications
(ranges, engineering-unit values, alternations) into the concrete override
batches submitted as individual runs.

Features:
  - Attribute queries over nested run configuration and metadata
  - Range notation with engineering suffixes (1:3:k -> 1e3,2e3,3e3)
  - Cartesian batch expansion for sweep jobs
  - Persistent run index (bbolt or JSON)
  - Interactive run browser`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		if debug {
			logger = logging.New("debug")
			slog.SetDefault(logger)
		}
	}

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(tuiCmd)
}

// applyLogging reconfigures the global logger from a loaded configuration.
// The --debug flag keeps precedence over the configured level.
func applyLogging(format, level, output string) {
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		level = "debug"
	}
	l, err := logging.NewFromConfig(format, level, output)
	if err != nil {
		logger.Warn("failed to configure logging", "error", err)
		return
	}
	logger = l
	slog.SetDefault(logger)
}
