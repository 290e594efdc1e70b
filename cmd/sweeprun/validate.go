package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sweeplab/sweeprun/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check that the configuration file parses, that job names are unique,
that every job has steps, that schedules are valid cron expressions, and
that every step's sweep specification expands cleanly.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringP("config", "c", "sweeprun.yaml", "Path to configuration file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	if _, err := os.Stat(configPath); err != nil {
		return fmt.Errorf("config file not found: %s", configPath)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	total := 0
	for i := range cfg.Jobs {
		job := buildSweepJob(&cfg.Jobs[i])
		batches, err := job.IterBatches()
		if err != nil {
			return fmt.Errorf("job %q: %w", job.Name, err)
		}
		total += len(batches)
	}

	fmt.Fprintf(os.Stdout, "✓ Configuration is valid: %s\n", configPath)
	fmt.Fprintf(os.Stdout, "  tracking root: %s\n", cfg.Tracking.Dir)
	fmt.Fprintf(os.Stdout, "  store:         %s (%s)\n", cfg.Store.Path, cfg.Store.Driver)
	fmt.Fprintf(os.Stdout, "  jobs:          %d (%d invocations)\n", len(cfg.Jobs), total)
	return nil
}
