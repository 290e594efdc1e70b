package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sweeplab/sweeprun/internal/config"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List configured sweep jobs",
	Long: `List the jobs defined in the configuration file, with the number of
steps, the expanded invocation count, and for scheduled jobs the next
submission time.`,
	RunE: runJobs,
}

func init() {
	jobsCmd.Flags().StringP("config", "c", "sweeprun.yaml", "Path to configuration file")
}

func runJobs(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(cfg.Jobs) == 0 {
		fmt.Fprintln(os.Stdout, "No jobs configured")
		return nil
	}

	now := time.Now()
	for i := range cfg.Jobs {
		jobCfg := &cfg.Jobs[i]

		invocations := "?"
		job := buildSweepJob(jobCfg)
		if batches, err := job.IterBatches(); err == nil {
			invocations = fmt.Sprintf("%d", len(batches))
		} else {
			logger.Warn("failed to expand job", "job", jobCfg.Name, "error", err)
		}

		fmt.Fprintf(os.Stdout, "%s\n", jobCfg.Name)
		fmt.Fprintf(os.Stdout, "  steps:       %d\n", len(jobCfg.Steps))
		fmt.Fprintf(os.Stdout, "  invocations: %s\n", invocations)
		if jobCfg.Run != "" {
			fmt.Fprintf(os.Stdout, "  run:         %s\n", jobCfg.Run)
		}
		if jobCfg.Schedule != "" {
			fmt.Fprintf(os.Stdout, "  schedule:    %s", jobCfg.Schedule)
			if sched, err := config.ParseSchedule(jobCfg.Schedule); err == nil {
				fmt.Fprintf(os.Stdout, " (next: %s)", sched.Next(now).Format(time.RFC3339))
			}
			fmt.Fprintln(os.Stdout)
		}
	}
	return nil
}
