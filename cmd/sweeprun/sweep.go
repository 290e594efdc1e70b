package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sweeplab/sweeprun/internal/config"
	"github.com/sweeplab/sweeprun/internal/sweep"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <job>",
	Short: "Expand a job's sweep specification into concrete invocations",
	Long: `Expand the named job's steps into the full list of invocation argument
lists and print them, one invocation per line.

Batch assignments support range notation (start:stop[:step]), engineering
suffixes (k, M, G, m, u, n, ...), comma lists, parenthesised groups, and
pipe alternation. Each printed invocation starts with the job's base
command followed by a unique sweep directory and the job name.

Example:
  sweeprun sweep train --config ./sweeprun.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringP("config", "c", "sweeprun.yaml", "Path to configuration file")
}

func runSweep(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyLogging(cfg.Logging.Format, cfg.Logging.Level, cfg.Logging.Output)

	jobCfg, err := findJob(cfg, args[0])
	if err != nil {
		return err
	}

	job := buildSweepJob(jobCfg)
	batches, err := job.IterBatches()
	if err != nil {
		return fmt.Errorf("failed to expand job %q: %w", job.Name, err)
	}

	logger.Debug("job expanded", "job", job.Name, "invocations", len(batches))

	for _, batch := range batches {
		line := strings.Join(batch, " ")
		if jobCfg.Run != "" {
			line = jobCfg.Run + " " + line
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}

func findJob(cfg *config.Config, name string) (*config.Job, error) {
	for i := range cfg.Jobs {
		if cfg.Jobs[i].Name == name {
			return &cfg.Jobs[i], nil
		}
	}
	return nil, fmt.Errorf("job %q not found in configuration", name)
}

// buildSweepJob converts a configured job into its sweep representation.
func buildSweepJob(jobCfg *config.Job) *sweep.Job {
	steps := make([]sweep.Step, len(jobCfg.Steps))
	for i, s := range jobCfg.Steps {
		steps[i] = sweep.Step{
			Name:    fmt.Sprintf("%s[%d]", jobCfg.Name, i),
			Args:    s.Args,
			Batch:   s.Batch,
			Options: s.Options,
		}
	}
	return &sweep.Job{Name: jobCfg.Name, Steps: steps}
}
