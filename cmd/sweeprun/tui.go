package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sweeplab/sweeprun/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse runs interactively",
	Long: `Open an interactive browser over the runs under the tracking root.
The list view shows run ID, job name, and any requested attribute
columns; enter opens a detail view with the run's flattened
configuration.`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringP("config", "c", "sweeprun.yaml", "Path to configuration file")
	tuiCmd.Flags().StringSlice("columns", nil, "Attribute keys to show as columns")
	tuiCmd.Flags().StringSlice("experiment", nil, "Experiment name patterns to include")
	tuiCmd.Flags().Int("jobs", 0, "Number of parallel workers for loading runs (0 = sequential)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	columns, _ := cmd.Flags().GetStringSlice("columns")
	experiments, _ := cmd.Flags().GetStringSlice("experiment")
	nJobs, _ := cmd.Flags().GetInt("jobs")

	collection, err := loadCollection(configPath, experiments, nJobs)
	if err != nil {
		return err
	}

	model := tui.New(collection, columns)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
