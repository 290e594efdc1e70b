package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sweeplab/sweeprun/internal/config"
	"github.com/sweeplab/sweeprun/internal/store"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the persistent run index",
	Long: `Scan the tracking root and write one index entry per run into the
configured store (bbolt or JSON). The entry carries the run's identity
and its flattened configuration so later queries can skip the rescan.

Use "index --show" to print the current index instead of rebuilding it.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringP("config", "c", "sweeprun.yaml", "Path to configuration file")
	indexCmd.Flags().Bool("show", false, "Print indexed entries instead of rebuilding")
	indexCmd.Flags().String("job", "", "Restrict --show output to one job")
	indexCmd.Flags().Int("limit", 50, "Maximum entries to print with --show")
	indexCmd.Flags().Int("jobs", 0, "Number of parallel workers for loading runs (0 = sequential)")
}

func runIndex(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	show, _ := cmd.Flags().GetBool("show")
	jobName, _ := cmd.Flags().GetString("job")
	limit, _ := cmd.Flags().GetInt("limit")
	nJobs, _ := cmd.Flags().GetInt("jobs")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyLogging(cfg.Logging.Format, cfg.Logging.Level, cfg.Logging.Output)

	st, err := store.NewStore(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	if show {
		return showIndex(st, jobName, limit)
	}

	collection, err := loadCollection(configPath, nil, nJobs)
	if err != nil {
		return err
	}

	now := time.Now()
	for i := 0; i < collection.Len(); i++ {
		r := collection.At(i)
		entry := &store.Entry{
			RunID:     r.Info.RunID(),
			JobName:   r.Info.JobName(),
			Dir:       r.Info.Dir,
			Params:    r.Config().Flatten(),
			IndexedAt: now,
		}
		if err := st.SaveEntry(entry); err != nil {
			return fmt.Errorf("failed to index run %s: %w", entry.RunID, err)
		}
	}

	logger.Info("run index rebuilt", "runs", collection.Len(), "store", cfg.Store.Path)
	fmt.Fprintf(os.Stdout, "Indexed %d runs into %s (%s)\n",
		collection.Len(), cfg.Store.Path, cfg.Store.Driver)
	return nil
}

func showIndex(st store.Store, jobName string, limit int) error {
	var entries []*store.Entry
	var err error
	if jobName != "" {
		entries, err = st.JobEntries(jobName, limit)
	} else {
		entries, err = st.AllEntries(limit)
	}
	if err != nil {
		return fmt.Errorf("failed to read index: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "Index is empty")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%-24s  %-16s  %s  (indexed %s ago)\n",
			e.RunID, e.JobName, e.Dir, e.Age().Round(time.Second))
	}
	fmt.Fprintf(os.Stdout, "\n%d entries\n", len(entries))
	return nil
}
