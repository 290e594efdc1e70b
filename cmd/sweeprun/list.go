package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sweeplab/sweeprun/internal/config"
	"github.com/sweeplab/sweeprun/internal/run"
	"github.com/sweeplab/sweeprun/internal/store"
	"github.com/sweeplab/sweeprun/internal/tracking"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List and filter runs under the tracking root",
	Long: `Discover run directories under the configured tracking root and print
them as a table.

Filters resolve dotted attribute keys against each run's implementation
object, configuration tree, and metadata. Filter values support the
criterion language:

  --filter lr=0.1          exact match
  --filter lr=0.1,0.2      membership
  --filter epoch=10..100   inclusive range
  --filter db.name=sqlite  nested config key

Example:
  sweeprun list --config ./sweeprun.yaml --filter model=resnet --sort lr`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringP("config", "c", "sweeprun.yaml", "Path to configuration file")
	listCmd.Flags().StringArrayP("filter", "f", nil, "Attribute filter key=value (repeatable)")
	listCmd.Flags().StringArray("exclude", nil, "Attribute exclusion key=value (repeatable)")
	listCmd.Flags().StringSlice("sort", nil, "Attribute keys to sort by")
	listCmd.Flags().StringSlice("columns", nil, "Attribute keys to show as columns")
	listCmd.Flags().StringSlice("experiment", nil, "Experiment name patterns to include")
	listCmd.Flags().Int("jobs", 0, "Number of parallel workers for loading runs (0 = sequential)")
	listCmd.Flags().Bool("cached", false, "Answer from the run index instead of scanning the tracking root")
}

func runList(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	filters, _ := cmd.Flags().GetStringArray("filter")
	exclusions, _ := cmd.Flags().GetStringArray("exclude")
	sortKeys, _ := cmd.Flags().GetStringSlice("sort")
	columns, _ := cmd.Flags().GetStringSlice("columns")
	experiments, _ := cmd.Flags().GetStringSlice("experiment")
	nJobs, _ := cmd.Flags().GetInt("jobs")
	cached, _ := cmd.Flags().GetBool("cached")

	if cached {
		return listCached(configPath, filters, columns)
	}

	collection, err := loadCollection(configPath, experiments, nJobs)
	if err != nil {
		return err
	}

	collection, err = applyFilters(collection, filters, exclusions)
	if err != nil {
		return err
	}

	collection, err = collection.Sort(sortKeys...)
	if err != nil {
		return fmt.Errorf("failed to sort runs: %w", err)
	}

	logger.Debug("runs selected", "count", collection.Len())

	return printRunTable(collection, columns)
}

// listCached answers the query from the run index without touching the
// tracking root. Filters match against the flattened params captured at
// indexing time plus the entry's identity fields.
func listCached(configPath string, filters, columns []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st, err := store.NewStore(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	entries, err := st.AllEntries(0)
	if err != nil {
		return fmt.Errorf("failed to read index: %w", err)
	}

	var kept []*store.Entry
	for _, e := range entries {
		if entryMatches(e, filters) {
			kept = append(kept, e)
		}
	}

	header := append([]string{"run_id", "job_name"}, columns...)
	rows := make([][]string, len(kept))
	for i, e := range kept {
		row := []string{e.RunID, e.JobName}
		for _, key := range columns {
			row = append(row, fmt.Sprint(entryAttr(e, key)))
		}
		rows[i] = row
	}

	printTable(header, rows)
	fmt.Fprintf(os.Stdout, "\n%d runs (cached)\n", len(kept))
	return nil
}

func entryAttr(e *store.Entry, key string) any {
	switch key {
	case "run_id":
		return e.RunID
	case "job_name":
		return e.JobName
	case "run_dir":
		return e.Dir
	}
	if v, ok := e.Params[key]; ok {
		return v
	}
	return ""
}

func entryMatches(e *store.Entry, filters []string) bool {
	for _, f := range filters {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return false
		}
		if !run.Matches(entryAttr(e, key), parseCriterion(value)) {
			return false
		}
	}
	return true
}

// loadCollection discovers run directories and constructs the collection.
func loadCollection(configPath string, experiments []string, nJobs int) (*run.Collection, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyLogging(cfg.Logging.Format, cfg.Logging.Level, cfg.Logging.Output)

	if len(experiments) == 0 {
		experiments = cfg.Tracking.Experiments
	}

	dirs, err := tracking.RunDirs(cfg.Tracking.Dir, experiments...)
	if err != nil {
		return nil, fmt.Errorf("failed to discover runs: %w", err)
	}

	logger.Debug("run directories discovered", "count", len(dirs), "root", cfg.Tracking.Dir)

	return run.Load(dirs, run.NJobs(nJobs))
}

// applyFilters translates key=value flags into predicates and applies them.
func applyFilters(c *run.Collection, filters, exclusions []string) (*run.Collection, error) {
	preds, err := parsePredicates(filters)
	if err != nil {
		return nil, err
	}
	if len(preds) > 0 {
		if c, err = c.Filter(preds...); err != nil {
			return nil, fmt.Errorf("failed to filter runs: %w", err)
		}
	}

	preds, err = parsePredicates(exclusions)
	if err != nil {
		return nil, err
	}
	if len(preds) > 0 {
		if c, err = c.Exclude(preds...); err != nil {
			return nil, fmt.Errorf("failed to exclude runs: %w", err)
		}
	}
	return c, nil
}

// parsePredicates converts key=value flags into the criterion language:
// "a,b" is membership, "lo..hi" is an inclusive range, anything else an
// exact match. Values parse as numbers or booleans when they look like one.
func parsePredicates(flags []string) ([]run.Predicate, error) {
	preds := make([]run.Predicate, 0, len(flags))
	for _, f := range flags {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("invalid filter %q: expected key=value", f)
		}
		preds = append(preds, run.Where(key, parseCriterion(value)))
	}
	return preds, nil
}

func parseCriterion(value string) any {
	if lo, hi, ok := strings.Cut(value, ".."); ok && lo != "" && hi != "" {
		return run.Range{Lo: parseLiteral(lo), Hi: parseLiteral(hi)}
	}

	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		out := make([]any, len(parts))
		for i, p := range parts {
			out[i] = parseLiteral(p)
		}
		return out
	}

	return parseLiteral(value)
}

func parseLiteral(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	tableCellStyle   = lipgloss.NewStyle()
)

// printRunTable renders the collection as a table: identity columns plus
// the requested attribute columns.
func printRunTable(c *run.Collection, columns []string) error {
	frame, err := c.ToFrameWith(nil, computedColumns(columns))
	if err != nil {
		return err
	}

	header := append([]string{"run_id", "job_name"}, columns...)
	rows := make([][]string, c.Len())

	for i := range rows {
		r := c.At(i)
		row := []string{r.Info.RunID(), r.Info.JobName()}
		for _, key := range columns {
			col, _ := frame.Column(key)
			row = append(row, fmt.Sprint(col[i]))
		}
		rows[i] = row
	}

	printTable(header, rows)
	fmt.Fprintf(os.Stdout, "\n%d runs\n", c.Len())
	return nil
}

func printTable(header []string, rows [][]string) {
	widths := make([]int, len(header))
	for j, name := range header {
		widths[j] = len(name)
		for _, row := range rows {
			if len(row[j]) > widths[j] {
				widths[j] = len(row[j])
			}
		}
	}

	var b strings.Builder
	for j, name := range header {
		b.WriteString(tableHeaderStyle.Render(pad(name, widths[j])))
		b.WriteString("  ")
	}
	b.WriteString("\n")
	for _, row := range rows {
		for j, cell := range row {
			b.WriteString(tableCellStyle.Render(pad(cell, widths[j])))
			b.WriteString("  ")
		}
		b.WriteString("\n")
	}

	fmt.Fprint(os.Stdout, b.String())
}

// computedColumns projects attribute keys leniently so a run missing a key
// shows an empty cell instead of failing the whole table.
func computedColumns(keys []string) map[string]run.ComputedColumn {
	out := make(map[string]run.ComputedColumn, len(keys))
	for _, key := range keys {
		out[key] = func(r *run.Run) (any, error) {
			return r.GetOr(key, ""), nil
		}
	}
	return out
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
