package tui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sweeplab/sweeprun/internal/run"
)

// ViewMode represents the current view in the TUI.
type ViewMode int

const (
	ViewModeList ViewMode = iota
	ViewModeDetail
)

// Model holds the state for the run browser.
type Model struct {
	collection *run.Collection
	columns    []string // attribute keys shown as extra table columns

	viewMode ViewMode
	table    table.Model
	width    int
	height   int
	quitting bool
}

// New creates a run browser over a collection. The given attribute keys are
// shown as additional columns next to run ID and job name; runs where a key
// does not resolve show an empty cell.
func New(collection *run.Collection, columns []string) Model {
	m := Model{
		collection: collection,
		columns:    columns,
	}
	m.table = m.buildTable()
	return m
}

// Init initializes the model (required by Bubbletea).
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// buildTable projects the collection into the list-view table.
func (m *Model) buildTable() table.Model {
	cols := []table.Column{
		{Title: "Run ID", Width: 24},
		{Title: "Job", Width: 16},
	}
	for _, key := range m.columns {
		cols = append(cols, table.Column{Title: key, Width: 14})
	}

	rows := make([]table.Row, m.collection.Len())
	for i := range rows {
		r := m.collection.At(i)
		row := table.Row{r.Info.RunID(), r.Info.JobName()}
		for _, key := range m.columns {
			row = append(row, fmt.Sprint(r.GetOr(key, "")))
		}
		rows[i] = row
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = selectedStyle
	t.SetStyles(styles)

	return t
}

// selectedRun returns the run under the cursor, or nil for an empty
// collection.
func (m *Model) selectedRun() *run.Run {
	i := m.table.Cursor()
	if i < 0 || i >= m.collection.Len() {
		return nil
	}
	return m.collection.At(i)
}

// detailRows returns the selected run's flattened attributes as sorted
// key/value pairs, identity fields first.
func detailRows(r *run.Run) [][2]string {
	out := [][2]string{
		{"run_id", r.Info.RunID()},
		{"job_name", r.Info.JobName()},
		{"run_dir", r.Info.Dir},
	}

	flat := r.Config().Flatten()
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		out = append(out, [2]string{k, fmt.Sprint(flat[k])})
	}
	return out
}

// Quitting returns true if the user has requested to quit.
func (m Model) Quitting() bool {
	return m.quitting
}
