package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return "Closing...\n"
	}

	if m.viewMode == ViewModeDetail {
		return m.renderDetailView()
	}

	sections := []string{
		m.renderHeader(),
		tableBorderStyle.Render(m.table.View()),
		m.renderHelpBar(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the browser header.
func (m Model) renderHeader() string {
	title := titleStyle.Render("sweeprun browser")
	subtitle := subtitleStyle.Render(fmt.Sprintf("%d runs", m.collection.Len()))

	header := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", subtitle)
	return headerStyle.Render(header)
}

// renderDetailView renders the flattened attributes of the selected run.
func (m Model) renderDetailView() string {
	r := m.selectedRun()
	if r == nil {
		return "No run selected\n"
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Run "+r.Info.RunID()))
	rows = append(rows, "")

	for _, kv := range detailRows(r) {
		rows = append(rows, fmt.Sprintf("%s  %s",
			keyStyle.Render(padRight(kv[0], 28)), kv[1]))
	}

	content := detailStyle.Render(strings.Join(rows, "\n"))
	help := helpBarStyle.Render("esc: back  •  q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), content, help)
}

// renderHelpBar renders the key bindings.
func (m Model) renderHelpBar() string {
	return helpBarStyle.Render("↑/↓: navigate  •  enter: details  •  g/G: top/bottom  •  q: quit")
}

// padRight pads a string to the given width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
