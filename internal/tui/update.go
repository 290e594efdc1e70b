package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles incoming messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Height > 10 {
			m.table.SetHeight(msg.Height - 8)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleKeyPress processes keyboard input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if m.viewMode == ViewModeDetail {
			m.viewMode = ViewModeList
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case "enter":
		if m.viewMode == ViewModeList && m.collection.Len() > 0 {
			m.viewMode = ViewModeDetail
		}
		return m, nil

	case "g":
		if m.viewMode == ViewModeList {
			m.table.GotoTop()
		}
		return m, nil

	case "G":
		if m.viewMode == ViewModeList {
			m.table.GotoBottom()
		}
		return m, nil
	}

	if m.viewMode == ViewModeList {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}
