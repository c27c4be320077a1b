package monitor

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	case snapshotMsg:
		m.snapshots = msg
		m.updates++
		return m, waitForSnapshot(m.sub)
	}
	return m, nil
}
