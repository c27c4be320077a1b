package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/robmorgan/fadeled/engine"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	nameStyle  = lipgloss.NewStyle().Width(18)
	levelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	appStyle   = lipgloss.NewStyle().Margin(1, 2, 0, 2)
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("fadeled"))
	b.WriteString("\n\n")

	if len(m.snapshots) == 0 {
		b.WriteString("Waiting for channels...\n")
	}
	for _, s := range m.snapshots {
		b.WriteString(nameStyle.Render(s.Name))
		b.WriteString(m.bar(s.Name).ViewAs(s.Fraction()))
		b.WriteString(" ")
		b.WriteString(levelStyle.Render(fmt.Sprintf("%3d -> %3d %s", s.Current, s.Setpoint, direction(s))))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("Press q to exit"))
	if m.quitting {
		b.WriteString("\n")
	}
	return appStyle.Render(b.String())
}

func direction(s engine.Snapshot) string {
	switch {
	case s.Current < s.Setpoint:
		return "up"
	case s.Current > s.Setpoint:
		return "down"
	}
	return "idle"
}
