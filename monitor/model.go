// Package monitor renders live fade levels in the terminal.
package monitor

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robmorgan/fadeled/engine"
)

const barWidth = 40

type snapshotMsg []engine.Snapshot

// Model is a bubbletea model showing one progress bar per channel.
type Model struct {
	sub       <-chan []engine.Snapshot
	snapshots []engine.Snapshot
	bars      map[string]progress.Model
	updates   int
	quitting  bool
}

// New creates a model fed from sub.
func New(sub <-chan []engine.Snapshot) Model {
	return Model{
		sub:  sub,
		bars: make(map[string]progress.Model),
	}
}

// Observer returns an engine observer that forwards snapshots to ch without blocking.
// Snapshots arriving while the monitor is busy are dropped.
func Observer(ch chan<- []engine.Snapshot) func([]engine.Snapshot) {
	return func(s []engine.Snapshot) {
		select {
		case ch <- s:
		default:
		}
	}
}

// Run starts the monitor and blocks until the user quits.
func Run(sub <-chan []engine.Snapshot) error {
	return tea.NewProgram(New(sub)).Start()
}

func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.sub)
}

func waitForSnapshot(sub <-chan []engine.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-sub
		if !ok {
			return tea.Quit()
		}
		return snapshotMsg(s)
	}
}

func (m Model) bar(name string) progress.Model {
	if p, ok := m.bars[name]; ok {
		return p
	}
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	m.bars[name] = p
	return p
}
