package monitor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robmorgan/fadeled/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStoresSnapshots(t *testing.T) {
	t.Parallel()

	sub := make(chan []engine.Snapshot, 1)
	m := New(sub)

	snaps := []engine.Snapshot{
		{Name: "left", Current: 50, Setpoint: 100, Biggest: 100},
		{Name: "right", Current: 20, Setpoint: 0, Biggest: 100},
	}
	next, cmd := m.Update(snapshotMsg(snaps))
	require.NotNil(t, cmd)

	got := next.(Model)
	assert.Equal(t, snaps, got.snapshots)
	assert.Equal(t, 1, got.updates)

	// the returned command waits for the next snapshot
	sub <- snaps[:1]
	assert.Equal(t, snapshotMsg(snaps[:1]), cmd())
}

func TestClosedSubscriptionQuits(t *testing.T) {
	t.Parallel()

	sub := make(chan []engine.Snapshot)
	close(sub)
	msg := New(sub).Init()()
	assert.Equal(t, tea.Quit(), msg)
}

func TestQuitKeys(t *testing.T) {
	t.Parallel()

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		next, cmd := New(nil).Update(key)
		require.NotNil(t, cmd)
		assert.True(t, next.(Model).quitting)
	}

	_, cmd := New(nil).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
}

func TestView(t *testing.T) {
	t.Parallel()

	m := New(nil)
	assert.Contains(t, m.View(), "Waiting for channels")

	next, _ := m.Update(snapshotMsg([]engine.Snapshot{
		{Name: "left_middle_par", Current: 50, Setpoint: 100, Biggest: 100},
		{Name: "uplight", Current: 7, Setpoint: 7, Biggest: 100},
	}))
	view := next.(Model).View()
	assert.Contains(t, view, "left_middle_par")
	assert.Contains(t, view, " 50 -> 100 up")
	assert.Contains(t, view, "  7 ->   7 idle")
	assert.NotContains(t, view, "Waiting for channels")
}

func TestObserverDoesNotBlock(t *testing.T) {
	t.Parallel()

	ch := make(chan []engine.Snapshot, 1)
	observe := Observer(ch)
	observe([]engine.Snapshot{{Name: "a"}})
	observe([]engine.Snapshot{{Name: "b"}})

	assert.Equal(t, "a", (<-ch)[0].Name)
	assert.Len(t, ch, 0)
}
