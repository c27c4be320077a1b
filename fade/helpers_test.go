package fade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now uint32
}

func (c *fakeClock) Millis() uint32 {
	return c.now
}

type recorder struct {
	writes map[ChannelID][]uint16
}

func newRecorder() *recorder {
	return &recorder{writes: make(map[ChannelID][]uint16)}
}

func (r *recorder) Write(id ChannelID, level uint16) {
	r.writes[id] = append(r.writes[id], level)
}

func newTestScheduler(opts ...Option) (*Scheduler, *fakeClock, *recorder) {
	clk := &fakeClock{}
	out := newRecorder()
	return NewScheduler(clk, out, opts...), clk, out
}

// dueTick moves the clock just past the next update and ticks once.
func dueTick(t *testing.T, s *Scheduler, clk *fakeClock) {
	t.Helper()

	clk.now = s.lastUpdate + s.interval + 1
	require.Equal(t, 1, s.Tick())
}

const oneSecond = time.Second
