package dmx

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/robmorgan/fadeled/fade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateSetAndGet(t *testing.T) {
	t.Parallel()

	s := NewState()
	require.NoError(t, s.Set(1, 1, 10))
	require.NoError(t, s.Set(1, 512, 20))
	require.NoError(t, s.Set(3, 7, 30))

	assert.Equal(t, byte(10), s.Get(1, 1))
	assert.Equal(t, byte(20), s.Get(1, 512))
	assert.Equal(t, byte(0), s.Get(2, 1))
	assert.Equal(t, []int{1, 3}, s.Universes())

	u := s.Universe(1)
	require.Len(t, u, UniverseChannels)
	u[0] = 99
	assert.Equal(t, byte(10), s.Get(1, 1))
	assert.Nil(t, s.Universe(2))
}

func TestStateRejectsBadAddress(t *testing.T) {
	t.Parallel()

	s := NewState()
	require.Error(t, s.Set(1, 0, 1))
	require.Error(t, s.Set(1, 513, 1))
	assert.Empty(t, s.Universes())
}

func TestOutputWritesPatchedChannels(t *testing.T) {
	t.Parallel()

	s := NewState()
	out := NewOutput(s)
	require.NoError(t, out.Patch(1, Patch{Universe: 1, Address: 115}))
	require.Error(t, out.Patch(2, Patch{Universe: 1, Address: 600}))

	out.Write(1, 128)
	assert.Equal(t, byte(128), s.Get(1, 115))

	out.Write(1, 1023)
	assert.Equal(t, byte(255), s.Get(1, 115))

	// unpatched channels are dropped
	out.Write(2, 50)
	assert.Equal(t, []int{1}, s.Universes())
}

func TestOutputDrivenByScheduler(t *testing.T) {
	t.Parallel()

	var now uint32
	s := NewState()
	out := NewOutput(s)
	require.NoError(t, out.Patch(7, Patch{Universe: 1, Address: 20}))

	sched := fade.NewScheduler(fade.ClockFunc(func() uint32 { return now }), out)
	c := sched.NewChannel(7, fade.WithoutGamma(), fade.WithTime(time.Second, true))
	c.Begin(0)
	c.Set(200)

	for i := 0; i < 20; i++ {
		now += 51
		sched.Tick()
	}
	assert.Equal(t, byte(200), s.Get(1, 20))
}

type fakeOLA struct {
	mu     sync.Mutex
	sent   map[int][]byte
	closed bool
}

func (f *fakeOLA) SendDmx(universe int, values []byte) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent[universe] = values
	return true, nil
}

func (f *fakeOLA) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeOLA) universe(u int) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[u]
}

func TestSendWorker(t *testing.T) {
	t.Parallel()

	s := NewState()
	require.NoError(t, s.Set(2, 3, 42))
	client := &fakeOLA{sent: make(map[int][]byte)}

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)

	errs := make(chan error, 1)
	go func() {
		errs <- SendWorker(ctx, client, time.Millisecond, s, wg)
	}()

	require.Eventually(t, func() bool {
		u := client.universe(2)
		return len(u) == UniverseChannels && u[2] == 42
	}, time.Second, time.Millisecond)

	cancel()
	wg.Wait()
	assert.ErrorIs(t, <-errs, context.Canceled)
	assert.True(t, client.closed)
}
