package fade

import (
	"fmt"
	"testing"
	"time"

	"github.com/robmorgan/fadeled/gamma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginWritesWithoutFading(t *testing.T) {
	t.Parallel()

	s, _, out := newTestScheduler()
	c := s.NewChannel(3)

	c.Begin(50)
	assert.Equal(t, uint16(50), c.Current())
	assert.Equal(t, uint16(50), c.Get())
	assert.True(t, c.Done())
	assert.Equal(t, []uint16{gamma.Default[50]}, out.writes[3])

	c.BeginOn()
	assert.Equal(t, uint16(gamma.DefaultBiggestStep), c.Current())
	assert.Equal(t, uint16(255), out.writes[3][1])
}

func TestSetClampsToBiggestStep(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestScheduler()
	c := s.NewChannel(1)

	c.Set(500)
	assert.Equal(t, uint16(gamma.DefaultBiggestStep), c.Get())
	assert.True(t, c.Rising())

	c.Begin(1000)
	assert.Equal(t, uint16(gamma.DefaultBiggestStep), c.Current())
}

func TestSetSameValueDoesNotRestart(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestScheduler()
	c := s.NewChannel(1, WithTime(oneSecond, false))
	c.Begin(0)
	c.Set(60)
	for i := 0; i < 3; i++ {
		c.advance()
	}

	count, start := c.count, c.startVal
	c.Set(60)
	assert.Equal(t, count, c.count)
	assert.Equal(t, start, c.startVal)
	assert.Equal(t, uint16(15), c.Current())
}

func TestConstantSpeedContinuesInSameDirection(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestScheduler()
	c := s.NewChannel(1, WithoutGamma(), WithTime(oneSecond, false))
	c.Begin(0)
	c.Set(200)
	for i := 0; i < 5; i++ {
		c.advance()
	}
	require.Equal(t, uint16(63), c.Current()) // 5 * 255 / 20
	count := c.count

	c.Set(255)
	assert.Equal(t, uint16(255), c.Get())
	assert.Equal(t, uint16(0), c.startVal)
	assert.Equal(t, count, c.count)

	c.advance()
	assert.Equal(t, uint16(76), c.Current()) // 6 * 255 / 20, no restart

	for i := 0; i < 20 && !c.Done(); i++ {
		c.advance()
	}
	assert.Equal(t, uint16(255), c.Current())
}

func TestConstantSpeedRestartsWhenDirectionChanges(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestScheduler()
	c := s.NewChannel(1, WithoutGamma(), WithTime(oneSecond, false))
	c.Begin(0)
	c.Set(200)
	for i := 0; i < 5; i++ {
		c.advance()
	}

	// a target already passed restarts the fade downwards
	c.Set(50)
	assert.Equal(t, uint16(63), c.startVal)
	assert.Equal(t, uint32(1), c.count)
	assert.True(t, c.Falling())

	c.advance()
	assert.Equal(t, uint16(51), c.Current()) // 63 - 12
	c.advance()
	assert.Equal(t, uint16(50), c.Current())
	assert.True(t, c.Done())
}

func TestConstantTimeIgnoresRetarget(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestScheduler()
	c := s.NewChannel(1, WithTime(oneSecond, true))
	c.Begin(0)
	c.Set(80)
	c.advance()
	c.advance()
	require.False(t, c.Done())

	c.Set(20)
	assert.Equal(t, uint16(80), c.Get())
	c.Off()
	assert.Equal(t, uint16(80), c.Get())

	for i := 0; i < 18; i++ {
		c.advance()
	}
	assert.True(t, c.Done())
	assert.Equal(t, uint16(80), c.Current())

	// once idle a new target is accepted
	c.Set(20)
	assert.Equal(t, uint16(20), c.Get())
}

func TestRetargetFollowsModeOfRunningFade(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestScheduler()
	c := s.NewChannel(1)
	c.Begin(0)
	c.Set(50)
	c.advance()
	require.Equal(t, uint16(2), c.Current())

	// switching to constant time only applies to the next fade
	c.SetTime(oneSecond, true)
	c.Set(20)
	assert.Equal(t, uint16(20), c.Get())

	for i := 0; i < 40 && !c.Done(); i++ {
		c.advance()
	}
	require.True(t, c.Done())

	c.Set(80)
	c.advance()
	require.False(t, c.Done())
	c.Set(30)
	assert.Equal(t, uint16(80), c.Get())
}

func TestConstantTimeTakesSameDurationForAnyDistance(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestScheduler()
	for _, target := range []uint16{5, 37, 100} {
		c := s.NewChannel(ChannelID(target), WithTime(oneSecond, true))
		c.Begin(0)
		c.Set(target)

		steps := 0
		for !c.Done() {
			c.advance()
			steps++
		}
		assert.Equal(t, 20, steps, "target %d", target)
		c.Close()
	}
}

func TestStopFreezesFade(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestScheduler()
	c := s.NewChannel(1, WithTime(oneSecond, false))
	c.Begin(0)
	c.On()
	c.advance()
	c.advance()

	c.Stop()
	assert.True(t, c.Done())
	assert.Equal(t, uint16(10), c.Get())
	assert.Equal(t, uint16(10), c.Current())

	c.advance()
	assert.Equal(t, uint16(10), c.Current())
}

func TestSetTimeConvertsToSteps(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestScheduler()
	c := s.NewChannel(1)
	assert.Equal(t, uint32(defaultFadeSteps), c.Steps())

	c.SetTime(oneSecond, true)
	assert.Equal(t, uint32(20), c.Steps())
	assert.True(t, c.ConstantTime())

	// too short durations still take one step
	c.SetTime(10*time.Millisecond, false)
	assert.Equal(t, uint32(1), c.Steps())
	c.SetTime(0, false)
	assert.Equal(t, uint32(1), c.Steps())

	c.Begin(0)
	c.On()
	c.advance()
	assert.True(t, c.Done())
}

func TestSetTimeDoesNotChangeRunningFade(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestScheduler()
	c := s.NewChannel(1, WithTime(oneSecond, false))
	c.Begin(0)
	c.Set(100)
	c.advance()

	c.SetTime(100*time.Millisecond, false)
	c.advance()
	assert.Equal(t, uint16(10), c.Current()) // still 5 per step
}

func TestSetGammaTableResets(t *testing.T) {
	t.Parallel()

	s, _, out := newTestScheduler()
	c := s.NewChannel(1)
	c.Begin(80)
	c.Set(20)
	c.advance()
	writes := len(out.writes[1])

	c.SetGammaTable(gamma.Slice{0, 10, 20, 30}, 3)
	assert.Equal(t, uint16(0), c.Current())
	assert.Equal(t, uint16(0), c.Get())
	assert.True(t, c.Done())
	assert.Equal(t, uint16(3), c.BiggestStep())
	assert.Len(t, out.writes[1], writes)

	c.SetTime(oneSecond, false)
	c.On()
	for i := 0; i < 20 && !c.Done(); i++ {
		c.advance()
	}
	assert.Equal(t, uint16(3), c.Current())
	assert.Equal(t, uint16(30), out.writes[1][len(out.writes[1])-1])
}

func TestNoGammaTable(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestScheduler()
	c := s.NewChannel(1)
	c.NoGammaTable()

	assert.Equal(t, uint16(255), c.BiggestStep())
	assert.Equal(t, uint16(255), c.GammaValue(300))
	assert.Equal(t, uint16(17), c.GammaValue(17))
}

func TestOutputOnlyWrittenOnChange(t *testing.T) {
	t.Parallel()

	s, _, out := newTestScheduler()
	c := s.NewChannel(1, WithoutGamma(), WithTime(oneSecond, true))
	c.Begin(0)
	c.Set(3)

	steps := 0
	for !c.Done() {
		c.advance()
		steps++
	}
	assert.Equal(t, 20, steps)
	assert.Equal(t, []uint16{0, 1, 2, 3}, out.writes[1])
}

func TestFadesTerminateWithinBounds(t *testing.T) {
	t.Parallel()

	maps := []gamma.Map{
		gamma.New(gamma.Default, gamma.DefaultBiggestStep),
		gamma.Identity(gamma.DefaultResolution),
		gamma.Identity(1023),
	}
	levels := []uint16{0, 1, 2, 49, 50, 99, 100, 254, 255, 1023}
	totals := []time.Duration{1, 2, 3, 7, 20, 40, 333}

	s, _, _ := newTestScheduler()
	for _, m := range maps {
		for _, steps := range totals {
			for _, constant := range []bool{false, true} {
				for _, from := range levels {
					for _, to := range levels {
						name := fmt.Sprintf("biggest=%d steps=%d const=%v %d->%d", m.BiggestStep(), steps, constant, from, to)

						c := s.NewChannel(1, WithGamma(m), WithTime(steps*s.Interval(), constant))
						c.Begin(from)
						c.Set(to)
						target := c.Get()

						calls := 0
						for !c.Done() && calls <= int(steps)+1 {
							prev := c.Current()
							c.advance()
							calls++

							require.LessOrEqual(t, c.Current(), m.BiggestStep(), name)
							if c.Current() != prev {
								require.Equal(t, prev < target, c.Current() > prev, name)
							}
						}
						require.True(t, c.Done(), name)
						require.Equal(t, target, c.Current(), name)
						require.LessOrEqual(t, calls, int(steps)+1, name)
						c.Close()
					}
				}
			}
		}
	}
}
