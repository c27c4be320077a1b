package fade

import (
	"time"

	"k8s.io/utils/clock"
)

// ChannelID identifies a physical output, e.g. a pin number or a patched DMX slot.
type ChannelID int

// Output applies a level to a physical output.
type Output interface {
	Write(id ChannelID, level uint16)
}

// OutputFunc adapts a function to an Output.
type OutputFunc func(id ChannelID, level uint16)

func (f OutputFunc) Write(id ChannelID, level uint16) {
	f(id, level)
}

// Discard is an Output that drops every write.
var Discard Output = OutputFunc(func(ChannelID, uint16) {})

// Clock is a monotonic millisecond counter. It may wrap; the scheduler only ever looks
// at differences between two readings.
type Clock interface {
	Millis() uint32
}

// ClockFunc adapts a function to a Clock.
type ClockFunc func() uint32

func (f ClockFunc) Millis() uint32 {
	return f()
}

// FromClock returns a Clock counting the milliseconds elapsed on c since the call.
func FromClock(c clock.Clock) Clock {
	start := c.Now()
	return ClockFunc(func() uint32 {
		return uint32(c.Now().Sub(start) / time.Millisecond)
	})
}
