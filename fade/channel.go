package fade

import (
	"math"
	"time"

	"github.com/robmorgan/fadeled/gamma"
)

// defaultFadeSteps is the fade length of a new channel: 2s at the default 50ms interval.
const defaultFadeSteps = 40

// Channel is a single fading output.
//
// A channel is idle when its current level equals its setpoint, rising when it is below
// and falling when it is above. Set starts or retargets a fade; every scheduler pass
// moves the current level one step closer.
type Channel struct {
	id     ChannelID
	out    Output
	sched  *Scheduler
	handle Handle

	gamma gamma.Map

	setVal   uint16
	startVal uint16
	curVal   uint16

	// count is the number of passes consumed by the active fade.
	count uint32

	// countMax and constTime configure the next fade. The active fade keeps the values
	// it started with in fadeMax and fadeConst.
	countMax  uint32
	constTime bool
	fadeMax   uint32
	fadeConst bool
}

// ChannelOption configures a channel created by Scheduler.NewChannel.
type ChannelOption func(c *Channel)

// WithGamma installs a prebuilt gamma map.
func WithGamma(m gamma.Map) ChannelOption {
	return func(c *Channel) {
		c.gamma = m
	}
}

// WithGammaTable uses table for the output mapping with the given biggest step.
func WithGammaTable(table gamma.Table, biggestStep uint16) ChannelOption {
	return WithGamma(gamma.New(table, biggestStep))
}

// WithoutGamma writes steps straight to the output with 8-bit resolution.
func WithoutGamma() ChannelOption {
	return WithGamma(gamma.Identity(gamma.DefaultResolution))
}

// WithOutput sends the channel's writes to out instead of the scheduler's output.
func WithOutput(out Output) ChannelOption {
	return func(c *Channel) {
		if out != nil {
			c.out = out
		}
	}
}

// WithTime sets the fade time as SetTime does.
func WithTime(d time.Duration, constantTime bool) ChannelOption {
	return func(c *Channel) {
		c.SetTime(d, constantTime)
	}
}

// ID returns the output the channel drives.
func (c *Channel) ID() ChannelID {
	return c.id
}

// Registered reports whether the scheduler advances this channel.
func (c *Channel) Registered() bool {
	return c.handle != NoHandle
}

// Begin jumps to value without fading and writes it to the output.
func (c *Channel) Begin(value uint16) {
	value = c.clampStep(value)
	c.setVal = value
	c.curVal = value
	c.write()
}

// BeginOn jumps to the biggest step without fading.
func (c *Channel) BeginOn() {
	c.Begin(c.gamma.BiggestStep())
}

// Set requests a fade to value.
//
// While a constant-time fade is running the request is ignored. While a constant-speed
// fade is running a target further along the same direction just moves the setpoint;
// anything else restarts the fade from the current level.
func (c *Channel) Set(value uint16) {
	value = c.clampStep(value)
	if value == c.setVal {
		return
	}

	if !c.Done() {
		if c.fadeConst {
			return
		}
		up := c.startVal < c.setVal && c.curVal < value
		down := c.startVal > c.setVal && c.curVal > value
		if up || down {
			c.setVal = value
			return
		}
	}

	c.setVal = value
	c.count = 1
	c.startVal = c.curVal
	c.fadeMax = c.countMax
	c.fadeConst = c.constTime
}

// Get returns the setpoint.
func (c *Channel) Get() uint16 {
	return c.setVal
}

// Current returns the level the channel is at right now.
func (c *Channel) Current() uint16 {
	return c.curVal
}

// Done reports whether the channel reached its setpoint.
func (c *Channel) Done() bool {
	return c.curVal == c.setVal
}

// Rising reports whether the channel is fading up.
func (c *Channel) Rising() bool {
	return c.curVal < c.setVal
}

// Falling reports whether the channel is fading down.
func (c *Channel) Falling() bool {
	return c.curVal > c.setVal
}

// On fades to the biggest step.
func (c *Channel) On() {
	c.Set(c.gamma.BiggestStep())
}

// Off fades to zero.
func (c *Channel) Off() {
	c.Set(0)
}

// Stop freezes the channel at its current level.
func (c *Channel) Stop() {
	c.setVal = c.curVal
}

// SetTime sets how long fades started from now on take. In constant-time mode every fade
// lasts d; otherwise d is the time of a fade over the full range and shorter fades
// finish sooner. A fade already running keeps its old timing.
func (c *Channel) SetTime(d time.Duration, constantTime bool) {
	c.countMax = c.sched.stepsFor(d)
	c.constTime = constantTime
}

// ConstantTime reports whether new fades use constant-time mode.
func (c *Channel) ConstantTime() bool {
	return c.constTime
}

// Steps returns the number of passes a new fade spans.
func (c *Channel) Steps() uint32 {
	return c.countMax
}

// SetGamma installs m and resets the channel to zero. The output is not written until
// the next Begin or Set.
func (c *Channel) SetGamma(m gamma.Map) {
	c.Stop()
	c.setVal = 0
	c.curVal = 0
	c.count = 1
	c.gamma = m
}

// SetGammaTable installs table with the given biggest step. See SetGamma.
func (c *Channel) SetGammaTable(table gamma.Table, biggestStep uint16) {
	c.SetGamma(gamma.New(table, biggestStep))
}

// NoGammaTable removes the correction table. See SetGamma.
func (c *Channel) NoGammaTable() {
	c.SetGamma(gamma.Identity(gamma.DefaultResolution))
}

// GammaValue returns the output level for step.
func (c *Channel) GammaValue(step uint16) uint16 {
	return c.gamma.Value(step)
}

// BiggestStep returns the highest step the channel accepts.
func (c *Channel) BiggestStep() uint16 {
	return c.gamma.BiggestStep()
}

// Close removes the channel from its scheduler. The channel keeps working when driven
// by hand. Closing twice is a no-op.
func (c *Channel) Close() {
	c.sched.unregister(c)
}

// advance moves an active fade one step.
func (c *Channel) advance() {
	if c.Done() {
		return
	}
	rising := c.curVal < c.setVal

	start := int64(c.startVal)
	set := int64(c.setVal)
	cur := int64(c.curVal)

	span := int64(c.gamma.BiggestStep())
	if c.fadeConst {
		span = set - start
		if span < 0 {
			span = -span
		}
	}
	total := int64(c.fadeMax)
	if total < 1 {
		total = 1
	}
	delta := int64(c.count) * span / total

	next := start - delta
	if rising {
		next = start + delta
	}

	switch {
	// moved backwards: only wrapped arithmetic can get here
	case rising && next < cur:
		next = int64(c.gamma.BiggestStep())
	case !rising && next > cur:
		next = 0
	// overshoot
	case rising && next > set, !rising && next < set:
		next = set
	}

	if uint16(next) != c.curVal {
		c.curVal = uint16(next)
		c.write()
	}
	if c.count < math.MaxUint32 {
		c.count++
	}
}

func (c *Channel) write() {
	c.out.Write(c.id, c.gamma.Level(c.curVal))
}

func (c *Channel) clampStep(value uint16) uint16 {
	if biggest := c.gamma.BiggestStep(); value > biggest {
		return biggest
	}
	return value
}
