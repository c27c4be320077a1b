package fade

import (
	"math"
	"time"

	"github.com/robmorgan/fadeled/gamma"
	"github.com/robmorgan/fadeled/logger"
	"github.com/sirupsen/logrus"
)

// DefaultInterval is the time between two fade steps.
const DefaultInterval = 50 * time.Millisecond

// Scheduler advances all registered channels in lock-step.
type Scheduler struct {
	clock    Clock
	out      Output
	registry *Registry
	logger   *logrus.Entry

	capacity int
	policy   DriftPolicy

	// interval and lastUpdate are in clock milliseconds.
	interval   uint32
	lastUpdate uint32
}

// Option configures a Scheduler.
type Option func(s *Scheduler)

// WithInterval sets the update interval. See Scheduler.SetInterval.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		s.SetInterval(d)
	}
}

// WithCapacity sets how many channels the scheduler advances.
func WithCapacity(n int) Option {
	return func(s *Scheduler) {
		s.capacity = n
	}
}

// WithDriftPolicy selects how time is booked when updates are late.
func WithDriftPolicy(p DriftPolicy) Option {
	return func(s *Scheduler) {
		s.policy = p
	}
}

// WithLogger sets the logger used for registry and catch-up messages.
func WithLogger(l *logrus.Entry) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewScheduler creates a scheduler reading time from clk. Channels write to out unless
// they were given their own output.
func NewScheduler(clk Clock, out Output, opts ...Option) *Scheduler {
	if out == nil {
		out = Discard
	}

	s := &Scheduler{
		clock:    clk,
		out:      out,
		logger:   logger.GetProjectLogger().WithField("component", "fade"),
		capacity: DefaultCapacity,
		policy:   DriftCatchUp,
		interval: uint32(DefaultInterval / time.Millisecond),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registry = NewRegistry(s.capacity)
	s.lastUpdate = clk.Millis()
	return s
}

// NewChannel creates a channel driving id and registers it. When the scheduler is full
// the channel still works but is never advanced by Tick.
//
// Unless an option says otherwise the channel uses the default gamma table and a two
// second constant-speed fade.
func (s *Scheduler) NewChannel(id ChannelID, opts ...ChannelOption) *Channel {
	c := &Channel{
		id:       id,
		out:      s.out,
		sched:    s,
		handle:   NoHandle,
		gamma:    gamma.New(gamma.Default, gamma.DefaultBiggestStep),
		count:    1,
		countMax: defaultFadeSteps,
	}
	for _, opt := range opts {
		opt(c)
	}

	// an idle scheduler has nothing to catch up on
	idle := s.registry.Len() == 0
	h, ok := s.registry.Register(c)
	if !ok {
		s.logger.WithFields(logrus.Fields{"channel": id, "capacity": s.registry.Cap()}).
			Warn("Scheduler is full, channel will not fade automatically")
		return c
	}
	c.handle = h
	if idle {
		s.lastUpdate = s.clock.Millis()
	}
	return c
}

func (s *Scheduler) unregister(c *Channel) {
	if s.registry.Unregister(c.handle, c) {
		c.handle = NoHandle
	}
}

// SetInterval sets the time between two fade steps. Intervals below a millisecond are
// raised to one. Fade times already converted into steps are not rescaled.
func (s *Scheduler) SetInterval(d time.Duration) {
	ms := d / time.Millisecond
	if ms < 1 {
		ms = 1
	}
	if ms > math.MaxUint32/2 {
		ms = math.MaxUint32 / 2
	}
	s.interval = uint32(ms)
}

// Interval returns the time between two fade steps.
func (s *Scheduler) Interval() time.Duration {
	return time.Duration(s.interval) * time.Millisecond
}

// DriftPolicy returns the policy used to book late updates.
func (s *Scheduler) DriftPolicy() DriftPolicy {
	return s.policy
}

// Registered returns the number of channels Tick advances.
func (s *Scheduler) Registered() int {
	return s.registry.Len()
}

// Capacity returns the number of channels the scheduler can advance.
func (s *Scheduler) Capacity() int {
	return s.registry.Cap()
}

// Tick advances every registered channel if an update is due and returns the number of
// passes made. Call it often from the control loop.
func (s *Scheduler) Tick() int {
	now := s.clock.Millis()
	if s.registry.Len() == 0 {
		s.lastUpdate = now
		return 0
	}
	if now-s.lastUpdate <= s.interval {
		return 0
	}

	switch s.policy {
	case DriftSnap:
		s.lastUpdate = now
	case DriftStep:
		s.lastUpdate += s.interval
	case DriftResync:
		if now-s.lastUpdate > s.interval<<1 {
			s.lastUpdate = now
		} else {
			s.lastUpdate += s.interval
		}
	default:
		passes := 0
		for now-s.lastUpdate > s.interval {
			s.lastUpdate += s.interval
			s.advance()
			passes++
		}
		if passes > 1 {
			s.logger.WithField("passes", passes).Debug("Scheduler caught up on missed intervals")
		}
		return passes
	}

	s.advance()
	return 1
}

func (s *Scheduler) advance() {
	s.registry.Each(func(c *Channel) {
		c.advance()
	})
}

// stepsFor converts a fade time into a number of passes, at least one.
func (s *Scheduler) stepsFor(d time.Duration) uint32 {
	steps := d / s.Interval()
	if steps < 1 {
		return 1
	}
	if steps > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(steps)
}
