// Package engine drives a fade scheduler from a single goroutine.
package engine

import (
	"context"
	"sort"
	"time"

	"github.com/robmorgan/fadeled/fade"
	"github.com/robmorgan/fadeled/logger"
	"github.com/robmorgan/fadeled/remote"
	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is how often the loop checks the scheduler.
const DefaultPollInterval = 5 * time.Millisecond

// Snapshot is the state of one named channel after a pass.
type Snapshot struct {
	Name     string
	Current  uint16
	Setpoint uint16
	Biggest  uint16
}

// Fraction returns the current level as a fraction of the biggest step.
func (s Snapshot) Fraction() float64 {
	if s.Biggest == 0 {
		return 0
	}
	return float64(s.Current) / float64(s.Biggest)
}

// Loop owns a scheduler and its channels. Fade state is only touched from the goroutine
// calling Run or Step.
type Loop struct {
	sched    *fade.Scheduler
	channels map[string]*fade.Channel
	names    []string

	commands <-chan remote.Command
	observer func([]Snapshot)
	poll     time.Duration
	logger   *logrus.Entry
}

// Option configures a Loop.
type Option func(l *Loop)

// WithCommands applies commands received on ch between passes.
func WithCommands(ch <-chan remote.Command) Option {
	return func(l *Loop) {
		l.commands = ch
	}
}

// WithObserver calls fn with fresh snapshots whenever a pass or a command changed a
// channel. fn runs on the loop goroutine and must not block.
func WithObserver(fn func([]Snapshot)) Option {
	return func(l *Loop) {
		l.observer = fn
	}
}

// WithPollInterval sets how often Run checks the scheduler.
func WithPollInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.poll = d
		}
	}
}

// New creates a loop for the named channels, all of which must belong to sched.
func New(sched *fade.Scheduler, channels map[string]*fade.Channel, opts ...Option) *Loop {
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Strings(names)

	l := &Loop{
		sched:    sched,
		channels: channels,
		names:    names,
		poll:     DefaultPollInterval,
		logger:   logger.GetProjectLogger().WithField("component", "engine"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run steps the loop until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.WithField("channels", len(l.names)).Info("Fade engine started")
	l.publish()

	t := time.NewTimer(l.poll)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Fade engine stopped")
			return ctx.Err()
		case cmd := <-l.commands:
			l.apply(cmd)
			l.publish()
		case <-t.C:
			l.Step()
			t.Reset(l.poll)
		}
	}
}

// Step applies pending commands and runs the scheduler once. It reports whether the
// scheduler advanced.
func (l *Loop) Step() bool {
	applied := l.drain()
	advanced := l.sched.Tick() > 0
	if applied || advanced {
		l.publish()
	}
	return advanced
}

// Snapshots returns the state of every channel sorted by name.
func (l *Loop) Snapshots() []Snapshot {
	snaps := make([]Snapshot, 0, len(l.names))
	for _, name := range l.names {
		c := l.channels[name]
		snaps = append(snaps, Snapshot{
			Name:     name,
			Current:  c.Current(),
			Setpoint: c.Get(),
			Biggest:  c.BiggestStep(),
		})
	}
	return snaps
}

func (l *Loop) drain() bool {
	applied := false
	for {
		select {
		case cmd := <-l.commands:
			l.apply(cmd)
			applied = true
		default:
			return applied
		}
	}
}

func (l *Loop) apply(cmd remote.Command) {
	if err := cmd.Apply(l.channels); err != nil {
		l.logger.WithError(err).WithField("channel", cmd.Channel).Warn("Dropping command")
		return
	}
	l.logger.WithFields(logrus.Fields{
		"channel": cmd.Channel,
		"action":  cmd.Action,
	}).Debug("Applied command")
}

func (l *Loop) publish() {
	if l.observer != nil {
		l.observer(l.Snapshots())
	}
}
