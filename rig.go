package main

import (
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/fadeled/config"
	"github.com/robmorgan/fadeled/dmx"
	"github.com/robmorgan/fadeled/fade"
)

// rig is everything the fade engine drives: the DMX state, the scheduler and the
// configured channels keyed by name.
type rig struct {
	state    *dmx.State
	output   *dmx.Output
	sched    *fade.Scheduler
	channels map[string]*fade.Channel
}

func newRig(cfg config.FadeConfig, clk fade.Clock) (*rig, error) {
	state := dmx.NewState()
	output := dmx.NewOutput(state)

	sched := fade.NewScheduler(clk, output,
		fade.WithInterval(cfg.Interval),
		fade.WithCapacity(cfg.Capacity),
		fade.WithDriftPolicy(cfg.DriftPolicy()),
	)

	r := &rig{
		state:    state,
		output:   output,
		sched:    sched,
		channels: make(map[string]*fade.Channel, len(cfg.Channels)),
	}

	for _, ch := range cfg.Channels {
		m, err := ch.GammaMap()
		if err != nil {
			r.close()
			return nil, err
		}

		// the DMX address doubles as the channel id
		id := fade.ChannelID(ch.Address)
		if err := output.Patch(id, dmx.Patch{Universe: cfg.Universe, Address: ch.Address}); err != nil {
			r.close()
			return nil, err
		}

		c := sched.NewChannel(id, fade.WithGamma(m), fade.WithTime(ch.Duration, ch.ConstantTime))
		if !c.Registered() {
			c.Close()
			r.close()
			return nil, errors.WithStackTrace(config.InvalidConfig{Field: "capacity", Reason: "scheduler is full"})
		}
		c.Begin(0)
		r.channels[ch.Name] = c
	}

	return r, nil
}

func (r *rig) close() {
	for _, c := range r.channels {
		c.Close()
	}
}
