package dmx

import (
	"github.com/robmorgan/fadeled/fade"
	"github.com/robmorgan/fadeled/logger"
	"github.com/sirupsen/logrus"
)

// Patch places a fade channel on a DMX slot.
type Patch struct {
	Universe int
	Address  int
}

// Output writes fade levels into a State. It implements fade.Output.
type Output struct {
	state   *State
	patches map[fade.ChannelID]Patch
	logger  *logrus.Entry
}

// NewOutput creates an Output writing into state.
func NewOutput(state *State) *Output {
	return &Output{
		state:   state,
		patches: make(map[fade.ChannelID]Patch),
		logger:  logger.GetProjectLogger().WithField("component", "dmx"),
	}
}

// Patch routes channel id to p. The address is checked right away and its universe is
// included in the next send.
func (o *Output) Patch(id fade.ChannelID, p Patch) error {
	if err := o.state.Set(p.Universe, p.Address, o.state.Get(p.Universe, p.Address)); err != nil {
		return err
	}
	o.patches[id] = p
	return nil
}

// Write stores level for id. Levels above 255 are clamped; unpatched channels are dropped.
func (o *Output) Write(id fade.ChannelID, level uint16) {
	p, ok := o.patches[id]
	if !ok {
		o.logger.WithField("channel", id).Debug("Dropping write for unpatched channel")
		return
	}
	if level > 255 {
		level = 255
	}
	if err := o.state.Set(p.Universe, p.Address, byte(level)); err != nil {
		o.logger.WithError(err).Error("Failed to write DMX value")
	}
}
