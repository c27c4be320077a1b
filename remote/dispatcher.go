package remote

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/hypebeast/go-osc/osc"
	"github.com/robmorgan/fadeled/logger"
	"github.com/sirupsen/logrus"
)

// Prefix is the OSC address space handled by the dispatcher.
const Prefix = "/fade/"

// Dispatcher implements osc.Dispatcher. Every valid message becomes a Command on the
// channel returned by Commands.
type Dispatcher struct {
	commands chan Command
	logger   *logrus.Entry
}

// NewDispatcher creates a dispatcher buffering up to size commands. Messages arriving
// while the buffer is full are dropped.
func NewDispatcher(size int) *Dispatcher {
	return &Dispatcher{
		commands: make(chan Command, size),
		logger:   logger.GetProjectLogger().WithField("component", "remote"),
	}
}

// Commands returns the stream of parsed commands.
func (d *Dispatcher) Commands() <-chan Command {
	return d.commands
}

// Dispatch implements osc.Dispatcher.
func (d *Dispatcher) Dispatch(packet osc.Packet) {
	switch packet := packet.(type) {
	case *osc.Message:
		d.dispatchMessage(packet)
	case *osc.Bundle:
		for _, msg := range packet.Messages {
			d.dispatchMessage(msg)
		}
		for _, bundle := range packet.Bundles {
			d.Dispatch(bundle)
		}
	}
}

func (d *Dispatcher) dispatchMessage(msg *osc.Message) {
	cmd, err := ParseMessage(msg)
	if err != nil {
		d.logger.WithError(err).WithField("address", msg.Address).Warn("Ignoring OSC message")
		return
	}

	select {
	case d.commands <- cmd:
	default:
		d.logger.WithField("address", msg.Address).Warn("Command queue full, dropping OSC message")
	}
}

// ParseMessage converts an OSC message into a Command.
func ParseMessage(msg *osc.Message) (Command, error) {
	if !strings.HasPrefix(msg.Address, Prefix) {
		return Command{}, errors.WithStackTrace(fmt.Errorf("address %q is outside %s", msg.Address, Prefix))
	}
	parts := strings.Split(strings.TrimPrefix(msg.Address, Prefix), "/")
	if len(parts) != 2 || parts[0] == "" {
		return Command{}, errors.WithStackTrace(fmt.Errorf("address %q is not %s<channel>/<action>", msg.Address, Prefix))
	}

	cmd := Command{Channel: parts[0], Action: Action(parts[1])}
	switch cmd.Action {
	case ActionOn, ActionOff, ActionStop:
		return cmd, nil
	case ActionSet, ActionBegin:
		v, err := intArgument(msg, 0)
		if err != nil {
			return Command{}, err
		}
		if v < 0 {
			v = 0
		}
		if v > math.MaxUint16 {
			v = math.MaxUint16
		}
		cmd.Value = uint16(v)
		return cmd, nil
	case ActionTime:
		ms, err := intArgument(msg, 0)
		if err != nil {
			return Command{}, err
		}
		if ms < 0 {
			return Command{}, errors.WithStackTrace(fmt.Errorf("negative fade time %d", ms))
		}
		cmd.Duration = time.Duration(ms) * time.Millisecond
		if len(msg.Arguments) > 1 {
			constant, err := intArgument(msg, 1)
			if err != nil {
				return Command{}, err
			}
			cmd.ConstantTime = constant != 0
		}
		return cmd, nil
	}

	return Command{}, errors.WithStackTrace(fmt.Errorf("unknown action %q", cmd.Action))
}

func intArgument(msg *osc.Message, i int) (int64, error) {
	if len(msg.Arguments) <= i {
		return 0, errors.WithStackTrace(fmt.Errorf("%s needs argument %d", msg.Address, i+1))
	}

	switch v := msg.Arguments[i].(type) {
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float32:
		return int64(math.Round(float64(v))), nil
	case float64:
		return int64(math.Round(v)), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	}
	return 0, errors.WithStackTrace(fmt.Errorf("argument %d of %s is %T, want a number", i+1, msg.Address, msg.Arguments[i]))
}
