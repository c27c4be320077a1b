// Package remote turns OSC messages into fade commands.
//
// Messages are addressed as /fade/<channel>/<action>. The dispatcher only parses them;
// commands are applied by whoever owns the fade scheduler, so fade state is never touched
// from the OSC server goroutine.
package remote

import (
	"fmt"
	"time"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/fadeled/fade"
)

// Action is what a command does to its channel.
type Action string

const (
	ActionSet   Action = "set"
	ActionBegin Action = "begin"
	ActionOn    Action = "on"
	ActionOff   Action = "off"
	ActionStop  Action = "stop"
	ActionTime  Action = "time"
)

// Command is a parsed remote request.
type Command struct {
	Channel string
	Action  Action

	// Value is the level for set and begin.
	Value uint16

	// Duration and ConstantTime are used by time.
	Duration     time.Duration
	ConstantTime bool
}

// UnknownChannel is returned when a command names a channel that does not exist.
type UnknownChannel struct {
	Name string
}

func (err UnknownChannel) Error() string {
	return fmt.Sprintf("unknown channel %q", err.Name)
}

// Apply runs the command against the named channels.
func (cmd Command) Apply(channels map[string]*fade.Channel) error {
	c, ok := channels[cmd.Channel]
	if !ok {
		return errors.WithStackTrace(UnknownChannel{Name: cmd.Channel})
	}

	switch cmd.Action {
	case ActionSet:
		c.Set(cmd.Value)
	case ActionBegin:
		c.Begin(cmd.Value)
	case ActionOn:
		c.On()
	case ActionOff:
		c.Off()
	case ActionStop:
		c.Stop()
	case ActionTime:
		c.SetTime(cmd.Duration, cmd.ConstantTime)
	default:
		return errors.WithStackTrace(fmt.Errorf("unknown action %q", cmd.Action))
	}
	return nil
}
