package config

import (
	"fmt"
	"os"
	"time"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/fadeled/fade"
	"github.com/robmorgan/fadeled/gamma"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FadeConfig represents options that configure the global behavior of the program
type FadeConfig struct {
	// Interval is the time between two fade steps.
	Interval time.Duration `yaml:"interval"`

	// Drift names the scheduler's drift policy: catch-up, snap, step or resync.
	Drift string `yaml:"drift"`

	// Capacity is the number of channels the scheduler advances.
	Capacity int `yaml:"capacity"`

	// Universe is the DMX universe channels are patched on.
	Universe int `yaml:"universe"`

	// OLAAddress is the host:port of the OLA daemon.
	OLAAddress string `yaml:"ola_address"`

	// OSCAddress is where remote commands are received. Empty disables the listener.
	OSCAddress string `yaml:"osc_address"`

	LogLevel string `yaml:"log_level"`

	// LogFile receives the log while the monitor owns the terminal.
	LogFile string `yaml:"log_file"`

	Channels []ChannelConfig `yaml:"channels"`
}

// NewFadeConfig creates a FadeConfig with reasonable defaults for real usage
func NewFadeConfig() FadeConfig {
	return FadeConfig{
		Interval:   fade.DefaultInterval,
		Drift:      fade.DriftCatchUp.String(),
		Capacity:   fade.DefaultCapacity,
		Universe:   1,
		OLAAddress: "localhost:9010",
		OSCAddress: "127.0.0.1:8765",
		LogLevel:   "info",
		LogFile:    "fadeled.log",
		Channels:   PatchChannels(),
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (FadeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FadeConfig{}, errors.WithStackTrace(err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result. A document that
// lists channels replaces the default patch.
func Parse(data []byte) (FadeConfig, error) {
	cfg := NewFadeConfig()
	cfg.Channels = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FadeConfig{}, errors.WithStackTrace(err)
	}
	if cfg.Channels == nil {
		cfg.Channels = PatchChannels()
	}
	for i := range cfg.Channels {
		cfg.Channels[i].applyDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return FadeConfig{}, err
	}
	return cfg, nil
}

// Validate checks the config for values the program cannot run with.
func (c FadeConfig) Validate() error {
	if c.Interval < time.Millisecond {
		return errors.WithStackTrace(InvalidConfig{Field: "interval", Reason: fmt.Sprintf("%s is below 1ms", c.Interval)})
	}
	if _, err := fade.ParseDriftPolicy(c.Drift); err != nil {
		return errors.WithStackTrace(InvalidConfig{Field: "drift", Reason: err.Error()})
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.WithStackTrace(InvalidConfig{Field: "log_level", Reason: err.Error()})
	}
	if c.Capacity < 1 {
		return errors.WithStackTrace(InvalidConfig{Field: "capacity", Reason: "must be at least 1"})
	}
	if len(c.Channels) > c.Capacity {
		return errors.WithStackTrace(InvalidConfig{Field: "channels", Reason: fmt.Sprintf("%d channels exceed capacity %d", len(c.Channels), c.Capacity)})
	}

	names := make(map[string]bool)
	addresses := make(map[int]string)
	for _, ch := range c.Channels {
		if ch.Name == "" {
			return errors.WithStackTrace(InvalidConfig{Field: "channels", Reason: "channel without a name"})
		}
		if names[ch.Name] {
			return errors.WithStackTrace(InvalidConfig{Field: "channels", Reason: fmt.Sprintf("duplicate channels found! name=%s", ch.Name)})
		}
		names[ch.Name] = true

		if ch.Address < 1 || ch.Address > 512 {
			return errors.WithStackTrace(InvalidConfig{Field: "channels", Reason: fmt.Sprintf("address %d of %s not in 1..512", ch.Address, ch.Name)})
		}
		if other, ok := addresses[ch.Address]; ok {
			return errors.WithStackTrace(InvalidConfig{Field: "channels", Reason: fmt.Sprintf("%s and %s share address %d", other, ch.Name, ch.Address)})
		}
		addresses[ch.Address] = ch.Name

		if _, err := ch.GammaMap(); err != nil {
			return errors.WithStackTrace(InvalidConfig{Field: "channels", Reason: fmt.Sprintf("curve of %s: %v", ch.Name, err)})
		}
	}
	return nil
}

// DriftPolicy returns the parsed drift policy.
func (c FadeConfig) DriftPolicy() fade.DriftPolicy {
	p, _ := fade.ParseDriftPolicy(c.Drift)
	return p
}

// InvalidConfig is returned by Validate.
type InvalidConfig struct {
	Field  string
	Reason string
}

func (err InvalidConfig) Error() string {
	return fmt.Sprintf("invalid config %s: %s", err.Field, err.Reason)
}

// ChannelConfig describes one fading output.
type ChannelConfig struct {
	Name         string        `yaml:"name"`
	Address      int           `yaml:"address"`
	Duration     time.Duration `yaml:"duration"`
	ConstantTime bool          `yaml:"constant_time"`

	// Curve selects the gamma table, see gamma.Lookup.
	Curve string `yaml:"curve"`

	// Steps is the length of generated curves.
	Steps int `yaml:"steps"`
}

func (c *ChannelConfig) applyDefaults() {
	if c.Duration == 0 {
		c.Duration = 2 * time.Second
	}
	if c.Curve == "" {
		c.Curve = "default"
	}
}

// GammaMap resolves the channel's curve. Levels are 8-bit since they end up on DMX.
func (c ChannelConfig) GammaMap() (gamma.Map, error) {
	return gamma.Lookup(c.Curve, c.Steps, 8)
}
