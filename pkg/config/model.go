package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	// PollInterval is the period between two ticks of a run.
	PollInterval Duration `yaml:"poll_interval,omitempty"`

	// Deadline bounds the wait for pending tests. Zero waits forever.
	Deadline Duration `yaml:"deadline,omitempty"`

	// Output selects the report format: table, json, csv or xml.
	Output string `yaml:"output,omitempty"`

	// Live renders the console while the run is in progress.
	Live *bool `yaml:"live,omitempty"`

	// Redraw replaces every console frame in place instead of appending it.
	Redraw *bool `yaml:"redraw,omitempty"`

	// Filter is a doublestar glob selecting the tests to run.
	Filter string `yaml:"filter,omitempty"`

	Demo DemoCfg `yaml:"demo,omitempty"`

	// path is the file the config was loaded from; empty for built-in defaults.
	path string `yaml:"-"`
}

// DemoCfg holds settings of the built-in example suite.
type DemoCfg struct {
	// Delay is how long the deferred example tests take to settle.
	Delay Duration `yaml:"delay,omitempty"`
}

// Path returns the file the config was loaded from, or "" for the built-in defaults.
func (c *Config) Path() string {
	return c.path
}

// IsLive reports whether the console is rendered live. Defaults to true.
func (c *Config) IsLive() bool {
	return c.Live == nil || *c.Live
}

// ShouldRedraw reports whether console frames replace each other. Defaults to true.
func (c *Config) ShouldRedraw() bool {
	return c.Redraw == nil || *c.Redraw
}

// applyDefaults fills unset fields from defaults.
func (c *Config) applyDefaults(defaults *Config) {
	if defaults == nil {
		return
	}
	if c.PollInterval == 0 {
		c.PollInterval = defaults.PollInterval
	}
	if c.Output == "" {
		c.Output = defaults.Output
	}
	if c.Live == nil {
		c.Live = defaults.Live
	}
	if c.Redraw == nil {
		c.Redraw = defaults.Redraw
	}
	if c.Demo.Delay == 0 {
		c.Demo.Delay = defaults.Demo.Delay
	}
}

// Duration is a time.Duration written as a Go duration string ("10ms", "1m30s").
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String formats d like time.Duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalYAML parses a duration string. A bare 0 is accepted as zero.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("line %d: duration must be a string like \"10ms\"", node.Line)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", node.Line, raw)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes d as a duration string.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}
