package testutil

import (
	"time"

	"github.com/ajxudir/subtest/pkg/config"
)

// ConfigBuilder provides a fluent API for building test configurations.
//
// Start from NewConfig, which holds the built-in defaults, and override only
// what the test cares about.
type ConfigBuilder struct {
	cfg *config.Config
}

// NewConfig creates a new ConfigBuilder with the built-in default values.
func NewConfig() *ConfigBuilder {
	return &ConfigBuilder{cfg: config.Default()}
}

// WithPollInterval sets the tick period.
func (b *ConfigBuilder) WithPollInterval(d time.Duration) *ConfigBuilder {
	b.cfg.PollInterval = config.Duration(d)
	return b
}

// WithDeadline sets the run deadline.
func (b *ConfigBuilder) WithDeadline(d time.Duration) *ConfigBuilder {
	b.cfg.Deadline = config.Duration(d)
	return b
}

// WithOutput sets the report format.
func (b *ConfigBuilder) WithOutput(format string) *ConfigBuilder {
	b.cfg.Output = format
	return b
}

// WithFilter sets the test name filter.
func (b *ConfigBuilder) WithFilter(pattern string) *ConfigBuilder {
	b.cfg.Filter = pattern
	return b
}

// WithLive enables or disables the live console.
func (b *ConfigBuilder) WithLive(live bool) *ConfigBuilder {
	b.cfg.Live = &live
	return b
}

// WithDemoDelay sets how long deferred example tests take.
func (b *ConfigBuilder) WithDemoDelay(d time.Duration) *ConfigBuilder {
	b.cfg.Demo.Delay = config.Duration(d)
	return b
}

// Build returns the constructed configuration.
func (b *ConfigBuilder) Build() *config.Config {
	return b.cfg
}
