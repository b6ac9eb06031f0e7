package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultConfigYAML string

// loadDefaultConfig loads the embedded default configuration.
//
// If the embedded YAML cannot be decoded, a config with the package constants
// is returned instead.
//
// Returns:
//   - *Config: the default configuration
func loadDefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err == nil {
		return &cfg
	}
	live, redraw := true, true
	return &Config{
		PollInterval: Duration(DefaultPollInterval),
		Output:       "table",
		Live:         &live,
		Redraw:       &redraw,
		Demo:         DemoCfg{Delay: Duration(DefaultDemoDelay)},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return loadDefaultConfig()
}

// GetDefaultConfig returns the embedded default configuration YAML.
//
// Useful for displaying or saving the default configuration.
//
// Returns:
//   - string: the default configuration as YAML
func GetDefaultConfig() string {
	return defaultConfigYAML
}
