// Package config handles configuration loading and validation for subtest.
// It supports a YAML configuration file checked against an embedded JSON
// schema, then semantically, and falls back to built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/subtest/pkg/demo"
	pkgerrors "github.com/ajxudir/subtest/pkg/errors"
	"github.com/ajxudir/subtest/pkg/orchestrator"
	"github.com/ajxudir/subtest/pkg/verbose"
)

const (
	// DefaultConfigFile is looked up in the working directory when no path is given.
	DefaultConfigFile = ".subtest.yml"

	// DefaultMaxConfigFileSize is the largest config file that is read (1MB).
	DefaultMaxConfigFileSize int64 = 1 << 20

	// DefaultPollInterval is used when the config does not set poll_interval.
	DefaultPollInterval = orchestrator.DefaultPollInterval

	// DefaultDemoDelay is used when the config does not set demo.delay.
	DefaultDemoDelay = demo.DefaultDelay
)

// LoadConfig loads configuration from the specified path or defaults.
//
// If configPath is provided, it loads that specific config file.
// Otherwise, it looks for .subtest.yml in the working directory.
// If no config is found, it returns the built-in default configuration.
// Unset fields of a loaded file are filled from the defaults.
//
// Parameters:
//   - configPath: path to the config file, or empty to use defaults
//   - workDir: working directory searched for .subtest.yml
//
// Returns:
//   - *Config: the loaded configuration
//   - error: any error encountered during loading or validation
func LoadConfig(configPath, workDir string) (*Config, error) {
	defaults := loadDefaultConfig()

	path := configPath
	if path == "" {
		localConfig := filepath.Join(workDir, DefaultConfigFile)
		if _, err := os.Stat(localConfig); err != nil {
			verbose.Info("No config file found, using built-in defaults")
			return defaults, nil
		}
		verbose.Infof("Found local config: %s", localConfig)
		path = localConfig
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		verbose.WithDocRef("config", fmt.Sprintf("Config file %s rejected: %v", path, err))
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	cfg.applyDefaults(defaults)

	result := cfg.Validate()
	if err := result.Err(); err != nil {
		verbose.WithDocRef("config", fmt.Sprintf("Config file %s failed validation: %v", path, err))
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	for _, warning := range result.Warnings {
		verbose.Printf("Config warning: %s\n", warning)
	}

	verbose.ConfigLoaded(path)
	return cfg, nil
}

// loadConfigFileWithLimit loads a config file with a custom size limit.
//
// It performs the following operations:
//   - Step 1: Rejects files larger than maxSize before reading them
//   - Step 2: Reads the file and decodes it with loadConfigData
//
// Parameters:
//   - path: path to the config file
//   - maxSize: maximum allowed file size in bytes
//
// Returns:
//   - *Config: the loaded configuration, remembering path
//   - error: error if the file is too large, unreadable or invalid
func loadConfigFileWithLimit(path string, maxSize int64) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d bytes)", info.Size(), maxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfigData(data)
	if err != nil {
		return nil, err
	}
	cfg.path = path
	return cfg, nil
}

func loadConfigFile(path string) (*Config, error) {
	return loadConfigFileWithLimit(path, DefaultMaxConfigFileSize)
}

// loadConfigData validates data against the schema and decodes it.
//
// Parameters:
//   - data: raw YAML content
//
// Returns:
//   - *Config: the decoded configuration, without defaults applied
//   - error: schema violations or "failed to parse" decoding errors
func loadConfigData(data []byte) (*Config, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, err
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// An empty document means "all defaults".
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// ValidateFile checks a config file the way LoadConfig would read it.
//
// Problems reading or decoding the file are reported as a single error on the
// "file" field; otherwise the semantic checks of Validate are returned.
//
// Parameters:
//   - path: path to the config file
//
// Returns:
//   - *errors.ValidationResult: errors and warnings found in the file
func ValidateFile(path string) *pkgerrors.ValidationResult {
	cfg, err := loadConfigFile(path)
	if err != nil {
		result := pkgerrors.NewValidationResult()
		result.AddError(pkgerrors.NewConfigValidationError("file", err.Error()))
		return result
	}
	cfg.applyDefaults(loadDefaultConfig())
	return cfg.Validate()
}
