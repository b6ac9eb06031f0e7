package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajxudir/subtest/pkg/config"
	"github.com/ajxudir/subtest/pkg/constants"
	"github.com/ajxudir/subtest/pkg/errors"
	"github.com/ajxudir/subtest/pkg/verbose"
)

var (
	configShowDefaultsFlag  bool
	configShowEffectiveFlag bool
	configShowSchemaFlag    bool
	configValidateFlag      bool
	configPathFlag          string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or validate configuration",
	Long:  `Show the default or effective configuration, or validate a configuration file.`,
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShowDefaultsFlag, "show-defaults", false, "Show default configuration")
	configCmd.Flags().BoolVar(&configShowEffectiveFlag, "show-effective", false, "Show effective configuration")
	configCmd.Flags().BoolVar(&configShowSchemaFlag, "show-schema", false, "Show the JSON schema of the configuration file")
	configCmd.Flags().BoolVar(&configValidateFlag, "validate", false, "Validate configuration file (rejects unknown fields)")
	configCmd.Flags().StringVarP(&configPathFlag, "config", "c", "", "Config file path")
}

// runConfig executes the config command with the specified flags.
//
// Behavior depends on flags:
//   - --validate: Validates the configuration file against schema and semantics
//   - --show-defaults: Displays the default configuration
//   - --show-schema: Displays the JSON schema
//   - --show-effective: Displays the configuration a run would use
//
// Returns:
//   - error: Returns error on validation or load failure
func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if configValidateFlag {
		return validateConfigFile(cmd)
	}

	if configShowDefaultsFlag {
		_, _ = fmt.Fprintln(out, "Default configuration:")
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprint(out, config.GetDefaultConfig())
		return nil
	}

	if configShowSchemaFlag {
		_, _ = fmt.Fprint(out, config.GetSchema())
		return nil
	}

	if configShowEffectiveFlag {
		workDir, _ := os.Getwd()
		cfg, err := loadConfigFunc(configPathFlag, workDir)
		if err != nil {
			return errors.NewExitError(errors.ExitConfigError, err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}

		source := cfg.Path()
		if source == "" {
			source = "built-in defaults"
		}
		_, _ = fmt.Fprintf(out, "Effective configuration (%s):\n\n", source)
		_, _ = fmt.Fprint(out, string(data))
		return nil
	}

	return cmd.Help()
}

// validateConfigFile validates the configuration file at the specified path.
//
// If no path is specified via --config flag, validates .subtest.yml in the
// current working directory. Reports validation errors and warnings.
//
// Returns:
//   - error: Returns ExitError with ExitConfigError code on validation failure
func validateConfigFile(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	configPath := configPathFlag
	if configPath == "" {
		workDir, _ := os.Getwd()
		configPath = filepath.Join(workDir, config.DefaultConfigFile)
	}

	result := config.ValidateFile(configPath)

	if result.HasErrors() {
		_, _ = fmt.Fprintf(out, "%s Configuration validation failed for: %s\n\n", constants.IconError, configPath)

		for _, e := range result.Errors {
			if verbose.IsEnabled() {
				_, _ = fmt.Fprintf(out, "  ERROR: %s\n", e.VerboseError())
			} else {
				_, _ = fmt.Fprintf(out, "  ERROR: %s\n", e.Error())
			}
		}

		if len(result.Warnings) > 0 {
			_, _ = fmt.Fprintln(out)
			for _, w := range result.Warnings {
				_, _ = fmt.Fprintf(out, "  WARNING: %s\n", w)
			}
		}
		_, _ = fmt.Fprintln(out)
		if !verbose.IsEnabled() {
			_, _ = fmt.Fprintf(out, "%s Run with --verbose for detailed information\n", constants.IconLightbulb)
		}
		_, _ = fmt.Fprintf(out, "%s Run 'subtest config --show-schema' for valid configuration options\n", constants.IconLightbulb)
		verbose.Infof("Exit code %d (config error): configuration validation failed for %s", errors.ExitConfigError, configPath)
		return errors.NewExitErrorf(errors.ExitConfigError, "configuration validation failed")
	}

	if len(result.Warnings) > 0 {
		_, _ = fmt.Fprintf(out, "%s Configuration valid with warnings: %s\n\n", constants.IconWarn, configPath)
		for _, w := range result.Warnings {
			_, _ = fmt.Fprintf(out, "  WARNING: %s\n", w)
		}
		_, _ = fmt.Fprintln(out)
	} else {
		_, _ = fmt.Fprintf(out, "%s Configuration valid: %s\n", constants.IconCheckmarkBox, configPath)
	}

	return nil
}
