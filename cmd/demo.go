package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajxudir/subtest/pkg/condition"
	"github.com/ajxudir/subtest/pkg/config"
	"github.com/ajxudir/subtest/pkg/demo"
	"github.com/ajxudir/subtest/pkg/display"
	"github.com/ajxudir/subtest/pkg/errors"
	"github.com/ajxudir/subtest/pkg/orchestrator"
	"github.com/ajxudir/subtest/pkg/output"
	"github.com/ajxudir/subtest/pkg/subtest"
	"github.com/ajxudir/subtest/pkg/verbose"
)

var (
	demoConfigFlag   string
	demoOutputFlag   string
	demoFilterFlag   string
	demoDeadlineFlag time.Duration
	demoDelayFlag    time.Duration
	demoNoLiveFlag   bool
	demoFailFlag     bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the built-in example suite",
	Long: `Run the example suite against the bundled greeting application.

The suite covers every kind of pass condition: code that runs, returned values,
deferred results that succeed or fail, raised failures and a test that waits for
another one. Progress is rendered live, then a report is printed.

Exit codes: 0 all tests passed, 1 some tests failed, 2 the run ended early,
3 the configuration is invalid.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringVarP(&demoConfigFlag, "config", "c", "", "Config file path")
	demoCmd.Flags().StringVarP(&demoOutputFlag, "output", "o", "", "Output format: json, csv, xml (default: table)")
	demoCmd.Flags().StringVarP(&demoFilterFlag, "filter", "f", "", "Run only tests matching a glob such as \"greeting/*\" (gates are kept)")
	demoCmd.Flags().DurationVar(&demoDeadlineFlag, "deadline", 0, "Stop waiting for pending tests after this duration (0: wait forever)")
	demoCmd.Flags().DurationVar(&demoDelayFlag, "delay", 0, "How long the deferred example tests take (default from config)")
	demoCmd.Flags().BoolVar(&demoNoLiveFlag, "no-live", false, "Do not render progress while tests run")
	demoCmd.Flags().BoolVar(&demoFailFlag, "fail", false, "Add a failing test and a test that depends on it")
}

// loadConfigFunc is replaced in tests.
var loadConfigFunc = config.LoadConfig

// loadDemoConfig loads the configuration and applies the flags that were set.
//
// Returns:
//   - *config.Config: Effective configuration
//   - []string: Validation warnings to show before the run
//   - error: ExitError with ExitConfigError when loading or validation fails
func loadDemoConfig(cmd *cobra.Command) (*config.Config, []string, error) {
	workDir, _ := os.Getwd()
	cfg, err := loadConfigFunc(demoConfigFlag, workDir)
	if err != nil {
		verbose.Infof("Exit code %d (config error): %v", errors.ExitConfigError, err)
		return nil, nil, errors.NewExitError(errors.ExitConfigError, err)
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = demoOutputFlag
	}
	if flags.Changed("filter") {
		cfg.Filter = demoFilterFlag
	}
	if flags.Changed("deadline") {
		cfg.Deadline = config.Duration(demoDeadlineFlag)
	}
	if flags.Changed("delay") {
		cfg.Demo.Delay = config.Duration(demoDelayFlag)
	}
	if demoNoLiveFlag {
		live := false
		cfg.Live = &live
	}

	result := cfg.Validate()
	if err := result.Err(); err != nil {
		return nil, nil, errors.NewExitError(errors.ExitConfigError, err)
	}
	return cfg, result.Warnings, nil
}

// runDemo executes the demo command.
//
// It performs the following operations:
//   - Step 1: Loads the configuration and applies flag overrides
//   - Step 2: Builds the example suite and applies the filter
//   - Step 3: Runs the suite with a live console or progress indicator
//   - Step 4: Prints the report in the selected format
//
// Returns:
//   - error: ExitError carrying the exit code when the run did not fully pass
func runDemo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	cfg, warnings, err := loadDemoConfig(cmd)
	if err != nil {
		return err
	}
	display.PrintWarnings(errOut, warnings)

	format := output.ParseFormat(cfg.Output)
	suite := demo.Suite(demo.Options{
		Delay: cfg.Demo.Delay.Std(),
		Fail:  demoFailFlag,
		Out:   io.Discard,
	})

	suite, err = suite.Filter(cfg.Filter)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}
	if suite.Len() == 0 {
		display.PrintNoTestsMessage(out, cfg.Filter)
		return nil
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	result, runErr := runSuite(ctx, cfg, format, suite, out, errOut)
	if result == nil {
		return errors.NewExitError(errors.ExitFailure, runErr)
	}

	report := output.NewRunReport(result, runErr)
	if err := output.WriteRunReport(out, format, report); err != nil {
		return errors.NewExitError(errors.ExitFailure, fmt.Errorf("failed to write report: %w", err))
	}
	if format == output.FormatTable {
		_, _ = fmt.Fprintln(out)
		display.PrintSummary(out, result)
	}

	if runErr != nil {
		return errors.NewExitError(errors.ExitFailure, runErr)
	}
	if result.Failed > 0 {
		return errors.NewExitError(errors.ExitTestsFailed,
			errors.NewPartialSuccessError(result.Passed, result.Failed, result.Pending, notPassed(result.Tests)))
	}
	return nil
}

// runSuite runs suite with the live console for table output, or a progress
// indicator on errOut for structured formats so out stays machine readable.
func runSuite(ctx context.Context, cfg *config.Config, format output.Format, suite *subtest.Suite, out, errOut io.Writer) (*orchestrator.Result, error) {
	run := orchestrator.New(suite,
		orchestrator.WithPollInterval(cfg.PollInterval.Std()),
		orchestrator.WithDeadline(cfg.Deadline.Std()),
	)

	if !cfg.IsLive() {
		return run.Execute(ctx)
	}

	if output.IsStructuredFormat(format) {
		progress := display.NewProgress(errOut, suite.Len())
		run.Observe(display.ProgressObserver(progress))
		result, err := run.Execute(ctx)
		progress.Done()
		return result, err
	}

	console := display.NewConsole(out, display.WithRedraw(cfg.ShouldRedraw()), display.WithIcons(true))
	run.Observe(console.Observe)
	result, err := run.Execute(ctx)
	_, _ = fmt.Fprintln(out)
	return result, err
}

// notPassed lists the names of failed and pending tests in suite order.
func notPassed(tests *subtest.Suite) []string {
	var names []string
	tests.Each(func(name string, test *subtest.Test) {
		if test.Condition().Outcome() != condition.Passed {
			names = append(names, name)
		}
	})
	return names
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
