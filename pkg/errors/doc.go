// Package errors provides the command-level error types and their display.
//
// Test failures are never errors of this package: a failing test is recorded
// on its pass condition. This package covers what happens around a run:
//   - ExitError: Command exit with a specific exit code
//   - PartialSuccessError: A run finished with failing or pending tests
//   - ValidationError: Configuration validation failures
//
// Error Display:
//
//	errors.PrintErrorWithHints(os.Stderr, errs, verbose)
//
// Exit Codes:
//
// Standard exit codes are defined for scripting integration:
//   - ExitSuccess (0): Every test passed
//   - ExitTestsFailed (1): The run finished and at least one test failed
//   - ExitFailure (2): The run could not finish (deadline, invalid suite, I/O)
//   - ExitConfigError (3): Configuration or flag validation error
package errors
