package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
const (
	// ExitSuccess indicates every test passed.
	ExitSuccess = 0

	// ExitTestsFailed indicates the run finished and at least one test failed.
	ExitTestsFailed = 1

	// ExitFailure indicates the run could not finish: a missed deadline, an
	// invalid suite or an output error.
	ExitFailure = 2

	// ExitConfigError indicates a configuration or flag validation error.
	ExitConfigError = 3
)

// ExitError represents a command termination with a specific exit code.
//
// Fields:
//   - Code: Exit code (use ExitSuccess, ExitTestsFailed, ExitFailure, ExitConfigError)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
//
// Example:
//
//	return &ExitError{
//	    Code:    ExitConfigError,
//	    Message: "failed to load config",
//	    Err:     err,
//	}
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error returns Message if set, otherwise the underlying error's message, or a
// default message with the exit code.
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Example:
//
//	err := errors.NewExitError(errors.ExitConfigError, configErr)
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewExitErrorf creates an ExitError with the given code and formatted message.
func NewExitErrorf(code int, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode extracts the exit code from an error.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: ExitSuccess for nil, the code of a wrapped ExitError,
//     ExitTestsFailed for a PartialSuccessError, ExitFailure otherwise
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if _, ok := IsPartialSuccess(err); ok {
		return ExitTestsFailed
	}

	return ExitFailure
}

// IsExitError checks if err is an ExitError and returns it.
//
// Example:
//
//	if exitErr, ok := errors.IsExitError(err); ok {
//	    os.Exit(exitErr.Code)
//	}
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}

// PartialSuccessError reports a run in which some tests passed and others did not.
//
// Fields:
//   - Succeeded: Number of passed tests
//   - Failed: Number of failed tests
//   - Pending: Number of tests that never settled
//   - Names: Names of the tests that did not pass, in suite order
type PartialSuccessError struct {
	Succeeded int
	Failed    int
	Pending   int
	Names     []string
}

// Error returns a summary in the format "X passed, Y failed" with the pending
// count appended when non-zero.
func (e *PartialSuccessError) Error() string {
	if e.Pending > 0 {
		return fmt.Sprintf("%d passed, %d failed, %d pending", e.Succeeded, e.Failed, e.Pending)
	}
	return fmt.Sprintf("%d passed, %d failed", e.Succeeded, e.Failed)
}

// NewPartialSuccessError creates a PartialSuccessError with the given counts.
func NewPartialSuccessError(succeeded, failed, pending int, names []string) *PartialSuccessError {
	return &PartialSuccessError{
		Succeeded: succeeded,
		Failed:    failed,
		Pending:   pending,
		Names:     names,
	}
}

// IsPartialSuccess checks if err is a PartialSuccessError and returns it.
func IsPartialSuccess(err error) (*PartialSuccessError, bool) {
	var pse *PartialSuccessError
	if errors.As(err, &pse) {
		return pse, true
	}
	return nil, false
}
