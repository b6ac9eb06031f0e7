package condition

import (
	"fmt"

	"github.com/stretchr/testify/assert"
)

// TestError is a condition-specific failure: the code behaved differently from
// what the condition expects without itself raising anything.
type TestError struct {
	Message string
}

// Error implements the error interface.
func (e *TestError) Error() string {
	return e.Message
}

// Name returns the failure discriminator used by RaisedFailure matching.
func (e *TestError) Name() string {
	return "TestError"
}

var (
	// ErrNilInvocable is the failure detail when a condition is run without code.
	ErrNilInvocable = &TestError{Message: "no test code to run"}

	// ErrNotDeferred is the failure detail when code returns a plain value where a
	// deferred result is required.
	ErrNotDeferred = &TestError{Message: "test code did not return a deferred result"}

	// ErrNoFailureRaised is the failure detail when code expected to raise completed normally.
	ErrNoFailureRaised = &TestError{Message: "code ran without raising a failure"}

	// ErrNoDeferredFailure is the failure detail when a deferred result expected to fail succeeded.
	ErrNoDeferredFailure = &TestError{Message: "no deferred failure was made"}

	// ErrUnknownFailure stands in when a condition fails without any detail.
	ErrUnknownFailure = &TestError{Message: "unknown error"}
)

// MismatchError records an unmet equality between an expected and an actual value.
type MismatchError struct {
	Expected any
	Actual   any
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("unmet equality: expected %#v, got %#v", e.Expected, e.Actual)
}

// Name returns the failure discriminator used by RaisedFailure matching.
func (e *MismatchError) Name() string {
	return "TestError"
}

// DeferredFailureError records a deferred result that failed when success was expected.
type DeferredFailureError struct {
	Failure any
}

// Error implements the error interface.
func (e *DeferredFailureError) Error() string {
	return fmt.Sprintf("deferred result failed: %v", e.Failure)
}

// Name returns the failure discriminator used by RaisedFailure matching.
func (e *DeferredFailureError) Name() string {
	return "DeferredFailureError"
}

// Unwrap returns the failure payload when it is itself an error.
func (e *DeferredFailureError) Unwrap() error {
	if err, ok := e.Failure.(error); ok {
		return err
	}
	return nil
}

// PanicError wraps a non-error value recovered from a panicking invocation.
type PanicError struct {
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Name returns the failure discriminator used by RaisedFailure matching.
func (e *PanicError) Name() string {
	return "panic"
}

// Failure is a named failure that test code can raise and RaisedFailure can
// match by name and message.
type Failure struct {
	Kind    string
	Message string
}

// NewFailure creates a Failure with the given discriminator name and message.
func NewFailure(name, message string) *Failure {
	return &Failure{Kind: name, Message: message}
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Kind == "" {
		return f.Message
	}
	return f.Kind + ": " + f.Message
}

// Name returns the failure discriminator.
func (f *Failure) Name() string {
	return f.Kind
}

// FailureName returns the discriminator of err: the result of its Name method
// when it has one, otherwise its dynamic Go type.
func FailureName(err error) string {
	if err == nil {
		return ""
	}
	if named, ok := err.(interface{ Name() string }); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", err)
}

// SameFailure reports whether two failures have the same name and message.
// Structural payload beyond those two is ignored.
func SameFailure(a, b error) bool {
	if a == nil || b == nil {
		return a == b
	}
	return FailureName(a) == FailureName(b) && a.Error() == b.Error()
}

// Equivalent is the single value-equivalence relation used by every equality
// check. Values are equal when they are deeply equal or when one converts to
// the other's type and the results are deeply equal, so int(4) matches int64(4).
func Equivalent(expected, actual any) bool {
	return assert.ObjectsAreEqualValues(expected, actual)
}
