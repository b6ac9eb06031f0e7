// Package subtest declares tests whose outcome is decided by a pass condition:
// synchronously, through a deferred result, or after another test settles.
//
// A Test is built with a constructor and configured fluently before it is run:
//
//	hello := subtest.Value(func() any { return 2 + 2 }).ShouldEqual(4)
//	again := subtest.Func(sayHello).After(hello, true)
//
//	suite := subtest.NewSuite().
//	    Add("hello", hello).
//	    Add("again", again)
//
// Tests are executed by the orchestrator package, which starts every pass
// condition in a Suite and aggregates their outcomes.
package subtest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ajxudir/subtest/pkg/condition"
	"github.com/ajxudir/subtest/pkg/deferred"
)

// ErrDependencyNotSatisfied is matched by the failure of a test whose gate had
// to pass and did not.
var ErrDependencyNotSatisfied = errors.New("test is dependent on another test's success")

// DependencyError is the failure detail of a gated test whose gate settled
// without passing while it was required to pass.
type DependencyError struct {
	// GateOutcome is the outcome the gate settled with.
	GateOutcome condition.Outcome
	// GateDetail is the failure detail of the gate, if any.
	GateDetail error
}

// Error implements the error interface.
func (e *DependencyError) Error() string {
	if e.GateDetail != nil {
		return fmt.Sprintf("%s (gate %s: %v)", ErrDependencyNotSatisfied, e.GateOutcome, e.GateDetail)
	}
	return fmt.Sprintf("%s (gate %s)", ErrDependencyNotSatisfied, e.GateOutcome)
}

// Unwrap returns ErrDependencyNotSatisfied so callers can use errors.Is.
func (e *DependencyError) Unwrap() error {
	return ErrDependencyNotSatisfied
}

// Name returns the failure discriminator used by raised-failure matching.
func (e *DependencyError) Name() string {
	return "TestError"
}

// Test binds one unit of test code to exactly one pass condition.
//
// Configuration methods replace the condition and return the receiver so calls
// can be chained. They must not be called once the test has been started.
type Test struct {
	mu    sync.RWMutex
	code  condition.Invocable
	cond  condition.Condition
	gates []*Test
}

// New creates a test for code with the default RanWithoutFailure condition.
func New(code condition.Invocable) *Test {
	return &Test{
		code: code,
		cond: &condition.RanWithoutFailure{},
	}
}

// Func creates a test for a function without results. A panic counts as a raised failure.
func Func(fn func()) *Test {
	return New(func() (any, error) {
		fn()
		return nil, nil
	})
}

// Value creates a test for a function returning a plain value.
func Value(fn func() any) *Test {
	return New(func() (any, error) {
		return fn(), nil
	})
}

// Promise creates a test for a function returning a deferred result.
func Promise(fn func() *deferred.Deferred) *Test {
	return New(func() (any, error) {
		return fn(), nil
	})
}

// Invocable returns the code the test runs, including any dependency rewriting.
func (t *Test) Invocable() condition.Invocable {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.code
}

// Condition returns the pass condition of the test.
func (t *Test) Condition() condition.Condition {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cond
}

// Gates returns the tests this test was made dependent on, in the order the
// dependencies were attached.
func (t *Test) Gates() []*Test {
	t.mu.RLock()
	defer t.mu.RUnlock()
	gates := make([]*Test, len(t.gates))
	copy(gates, t.gates)
	return gates
}

// Start runs the pass condition against the test code.
func (t *Test) Start() {
	t.mu.RLock()
	cond, code := t.cond, t.code
	t.mu.RUnlock()
	cond.Run(code)
}

func (t *Test) with(cond condition.Condition) *Test {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cond = cond
	return t
}

// ShouldRun makes the test pass when its code completes without raising.
func (t *Test) ShouldRun() *Test {
	return t.with(&condition.RanWithoutFailure{})
}

// ShouldEqual makes the test pass when its code returns a value equivalent to expected.
func (t *Test) ShouldEqual(expected any) *Test {
	return t.with(&condition.Equality{Expected: expected})
}

// ShouldResolve makes the test pass when its code returns a deferred result that succeeds.
func (t *Test) ShouldResolve() *Test {
	return t.with(&condition.DeferredSettlement{})
}

// ShouldResolveTo makes the test pass when its deferred result succeeds with a
// value equivalent to expected.
func (t *Test) ShouldResolveTo(expected any) *Test {
	return t.with(&condition.DeferredSettlementEquality{Expected: expected})
}

// ShouldReject makes the test pass when its code returns a deferred result that fails.
func (t *Test) ShouldReject() *Test {
	return t.with(&condition.DeferredFailure{})
}

// ShouldRejectTo makes the test pass when its deferred result fails with a
// payload equivalent to expected.
func (t *Test) ShouldRejectTo(expected any) *Test {
	return t.with(&condition.DeferredFailureEquality{Expected: expected})
}

// ShouldThrow makes the test pass when its code raises. A nil expected accepts
// any failure; otherwise the failure must have the same name and message.
func (t *Test) ShouldThrow(expected error) *Test {
	return t.with(&condition.RaisedFailure{Expected: expected})
}

// After makes the test run only once other has settled.
//
// The test code is replaced by code returning a deferred result that settles
// when other's pass condition does. It succeeds with the original code as the
// continuation, unless mustPass is set and other did not pass: then it fails
// with a *DependencyError and the original code is never invoked. The current
// condition is wrapped in a condition.Deferred, so After composes when called
// repeatedly.
//
// The gate's condition is read when the test runs, so reconfiguring other after
// this call is observed.
func (t *Test) After(other *Test, mustPass bool) *Test {
	t.mu.Lock()
	defer t.mu.Unlock()

	original := t.code
	t.code = func() (any, error) {
		return deferred.Go(func() (any, error) {
			gate := other.Condition()
			<-gate.Done()

			if mustPass && gate.Outcome() != condition.Passed {
				return nil, &DependencyError{
					GateOutcome: gate.Outcome(),
					GateDetail:  gate.FailureDetail(),
				}
			}
			return original, nil
		}), nil
	}
	t.cond = &condition.Deferred{Subsequent: t.cond}
	t.gates = append(t.gates, other)
	return t
}
