// Package condition implements pass conditions: small state machines that decide
// whether one invocation of test code counts as passed or failed.
//
// Every condition starts Pending and settles exactly once into Passed or Failed.
// Settlement is announced by closing the channel returned by Done, so callers
// never need to poll a condition to learn that it finished.
//
// The set of conditions is closed: only the variants declared in this package
// implement Condition. Callers that need variant-specific behaviour use a type
// switch over the concrete types.
package condition

import (
	"fmt"
	"sync"

	"github.com/ajxudir/subtest/pkg/deferred"
	"github.com/ajxudir/subtest/pkg/verbose"
)

// Outcome is the settlement state of a pass condition.
type Outcome int

const (
	// Pending means the condition has not settled yet.
	Pending Outcome = iota
	// Passed means the condition settled successfully.
	Passed
	// Failed means the condition settled unsuccessfully.
	Failed
)

// String returns the lower-case name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

// Settled reports whether the outcome is final.
func (o Outcome) Settled() bool {
	return o == Passed || o == Failed
}

// Invocable is one unit of test code.
//
// Returning a non-nil error or panicking counts as raising a failure. A returned
// *deferred.Deferred is treated as a deferred result; any other value is plain.
type Invocable func() (any, error)

// Condition decides pass or fail for one invocation of test code.
type Condition interface {
	// Run starts evaluating code. Only the first call has any effect.
	Run(code Invocable)

	// Outcome returns the current settlement state.
	Outcome() Outcome

	// FailureDetail describes why the condition failed. It is nil unless
	// Outcome returns Failed.
	FailureDetail() error

	// Done returns a channel closed when the condition settles.
	Done() <-chan struct{}

	isCondition()
}

// state is the settle-once core embedded by every variant.
type state struct {
	mu      sync.Mutex
	outcome Outcome
	detail  error
	done    chan struct{}
	started bool
}

func (s *state) isCondition() {}

// Outcome returns the current settlement state.
func (s *state) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// FailureDetail returns the failure description, nil unless the condition failed.
func (s *state) FailureDetail() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detail
}

// Done returns a channel closed when the condition settles.
func (s *state) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doneLocked()
}

func (s *state) doneLocked() chan struct{} {
	if s.done == nil {
		s.done = make(chan struct{})
	}
	return s.done
}

// begin marks the condition as started and reports whether this was the first call.
func (s *state) begin(owner Condition) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		verbose.Printf("Pass condition %T already started, ignoring repeated run", owner)
		return false
	}
	s.started = true
	s.doneLocked()
	return true
}

func (s *state) pass() bool {
	return s.settle(Passed, nil)
}

func (s *state) fail(detail error) bool {
	return s.settle(Failed, detail)
}

// settle performs the one-time Pending to Passed/Failed transition.
func (s *state) settle(outcome Outcome, detail error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcome != Pending {
		return false
	}
	s.outcome = outcome
	if outcome == Failed {
		if detail == nil {
			detail = ErrUnknownFailure
		}
		s.detail = detail
	}
	close(s.doneLocked())
	return true
}

// invoke calls code, converting a panic into a raised failure.
func invoke(code Invocable) (value any, err error) {
	if code == nil {
		return nil, ErrNilInvocable
	}
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = raised(r)
		}
	}()
	return code()
}

// raised converts a recovered panic value into an error.
func raised(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &PanicError{Value: r}
}

// watch invokes code, which must return a deferred result, and reports the
// settlement of that result to onSuccess or onFailure from a new goroutine.
// Raising or returning a plain value fails s immediately.
func (s *state) watch(code Invocable, onSuccess func(value any), onFailure func(failure any)) {
	value, err := invoke(code)
	if err != nil {
		s.fail(err)
		return
	}

	d, ok := value.(*deferred.Deferred)
	if !ok || d == nil {
		s.fail(fmt.Errorf("%w: got %T", ErrNotDeferred, value))
		return
	}

	go func() {
		<-d.Done()
		v, failure, ok := d.Result()
		if ok {
			onSuccess(v)
			return
		}
		onFailure(failure)
	}()
}
