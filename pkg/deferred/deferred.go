// Package deferred provides a settle-once result handle for values that become
// available after the code producing them has returned.
//
// A Deferred is the Go counterpart of a promise: it settles exactly once, either
// into success with a value or into failure with an arbitrary payload. Consumers
// block on Done() or call Await; settlement is broadcast by closing a channel so
// any number of goroutines may wait on the same result.
package deferred

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Deferred is a result that settles exactly once into success or failure.
//
// The zero value is not usable; create instances with New, Resolved, Rejected,
// Go, After or FailAfter.
type Deferred struct {
	mu      sync.Mutex
	done    chan struct{}
	settled bool
	failed  bool
	value   any
	failure any
}

// New creates a pending Deferred.
//
// Returns:
//   - *Deferred: A deferred result that stays pending until Resolve or Reject is called
func New() *Deferred {
	return &Deferred{done: make(chan struct{})}
}

// Resolved creates a Deferred that has already succeeded with value.
//
// Parameters:
//   - value: The success value
//
// Returns:
//   - *Deferred: A settled deferred result
func Resolved(value any) *Deferred {
	d := New()
	d.Resolve(value)
	return d
}

// Rejected creates a Deferred that has already failed with failure.
//
// Parameters:
//   - failure: The failure payload, any value including nil
//
// Returns:
//   - *Deferred: A settled deferred result
func Rejected(failure any) *Deferred {
	d := New()
	d.Reject(failure)
	return d
}

// Go runs fn on a new goroutine and settles the returned Deferred with its result.
//
// It performs the following operations:
//   - Step 1: Starts fn in its own goroutine
//   - Step 2: Resolves with the returned value when fn returns a nil error
//   - Step 3: Rejects with the returned error when fn returns a non-nil error
//   - Step 4: Rejects with the recovered value when fn panics
//
// Parameters:
//   - fn: Function producing the result
//
// Returns:
//   - *Deferred: A deferred result settled when fn finishes
func Go(fn func() (any, error)) *Deferred {
	d := New()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				d.Reject(r)
			}
		}()
		value, err := fn()
		if err != nil {
			d.Reject(err)
			return
		}
		d.Resolve(value)
	}()
	return d
}

// After creates a Deferred that succeeds with value once delay has elapsed.
func After(delay time.Duration, value any) *Deferred {
	d := New()
	time.AfterFunc(delay, func() { d.Resolve(value) })
	return d
}

// FailAfter creates a Deferred that fails with failure once delay has elapsed.
func FailAfter(delay time.Duration, failure any) *Deferred {
	d := New()
	time.AfterFunc(delay, func() { d.Reject(failure) })
	return d
}

// Resolve settles the Deferred into success.
//
// Parameters:
//   - value: The success value
//
// Returns:
//   - bool: true if this call settled the result; false if it was already settled
func (d *Deferred) Resolve(value any) bool {
	return d.settle(false, value, nil)
}

// Reject settles the Deferred into failure.
//
// Parameters:
//   - failure: The failure payload
//
// Returns:
//   - bool: true if this call settled the result; false if it was already settled
func (d *Deferred) Reject(failure any) bool {
	return d.settle(true, nil, failure)
}

func (d *Deferred) settle(failed bool, value, failure any) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.settled {
		return false
	}
	d.settled = true
	d.failed = failed
	d.value = value
	d.failure = failure
	close(d.done)
	return true
}

// Done returns a channel that is closed when the Deferred settles.
func (d *Deferred) Done() <-chan struct{} {
	return d.done
}

// Settled reports whether the Deferred has settled.
func (d *Deferred) Settled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settled
}

// Result returns the settled state of the Deferred.
//
// Returns:
//   - value: The success value, nil unless ok is true
//   - failure: The failure payload, nil unless the result failed
//   - ok: true if the result succeeded; false if it failed or is still pending
func (d *Deferred) Result() (value any, failure any, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.settled {
		return nil, nil, false
	}
	if d.failed {
		return nil, d.failure, false
	}
	return d.value, nil, true
}

// Failed reports whether the Deferred settled into failure.
func (d *Deferred) Failed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settled && d.failed
}

// Await blocks until the Deferred settles or ctx ends.
//
// Parameters:
//   - ctx: Context bounding the wait
//
// Returns:
//   - any: The success value
//   - error: A *FailureError when the result failed, or ctx.Err() when ctx ended first
func (d *Deferred) Await(ctx context.Context) (any, error) {
	select {
	case <-d.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	value, failure, ok := d.Result()
	if !ok {
		return nil, &FailureError{Failure: failure}
	}
	return value, nil
}

// FailureError carries the payload of a failed Deferred through an error return.
type FailureError struct {
	Failure any
}

// Error implements the error interface.
func (e *FailureError) Error() string {
	if err, ok := e.Failure.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("deferred failure: %v", e.Failure)
}

// Unwrap returns the failure payload when it is itself an error.
func (e *FailureError) Unwrap() error {
	if err, ok := e.Failure.(error); ok {
		return err
	}
	return nil
}
