// Package orchestrator runs a suite of tests and aggregates their outcomes.
//
// A Run is the explicit context of one execution: the suite, its own list of
// tick observers, the tick period and an optional deadline. Nothing is shared
// between runs, so several suites can be executed side by side.
//
// Typical usage:
//
//	result, err := orchestrator.RunTests(ctx, suite,
//	    orchestrator.WithObserver(console.Observe),
//	    orchestrator.WithDeadline(5*time.Second),
//	)
//
// Every tick the run scans the outcome of each test, invokes the observers in
// registration order and finishes once no test is pending. Ticks fire on the
// poll interval and immediately whenever a test settles.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	pkgerrors "github.com/ajxudir/subtest/pkg/errors"
	"github.com/ajxudir/subtest/pkg/subtest"
	"github.com/ajxudir/subtest/pkg/verbose"
)

var (
	// ErrAlreadyStarted is returned when Start is called on a run that has started.
	ErrAlreadyStarted = errors.New("run already started")

	// ErrNotStarted is returned when Await is called before Start.
	ErrNotStarted = errors.New("run not started")

	// ErrDeadlineExceeded is wrapped by the error Await returns when the
	// deadline passes while tests are still pending.
	ErrDeadlineExceeded = errors.New("deadline exceeded with tests pending")
)

func init() {
	pkgerrors.RegisterHint("deadline exceeded", "Some tests never settled",
		"Raise --deadline, or check that every deferred result is resolved or rejected")
}

// Observer is invoked once per tick with the suite being run.
type Observer func(tests *subtest.Suite)

// Run is the context of one execution of a suite.
type Run struct {
	mu        sync.Mutex
	suite     *subtest.Suite
	observers []Observer
	interval  time.Duration
	deadline  time.Duration
	started   bool
	startedAt time.Time
}

// New creates a run for suite.
//
// Parameters:
//   - suite: Tests to execute; nil is treated as an empty suite
//   - opts: Tick period, deadline and observers
//
// Returns:
//   - *Run: A run that has not been started
func New(suite *subtest.Suite, opts ...Option) *Run {
	if suite == nil {
		suite = subtest.NewSuite()
	}
	r := &Run{
		suite:    suite,
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Suite returns the suite the run executes.
func (r *Run) Suite() *subtest.Suite {
	return r.suite
}

// Observe registers obs after the run was created. It may be called at any
// time; the observer is invoked from the next tick on.
func (r *Run) Observe(obs Observer) {
	if obs == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, obs)
}

// Start validates the suite and starts the pass condition of every test.
//
// It performs the following operations:
//   - Step 1: Rejects a second call with ErrAlreadyStarted
//   - Step 2: Validates gates so the run cannot stall on a missing or cyclic dependency
//   - Step 3: Calls Start on every test in suite order
//
// Tests with a synchronous condition settle before Start returns. Deferred and
// gated tests settle later, on their own goroutines.
//
// Returns:
//   - error: ErrAlreadyStarted, or the validation error of the suite; otherwise nil
func (r *Run) Start() error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return ErrAlreadyStarted
	}
	if err := r.suite.Validate(); err != nil {
		r.mu.Unlock()
		return fmt.Errorf("invalid suite: %w", err)
	}
	r.started = true
	r.startedAt = time.Now()
	r.mu.Unlock()

	verbose.RunStarted(r.suite.Len(), r.interval, r.deadline)

	r.suite.Each(func(_ string, test *subtest.Test) {
		test.Start()
	})
	return nil
}

// Await ticks until no test is pending and returns the aggregate result.
//
// When the deadline configured with WithDeadline passes, or ctx ends, before
// every test has settled, Await returns the partial result together with an
// error wrapping ErrDeadlineExceeded or the context error. Test failures are
// never returned as errors; they are reflected in the result.
//
// Parameters:
//   - ctx: Bounds the wait in addition to the run deadline
//
// Returns:
//   - *Result: Aggregate outcome; partial when an error is returned
//   - error: ErrNotStarted, or the reason the wait ended early; otherwise nil
func (r *Run) Await(ctx context.Context) (*Result, error) {
	r.mu.Lock()
	started := r.started
	r.mu.Unlock()
	if !started {
		return nil, ErrNotStarted
	}

	if r.deadline > 0 {
		var cancelDeadline context.CancelFunc
		ctx, cancelDeadline = context.WithTimeoutCause(ctx, r.deadline, ErrDeadlineExceeded)
		defer cancelDeadline()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wake := make(chan struct{}, 1)
	g, gctx := errgroup.WithContext(ctx)
	r.suite.Each(func(name string, test *subtest.Test) {
		cond := test.Condition()
		g.Go(func() error {
			select {
			case <-cond.Done():
				verbose.TestSettled(name, cond.Outcome().String(), cond.FailureDetail())
				select {
				case wake <- struct{}{}:
				default:
				}
			case <-gctx.Done():
			}
			return nil
		})
	})

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		counts := r.suite.Counts()
		r.notify()
		if counts.Pending == 0 {
			cancel()
			_ = g.Wait()
			return r.finish(counts), nil
		}

		select {
		case <-ticker.C:
		case <-wake:
		case <-ctx.Done():
			err := r.interrupted(ctx)
			cancel()
			_ = g.Wait()
			return r.finish(r.suite.Counts()), err
		}
	}
}

// Execute starts the run and waits for it to finish.
func (r *Run) Execute(ctx context.Context) (*Result, error) {
	if err := r.Start(); err != nil {
		return nil, err
	}
	return r.Await(ctx)
}

// RunTests executes suite with the given options and returns its result.
func RunTests(ctx context.Context, suite *subtest.Suite, opts ...Option) (*Result, error) {
	return New(suite, opts...).Execute(ctx)
}

// notify invokes every observer in registration order. A panicking observer is
// logged and does not stop the others.
func (r *Run) notify() {
	r.mu.Lock()
	observers := make([]Observer, len(r.observers))
	copy(observers, r.observers)
	r.mu.Unlock()

	for i, obs := range observers {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					verbose.ObserverPanicked(i, rec)
				}
			}()
			obs(r.suite)
		}()
	}
}

func (r *Run) interrupted(ctx context.Context) error {
	if errors.Is(context.Cause(ctx), ErrDeadlineExceeded) {
		verbose.WithDocRef("deadline", fmt.Sprintf("Deadline of %s passed with %d tests pending", r.deadline, r.suite.Counts().Pending))
		return fmt.Errorf("%w after %s", ErrDeadlineExceeded, r.deadline)
	}
	return fmt.Errorf("run interrupted: %w", ctx.Err())
}

func (r *Run) finish(counts subtest.Counts) *Result {
	result := &Result{
		Outcome:  aggregate(counts),
		Passed:   counts.Passed,
		Failed:   counts.Failed,
		Pending:  counts.Pending,
		Duration: time.Since(r.startedAt),
		Tests:    r.suite,
	}
	verbose.RunFinished(result.Outcome.String(), result.Passed, result.Failed, result.Pending, result.Duration)
	return result
}
