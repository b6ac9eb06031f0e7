package orchestrator_test

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/subtest/pkg/condition"
	"github.com/ajxudir/subtest/pkg/deferred"
	pkgerrors "github.com/ajxudir/subtest/pkg/errors"
	"github.com/ajxudir/subtest/pkg/orchestrator"
	"github.com/ajxudir/subtest/pkg/subtest"
	"github.com/ajxudir/subtest/pkg/testutil"
	"github.com/ajxudir/subtest/pkg/verbose"
)

// lockedBuffer serializes writes from concurrent waiters.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func captureVerbose(t *testing.T) *lockedBuffer {
	t.Helper()
	buf := &lockedBuffer{}
	verbose.SetWriter(buf)
	verbose.Enable()
	t.Cleanup(func() {
		verbose.Disable()
		verbose.SetWriter(os.Stderr)
	})
	return buf
}

// TestRunTestsAggregation tests the aggregate outcome of finished runs.
//
// It verifies:
//   - All passing tests give Passed
//   - Any failure with nothing pending gives Failed
//   - An empty suite passes
func TestRunTestsAggregation(t *testing.T) {
	tests := []struct {
		name  string
		suite *subtest.Suite
		want  condition.Outcome
		pass  int
		fail  int
	}{
		{"all pass", subtest.NewSuite().Add("a", testutil.Passing()).Add("b", testutil.Passing()), condition.Passed, 2, 0},
		{"one fails", subtest.NewSuite().Add("a", testutil.Passing()).Add("b", testutil.Failing("boom")), condition.Failed, 1, 1},
		{"empty", subtest.NewSuite(), condition.Passed, 0, 0},
		{"nil suite", nil, condition.Passed, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := orchestrator.RunTests(context.Background(), tt.suite)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Outcome)
			assert.Equal(t, tt.pass, result.Passed)
			assert.Equal(t, tt.fail, result.Failed)
			assert.Zero(t, result.Pending)
			assert.Equal(t, tt.pass+tt.fail, result.Total())
			assert.Equal(t, tt.want == condition.Passed, result.AllPassed())
		})
	}
}

// TestDeferredAndGatedTests tests a run mixing deferred and gated tests.
func TestDeferredAndGatedTests(t *testing.T) {
	hello := subtest.Promise(func() *deferred.Deferred {
		return deferred.After(20*time.Millisecond, "Hello, world!")
	}).ShouldResolveTo("Hello, world!")
	again := subtest.Value(func() any { return "again" }).ShouldEqual("again").After(hello, true)
	broken := testutil.Failing("boom")
	blocked := testutil.Passing().After(broken, true)

	suite := subtest.NewSuite().
		Add("hello", hello).
		Add("again", again).
		Add("broken", broken).
		Add("blocked", blocked)

	result, err := orchestrator.RunTests(context.Background(), suite, orchestrator.WithPollInterval(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, condition.Failed, result.Outcome)
	assert.Equal(t, 2, result.Passed)
	assert.Equal(t, 2, result.Failed)
	assert.Same(t, suite, result.Tests)
	assert.GreaterOrEqual(t, result.Duration, 20*time.Millisecond)
	assert.ErrorIs(t, blocked.Condition().FailureDetail(), subtest.ErrDependencyNotSatisfied)
}

// TestHeldTestReleasedDuringRun tests that a run waits for a held test.
//
// It verifies:
//   - The run does not finish while a test is pending
//   - Settling the held deferred lets the run finish with every test passed
func TestHeldTestReleasedDuringRun(t *testing.T) {
	held, release := testutil.Held()
	gated := testutil.Passing().After(held, true)
	suite := subtest.NewSuite().Add("held", held).Add("gated", gated)

	run := orchestrator.New(suite, orchestrator.WithPollInterval(time.Millisecond))
	require.NoError(t, run.Start())

	done := make(chan *orchestrator.Result, 1)
	go func() {
		result, err := run.Await(context.Background())
		assert.NoError(t, err)
		done <- result
	}()

	select {
	case <-done:
		t.Fatal("run finished while a test was held")
	case <-time.After(20 * time.Millisecond):
	}

	release.Resolve(nil)
	select {
	case result := <-done:
		assert.Equal(t, condition.Passed, result.Outcome)
		assert.Equal(t, 2, result.Passed)
	case <-time.After(testutil.SettleTimeout):
		t.Fatal("run did not finish after the held test was released")
	}
}

// TestObservers tests tick observer invocation.
//
// It verifies:
//   - Observers run in registration order on every tick
//   - A final tick is observed with nothing pending
//   - A panicking observer does not stop the others
func TestObservers(t *testing.T) {
	buf := captureVerbose(t)

	var mu sync.Mutex
	var calls []string
	var lastPending int
	record := func(label string) orchestrator.Observer {
		return func(tests *subtest.Suite) {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, label)
			lastPending = tests.Counts().Pending
		}
	}

	slow := subtest.Promise(func() *deferred.Deferred {
		return deferred.After(15*time.Millisecond, nil)
	}).ShouldResolve()
	run := orchestrator.New(subtest.NewSuite().Add("slow", slow),
		orchestrator.WithObserver(record("first")),
		orchestrator.WithObserver(func(*subtest.Suite) { panic("observer broke") }),
		orchestrator.WithPollInterval(time.Millisecond),
	)
	run.Observe(record("second"))
	run.Observe(nil)

	result, err := run.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, condition.Passed, result.Outcome)

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(calls), 4)
	require.Zero(t, len(calls)%2)
	for i := 0; i < len(calls); i += 2 {
		assert.Equal(t, "first", calls[i])
		assert.Equal(t, "second", calls[i+1])
	}
	assert.Zero(t, lastPending)
	assert.Contains(t, buf.String(), "observer broke")
}

// TestStartTwice tests that a run can only be started once.
func TestStartTwice(t *testing.T) {
	run := orchestrator.New(subtest.NewSuite().Add("a", testutil.Passing()))
	require.NoError(t, run.Start())
	assert.ErrorIs(t, run.Start(), orchestrator.ErrAlreadyStarted)

	result, err := run.Await(context.Background())
	require.NoError(t, err)
	assert.True(t, result.AllPassed())
}

// TestAwaitBeforeStart tests that Await requires Start.
func TestAwaitBeforeStart(t *testing.T) {
	result, err := orchestrator.New(subtest.NewSuite()).Await(context.Background())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, orchestrator.ErrNotStarted)
}

// TestInvalidSuite tests that Start refuses suites that could never settle.
func TestInvalidSuite(t *testing.T) {
	outside := testutil.Passing()
	suite := subtest.NewSuite().Add("gated", testutil.Passing().After(outside, true))

	result, err := orchestrator.RunTests(context.Background(), suite)
	assert.Nil(t, result)
	assert.ErrorContains(t, err, "invalid suite")
}

// TestDeadline tests that a deadline returns the partial result.
//
// It verifies:
//   - The error wraps ErrDeadlineExceeded
//   - Settled tests are counted and the held test stays pending
//   - Verbose output points at the deadline documentation
func TestDeadline(t *testing.T) {
	buf := captureVerbose(t)
	held, release := testutil.Held()
	t.Cleanup(func() { release.Resolve(nil) })
	suite := subtest.NewSuite().Add("done", testutil.Passing()).Add("held", held)

	result, err := orchestrator.RunTests(context.Background(), suite,
		orchestrator.WithDeadline(20*time.Millisecond),
		orchestrator.WithPollInterval(time.Millisecond),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, orchestrator.ErrDeadlineExceeded)
	require.NotNil(t, result)
	assert.Equal(t, condition.Pending, result.Outcome)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 1, result.Pending)
	assert.Contains(t, buf.String(), "[DEBUG] Deadline of 20ms passed with 1 tests pending")
	assert.Contains(t, buf.String(), "See Run Deadline: run 'subtest demo --help'")
	assert.Equal(t, "Some tests never settled: Raise --deadline, or check that every deferred result is resolved or rejected",
		pkgerrors.GetHint(err))
}

// TestContextCancellation tests that the caller's context bounds the wait.
func TestContextCancellation(t *testing.T) {
	held, release := testutil.Held()
	t.Cleanup(func() { release.Resolve(nil) })
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	result, err := orchestrator.RunTests(ctx, subtest.NewSuite().Add("held", held))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, orchestrator.ErrDeadlineExceeded)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Pending)
}
