package orchestrator

import (
	"time"

	"github.com/ajxudir/subtest/pkg/condition"
	"github.com/ajxudir/subtest/pkg/subtest"
)

// Result is the aggregate outcome of a run.
//
// Individual failure details are not part of the result; they are read from
// the condition of each test in Tests.
type Result struct {
	// Outcome is Passed when every test passed, Failed when at least one test
	// failed and none is pending, and Pending otherwise.
	Outcome condition.Outcome

	Passed  int
	Failed  int
	Pending int

	// Duration is the time between Start and the end of Await.
	Duration time.Duration

	// Tests is the suite the run executed.
	Tests *subtest.Suite
}

// Total returns the number of tests in the run.
func (r *Result) Total() int {
	return r.Passed + r.Failed + r.Pending
}

// AllPassed reports whether the run passed as a whole.
func (r *Result) AllPassed() bool {
	return r.Outcome == condition.Passed
}

// aggregate derives the run outcome from per-test counts.
func aggregate(counts subtest.Counts) condition.Outcome {
	switch {
	case counts.Pending > 0:
		return condition.Pending
	case counts.Failed > 0:
		return condition.Failed
	default:
		return condition.Passed
	}
}
