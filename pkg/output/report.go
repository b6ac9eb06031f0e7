package output

import (
	"github.com/ajxudir/subtest/pkg/condition"
	"github.com/ajxudir/subtest/pkg/constants"
	"github.com/ajxudir/subtest/pkg/orchestrator"
	"github.com/ajxudir/subtest/pkg/subtest"
	"github.com/ajxudir/subtest/pkg/utils"
)

// NewRunReport converts the result of a run into its exported form.
//
// It performs the following operations:
//   - Step 1: Copies the aggregate counts and duration of result
//   - Step 2: Adds one entry per test in suite order, reading each failure
//     detail from the test's condition
//   - Step 3: Records runErr, the reason the run ended early, when set
//
// Parameters:
//   - result: The run result; nil yields an empty report
//   - runErr: Error returned together with result, e.g. a missed deadline
//
// Returns:
//   - *RunReport: The report, ready for WriteRunReport
func NewRunReport(result *orchestrator.Result, runErr error) *RunReport {
	report := &RunReport{Tests: make([]TestEntry, 0)}
	if runErr != nil {
		report.Summary.Error = runErr.Error()
	}
	if result == nil {
		report.Summary.Outcome = condition.Pending.String()
		return report
	}

	report.Summary.Outcome = result.Outcome.String()
	report.Summary.Total = result.Total()
	report.Summary.Passed = result.Passed
	report.Summary.Failed = result.Failed
	report.Summary.Pending = result.Pending
	report.Summary.Percent = utils.Percentage(result.Passed, result.Total())
	report.Summary.DurationMS = result.Duration.Milliseconds()

	if result.Tests == nil {
		return report
	}
	result.Tests.Each(func(name string, test *subtest.Test) {
		report.Tests = append(report.Tests, newTestEntry(result.Tests, name, test))
	})
	return report
}

func newTestEntry(suite *subtest.Suite, name string, test *subtest.Test) TestEntry {
	cond := test.Condition()
	entry := TestEntry{
		Name:      name,
		Outcome:   cond.Outcome().String(),
		Condition: ConditionKind(cond),
	}
	if gated, ok := cond.(*condition.Deferred); ok && cond.Outcome() == condition.Pending {
		entry.Waiting = gated.Waiting()
	}
	if cond.Outcome() == condition.Failed {
		entry.Detail = constants.PlaceholderUnknownError
		if detail := cond.FailureDetail(); detail != nil {
			entry.Detail = detail.Error()
		}
	}
	for _, gate := range test.Gates() {
		if gateName, ok := suite.NameOf(gate); ok {
			entry.After = append(entry.After, gateName)
		}
	}
	return entry
}

// ConditionKind returns a short label for the kind of pass condition.
func ConditionKind(c condition.Condition) string {
	switch c.(type) {
	case *condition.RanWithoutFailure:
		return "runs"
	case *condition.Equality:
		return "equals"
	case *condition.DeferredSettlement:
		return "resolves"
	case *condition.DeferredSettlementEquality:
		return "resolves to"
	case *condition.DeferredFailure:
		return "rejects"
	case *condition.DeferredFailureEquality:
		return "rejects to"
	case *condition.RaisedFailure:
		return "throws"
	case *condition.Deferred:
		return "after"
	default:
		return constants.PlaceholderNA
	}
}
