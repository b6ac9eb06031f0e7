package output

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/subtest/pkg/condition"
	"github.com/ajxudir/subtest/pkg/deferred"
	"github.com/ajxudir/subtest/pkg/orchestrator"
	"github.com/ajxudir/subtest/pkg/subtest"
)

func sampleResult(t *testing.T) *orchestrator.Result {
	t.Helper()
	gate := subtest.Value(func() any { return 4 }).ShouldEqual(5)
	suite := subtest.NewSuite().
		Add("adds", subtest.Value(func() any { return 2 + 2 }).ShouldEqual(4)).
		Add("gate", gate).
		Add("gated", subtest.Func(func() {}).After(gate, true))

	result, err := orchestrator.RunTests(context.Background(), suite, orchestrator.WithPollInterval(time.Millisecond))
	require.NoError(t, err)
	return result
}

// TestNewRunReport tests conversion of a run result.
//
// It verifies:
//   - Summary mirrors the aggregate counts
//   - Entries keep suite order with condition kinds, details and gates
func TestNewRunReport(t *testing.T) {
	report := NewRunReport(sampleResult(t), nil)

	assert.Equal(t, "failed", report.Summary.Outcome)
	assert.Equal(t, 3, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.Passed)
	assert.Equal(t, 2, report.Summary.Failed)
	assert.Equal(t, 33, report.Summary.Percent)
	assert.Empty(t, report.Summary.Error)

	require.Len(t, report.Tests, 3)
	assert.Equal(t, TestEntry{Name: "adds", Outcome: "passed", Condition: "equals"}, report.Tests[0])
	assert.Equal(t, "gate", report.Tests[1].Name)
	assert.Contains(t, report.Tests[1].Detail, "unmet equality")
	assert.Equal(t, "after", report.Tests[2].Condition)
	assert.Equal(t, []string{"gate"}, report.Tests[2].After)
	assert.Contains(t, report.Tests[2].Detail, "dependent on another test")
}

// TestNewRunReportPartial tests reports of runs that ended early.
func TestNewRunReportPartial(t *testing.T) {
	report := NewRunReport(nil, errors.New("deadline exceeded"))
	assert.Equal(t, "pending", report.Summary.Outcome)
	assert.Equal(t, "deadline exceeded", report.Summary.Error)
	assert.Empty(t, report.Tests)

	gate := subtest.Promise(deferred.New).ShouldResolve()
	gated := subtest.Func(func() {}).After(gate, true)
	suite := subtest.NewSuite().Add("gate", gate).Add("gated", gated)
	result, err := orchestrator.RunTests(context.Background(), suite, orchestrator.WithDeadline(10*time.Millisecond))
	require.Error(t, err)

	report = NewRunReport(result, err)
	assert.Equal(t, "pending", report.Summary.Outcome)
	assert.Equal(t, 2, report.Summary.Pending)
	assert.True(t, report.Tests[1].Waiting)
	assert.False(t, report.Tests[0].Waiting)
	assert.Contains(t, report.Summary.Error, "deadline exceeded")
}

// TestConditionKind tests the labels of every condition variant.
func TestConditionKind(t *testing.T) {
	tests := []struct {
		cond condition.Condition
		want string
	}{
		{&condition.RanWithoutFailure{}, "runs"},
		{&condition.Equality{}, "equals"},
		{&condition.DeferredSettlement{}, "resolves"},
		{&condition.DeferredSettlementEquality{}, "resolves to"},
		{&condition.DeferredFailure{}, "rejects"},
		{&condition.DeferredFailureEquality{}, "rejects to"},
		{&condition.RaisedFailure{}, "throws"},
		{&condition.Deferred{}, "after"},
		{nil, "#N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ConditionKind(tt.cond))
		})
	}
}

// TestWriteRunReport tests every output format.
func TestWriteRunReport(t *testing.T) {
	report := NewRunReport(sampleResult(t), nil)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteRunReport(&buf, FormatJSON, report))
		var decoded RunReport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, report.Summary, decoded.Summary)
		assert.Len(t, decoded.Tests, 3)
	})

	t.Run("xml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteRunReport(&buf, FormatXML, report))
		assert.Contains(t, buf.String(), "<runResult>")
		assert.Contains(t, buf.String(), `<test name="adds">`)
		var decoded RunReport
		require.NoError(t, xml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, report.Summary.Total, decoded.Summary.Total)
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteRunReport(&buf, FormatCSV, report))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "TEST,OUTCOME,CONDITION,AFTER,DETAIL", lines[0])
		assert.Equal(t, "adds,passed,equals,,", lines[1])
		assert.True(t, strings.HasPrefix(lines[3], "gated,failed,after,gate,"))
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteRunReport(&buf, FormatTable, report))
		out := buf.String()
		assert.Contains(t, out, "TEST")
		assert.Contains(t, out, "gated")
		assert.Contains(t, out, "failed: 1 passed, 2 failed, 0 pending of 3 (33%)")
		assert.NotContains(t, out, "Run ended early")
	})

	t.Run("table with run error", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteRunReport(&buf, FormatTable, NewRunReport(nil, errors.New("stopped"))))
		assert.Contains(t, buf.String(), "Run ended early: stopped")
	})

	t.Run("unsupported", func(t *testing.T) {
		var buf bytes.Buffer
		assert.ErrorContains(t, WriteRunReport(&buf, Format("yaml"), report), "unsupported format")
	})
}
