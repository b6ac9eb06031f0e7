package subtest

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/subtest/pkg/condition"
	"github.com/ajxudir/subtest/pkg/deferred"
	pkgerrors "github.com/ajxudir/subtest/pkg/errors"
)

func waitFor(t *testing.T, test *Test) condition.Outcome {
	t.Helper()
	select {
	case <-test.Condition().Done():
	case <-time.After(2 * time.Second):
		t.Fatal("test did not settle")
	}
	return test.Condition().Outcome()
}

func run(t *testing.T, test *Test) condition.Outcome {
	t.Helper()
	test.Start()
	return waitFor(t, test)
}

// TestFluentConfiguration tests that configuration selects the matching condition.
func TestFluentConfiguration(t *testing.T) {
	code := func() (any, error) { return nil, nil }
	expected := errors.New("x")

	tests := []struct {
		name string
		test *Test
		want condition.Condition
	}{
		{"default", New(code), &condition.RanWithoutFailure{}},
		{"should run", New(code).ShouldRun(), &condition.RanWithoutFailure{}},
		{"should equal", New(code).ShouldEqual(4), &condition.Equality{}},
		{"should resolve", New(code).ShouldResolve(), &condition.DeferredSettlement{}},
		{"should resolve to", New(code).ShouldResolveTo(5), &condition.DeferredSettlementEquality{}},
		{"should reject", New(code).ShouldReject(), &condition.DeferredFailure{}},
		{"should reject to", New(code).ShouldRejectTo(5), &condition.DeferredFailureEquality{}},
		{"should throw", New(code).ShouldThrow(expected), &condition.RaisedFailure{}},
		{"last call wins", New(code).ShouldEqual(1).ShouldReject(), &condition.DeferredFailure{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.IsType(t, tt.want, tt.test.Condition())
			assert.Equal(t, condition.Pending, tt.test.Condition().Outcome())
		})
	}

	eq := New(code).ShouldEqual(4).Condition().(*condition.Equality)
	assert.Equal(t, 4, eq.Expected)
	thr := New(code).ShouldThrow(expected).Condition().(*condition.RaisedFailure)
	assert.Same(t, expected, thr.Expected)
}

// TestScenarios tests the documented end-to-end scenarios.
//
// It verifies:
//   - Value(2+2).ShouldEqual(4) passes
//   - Raising with ShouldThrow(nil) passes
//   - Raising "x" with ShouldThrow("y") fails
//   - A deferred 5 with ShouldResolveTo(5) passes
func TestScenarios(t *testing.T) {
	assert.Equal(t, condition.Passed, run(t, Value(func() any { return 2 + 2 }).ShouldEqual(4)))

	throwX := func() { panic(errors.New("x")) }
	assert.Equal(t, condition.Passed, run(t, Func(throwX).ShouldThrow(nil)))
	assert.Equal(t, condition.Failed, run(t, Func(throwX).ShouldThrow(errors.New("y"))))

	resolve5 := Promise(func() *deferred.Deferred { return deferred.Resolved(5) }).ShouldResolveTo(5)
	assert.Equal(t, condition.Passed, run(t, resolve5))
}

// TestAfterMustPassGateFails tests that a failed required gate fails the
// dependent test without running its code.
func TestAfterMustPassGateFails(t *testing.T) {
	var invoked atomic.Bool
	gate := Func(func() { panic("gate broke") })
	dependent := Func(func() { invoked.Store(true) }).After(gate, true)

	dependent.Start()
	assert.True(t, dependent.Condition().(*condition.Deferred).Waiting())
	gate.Start()

	assert.Equal(t, condition.Failed, waitFor(t, dependent))
	assert.False(t, invoked.Load())
	assert.False(t, dependent.Condition().(*condition.Deferred).Waiting())

	detail := dependent.Condition().FailureDetail()
	assert.ErrorIs(t, detail, ErrDependencyNotSatisfied)
	var depErr *DependencyError
	require.ErrorAs(t, detail, &depErr)
	assert.Equal(t, condition.Failed, depErr.GateOutcome)
	assert.Contains(t, depErr.Error(), "gate failed")
	assert.Contains(t, depErr.Error(), "gate broke")
}

// TestAfterWithoutMustPass tests that an optional gate only orders execution.
func TestAfterWithoutMustPass(t *testing.T) {
	var invoked atomic.Bool
	gate := Func(func() { panic("gate broke") })
	dependent := Value(func() any {
		invoked.Store(true)
		return "ran"
	}).ShouldEqual("ran").After(gate, false)

	gate.Start()
	assert.Equal(t, condition.Passed, run(t, dependent))
	assert.True(t, invoked.Load())
	assert.False(t, dependent.Condition().(*condition.Deferred).Waiting())
}

// TestAfterWaitsForDeferredGate tests ordering against a gate settling later.
func TestAfterWaitsForDeferredGate(t *testing.T) {
	release := deferred.New()
	var gateSettled atomic.Bool
	gate := Promise(func() *deferred.Deferred { return release }).ShouldResolveTo("Hello, world!")
	dependent := Func(func() {
		if !gateSettled.Load() {
			panic("ran before gate settled")
		}
	}).After(gate, true)

	gate.Start()
	dependent.Start()

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, condition.Pending, dependent.Condition().Outcome())

	gateSettled.Store(true)
	release.Resolve("Hello, world!")

	assert.Equal(t, condition.Passed, waitFor(t, dependent))
	assert.Equal(t, condition.Passed, gate.Condition().Outcome())
}

// TestAfterComposes tests that After can be chained on several gates.
func TestAfterComposes(t *testing.T) {
	first := Value(func() any { return 1 }).ShouldEqual(1)
	second := Value(func() any { return 2 }).ShouldEqual(3)
	dependent := Value(func() any { return "x" }).ShouldEqual("x").
		After(first, true).
		After(second, true)

	outer, ok := dependent.Condition().(*condition.Deferred)
	require.True(t, ok)
	inner, ok := outer.Subsequent.(*condition.Deferred)
	require.True(t, ok)
	assert.IsType(t, &condition.Equality{}, inner.Subsequent)
	assert.Equal(t, []*Test{first, second}, dependent.Gates())

	first.Start()
	second.Start()
	assert.Equal(t, condition.Failed, run(t, dependent))
	assert.ErrorIs(t, dependent.Condition().FailureDetail(), ErrDependencyNotSatisfied)
}

// TestAfterObservesGateReconfiguration tests that the gate condition is read at run time.
func TestAfterObservesGateReconfiguration(t *testing.T) {
	gate := Value(func() any { return 1 })
	dependent := Func(func() {}).After(gate, true)
	gate.ShouldEqual(2)

	gate.Start()
	assert.Equal(t, condition.Failed, run(t, dependent))
}

// TestSuiteOrdering tests that the suite keeps insertion order.
func TestSuiteOrdering(t *testing.T) {
	a, b, c := Func(func() {}), Func(func() {}), Func(func() {})
	suite := NewSuite().Add("zeta", a).Add("alpha", b).Add("mid", c)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, suite.Names())
	assert.Equal(t, 3, suite.Len())

	replacement := Func(func() {})
	suite.Add("zeta", replacement)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, suite.Names())
	got, ok := suite.Get("zeta")
	require.True(t, ok)
	assert.Same(t, replacement, got)

	_, ok = suite.Get("missing")
	assert.False(t, ok)

	name, ok := suite.NameOf(c)
	assert.True(t, ok)
	assert.Equal(t, "mid", name)
	_, ok = suite.NameOf(a)
	assert.False(t, ok)

	var visited []string
	suite.Each(func(name string, _ *Test) { visited = append(visited, name) })
	assert.Equal(t, suite.Names(), visited)
}

// TestSuiteCounts tests outcome counting.
func TestSuiteCounts(t *testing.T) {
	pass := Func(func() {})
	fail := Func(func() { panic("no") })
	pending := Promise(deferred.New).ShouldResolve()
	suite := NewSuite().Add("pass", pass).Add("fail", fail).Add("pending", pending)

	assert.Equal(t, Counts{Pending: 3}, suite.Counts())

	run(t, pass)
	run(t, fail)
	pending.Start()

	counts := suite.Counts()
	assert.Equal(t, Counts{Passed: 1, Failed: 1, Pending: 1}, counts)
	assert.Equal(t, 3, counts.Total())
}

// TestSuiteValidate tests dependency validation.
func TestSuiteValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		gate := Func(func() {})
		suite := NewSuite().Add("gate", gate).Add("dep", Func(func() {}).After(gate, true))
		assert.NoError(t, suite.Validate())
	})

	t.Run("missing gate", func(t *testing.T) {
		gate := Func(func() {})
		suite := NewSuite().Add("dep", Func(func() {}).After(gate, true))
		assert.ErrorContains(t, suite.Validate(), "not part of the suite")
	})

	t.Run("self dependency", func(t *testing.T) {
		self := Func(func() {})
		self.After(self, false)
		assert.ErrorContains(t, NewSuite().Add("self", self).Validate(), "depends on itself")
	})

	t.Run("cycle", func(t *testing.T) {
		a, b := Func(func() {}), Func(func() {})
		a.After(b, false)
		b.After(a, false)
		err := NewSuite().Add("a", a).Add("b", b).Validate()
		assert.ErrorContains(t, err, "circular dependency")
	})

	t.Run("nil test", func(t *testing.T) {
		assert.ErrorContains(t, NewSuite().Add("nil", nil).Validate(), "is nil")
	})
}

// TestSuiteErrorHints tests that suite errors carry a resolution hint.
//
// It verifies:
//   - Cycles, self dependencies and missing gates each resolve to a hint
//   - Invalid filter patterns resolve to a hint
func TestSuiteErrorHints(t *testing.T) {
	a, b := Func(func() {}), Func(func() {})
	a.After(b, false)
	b.After(a, false)
	assert.Equal(t, "Tests are gated on each other: Remove one of the After calls forming the cycle",
		pkgerrors.GetHint(NewSuite().Add("a", a).Add("b", b).Validate()))

	self := Func(func() {})
	self.After(self, false)
	assert.Contains(t, pkgerrors.GetHint(NewSuite().Add("self", self).Validate()), "gated on itself")

	outside := Func(func() {})
	missing := NewSuite().Add("dep", Func(func() {}).After(outside, true)).Validate()
	assert.Contains(t, pkgerrors.EnhanceErrorWithHint(missing), "A gate was not added to the suite")

	_, err := NewSuite().Filter("[")
	require.Error(t, err)
	assert.Equal(t, "Filter is not a valid glob: Use doublestar syntax, e.g. 'greeting/**' or '*/hello'", pkgerrors.GetHint(err))
}

// TestSuiteFilter tests glob selection with transitive gates.
func TestSuiteFilter(t *testing.T) {
	gate := Func(func() {})
	suite := NewSuite().
		Add("greeting/hello", gate).
		Add("greeting/user", Func(func() {})).
		Add("errors/throw", Func(func() {})).
		Add("errors/again", Func(func() {}).After(gate, true))

	filtered, err := suite.Filter("errors/**")
	require.NoError(t, err)
	assert.Equal(t, []string{"greeting/hello", "errors/throw", "errors/again"}, filtered.Names())
	assert.NoError(t, filtered.Validate())

	same, err := suite.Filter("")
	require.NoError(t, err)
	assert.Same(t, suite, same)

	none, err := suite.Filter("nothing/*")
	require.NoError(t, err)
	assert.Zero(t, none.Len())

	_, err = suite.Filter("[")
	assert.Error(t, err)
}
