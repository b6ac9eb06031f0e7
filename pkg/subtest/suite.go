package subtest

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/subtest/pkg/condition"
	pkgerrors "github.com/ajxudir/subtest/pkg/errors"
)

func init() {
	pkgerrors.RegisterHint("circular dependency", "Tests are gated on each other",
		"Remove one of the After calls forming the cycle")
	pkgerrors.RegisterHint("depends on itself", "A test is gated on itself",
		"Pass a different test to After")
	pkgerrors.RegisterHint("not part of the suite", "A gate was not added to the suite",
		"Add the gate test to the suite, or widen --filter so it is selected")
	pkgerrors.RegisterHint("invalid filter pattern", "Filter is not a valid glob",
		"Use doublestar syntax, e.g. 'greeting/**' or '*/hello'")
}

// Suite is a named collection of tests.
//
// Names are kept in insertion order, which is the order used for reports and
// live display. Re-adding an existing name replaces the test but keeps its
// position. A Suite must not be modified while a run is in progress.
type Suite struct {
	tests *orderedmap.OrderedMap
}

// Counts holds the number of tests per outcome.
type Counts struct {
	Passed  int
	Failed  int
	Pending int
}

// Total returns the number of tests counted.
func (c Counts) Total() int {
	return c.Passed + c.Failed + c.Pending
}

// NewSuite creates an empty Suite.
func NewSuite() *Suite {
	return &Suite{tests: orderedmap.New()}
}

// Add stores test under name and returns the suite for chaining.
func (s *Suite) Add(name string, test *Test) *Suite {
	s.tests.Set(name, test)
	return s
}

// Get returns the test stored under name.
func (s *Suite) Get(name string) (*Test, bool) {
	v, ok := s.tests.Get(name)
	if !ok {
		return nil, false
	}
	test, ok := v.(*Test)
	return test, ok
}

// Names returns the test names in insertion order.
func (s *Suite) Names() []string {
	return s.tests.Keys()
}

// Len returns the number of tests.
func (s *Suite) Len() int {
	return len(s.tests.Keys())
}

// Each calls fn for every test in insertion order.
func (s *Suite) Each(fn func(name string, test *Test)) {
	for _, name := range s.tests.Keys() {
		if test, ok := s.Get(name); ok {
			fn(name, test)
		}
	}
}

// NameOf returns the name under which test is stored.
func (s *Suite) NameOf(test *Test) (string, bool) {
	for _, name := range s.tests.Keys() {
		if candidate, ok := s.Get(name); ok && candidate == test {
			return name, true
		}
	}
	return "", false
}

// Counts scans the current outcome of every test.
func (s *Suite) Counts() Counts {
	var counts Counts
	s.Each(func(_ string, test *Test) {
		switch test.Condition().Outcome() {
		case condition.Passed:
			counts.Passed++
		case condition.Failed:
			counts.Failed++
		default:
			counts.Pending++
		}
	})
	return counts
}

// Validate checks that the suite can settle.
//
// Every gate attached with After must be part of the suite, and gates must not
// form a cycle; either would leave a gated test pending forever.
func (s *Suite) Validate() error {
	index := make(map[*Test]string, s.Len())
	s.Each(func(name string, test *Test) {
		index[test] = name
	})

	for _, name := range s.Names() {
		test, _ := s.Get(name)
		if test == nil {
			return fmt.Errorf("test %q is nil", name)
		}
		for _, gate := range test.Gates() {
			if gate == test {
				return fmt.Errorf("test %q depends on itself", name)
			}
			if _, ok := index[gate]; !ok {
				return fmt.Errorf("test %q depends on a test that is not part of the suite", name)
			}
		}
	}

	visited := make(map[*Test]bool)
	inStack := make(map[*Test]bool)

	var visit func(test *Test) error
	visit = func(test *Test) error {
		if inStack[test] {
			return fmt.Errorf("circular dependency detected involving %q", index[test])
		}
		if visited[test] {
			return nil
		}
		inStack[test] = true
		for _, gate := range test.Gates() {
			if err := visit(gate); err != nil {
				return err
			}
		}
		inStack[test] = false
		visited[test] = true
		return nil
	}

	for _, name := range s.Names() {
		test, _ := s.Get(name)
		if err := visit(test); err != nil {
			return err
		}
	}
	return nil
}

// Filter returns a suite with the tests whose name matches pattern, plus the
// gates they depend on, in the original order.
//
// Patterns use doublestar syntax, so "greeting/**" selects every test whose
// name starts with the "greeting/" segment. An empty pattern keeps every test.
func (s *Suite) Filter(pattern string) (*Suite, error) {
	if pattern == "" {
		return s, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid filter pattern %q", pattern)
	}

	keep := make(map[*Test]bool)
	var include func(test *Test)
	include = func(test *Test) {
		if test == nil || keep[test] {
			return
		}
		keep[test] = true
		for _, gate := range test.Gates() {
			include(gate)
		}
	}

	for _, name := range s.Names() {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			return nil, fmt.Errorf("match %q against %q: %w", name, pattern, err)
		}
		if matched {
			test, _ := s.Get(name)
			include(test)
		}
	}

	filtered := NewSuite()
	s.Each(func(name string, test *Test) {
		if test != nil && keep[test] {
			filtered.Add(name, test)
		}
	})
	return filtered, nil
}
