package output

import "encoding/xml"

// RunReport is the exported result of one run.
//
// Fields:
//   - XMLName: XML root element name (used only for XML marshaling)
//   - Summary: Aggregate counts and timing
//   - Tests: One entry per test, in suite order
type RunReport struct {
	XMLName xml.Name    `json:"-" xml:"runResult"`
	Summary RunSummary  `json:"summary" xml:"summary"`
	Tests   []TestEntry `json:"tests" xml:"tests>test"`
}

// RunSummary holds the aggregate statistics of a run.
//
// Fields:
//   - Outcome: Aggregate outcome ("passed", "failed" or "pending")
//   - Total: Number of tests
//   - Passed, Failed, Pending: Tests per outcome
//   - Percent: Passed tests as a rounded percentage of Total
//   - DurationMS: Run duration in milliseconds
//   - Error: Why the run ended early, omitted when it finished normally
type RunSummary struct {
	Outcome    string `json:"outcome" xml:"outcome"`
	Total      int    `json:"total" xml:"total"`
	Passed     int    `json:"passed" xml:"passed"`
	Failed     int    `json:"failed" xml:"failed"`
	Pending    int    `json:"pending" xml:"pending"`
	Percent    int    `json:"percent" xml:"percent"`
	DurationMS int64  `json:"duration_ms" xml:"durationMs"`
	Error      string `json:"error,omitempty" xml:"error,omitempty"`
}

// TestEntry is the report line of a single test.
//
// Fields:
//   - Name: Name of the test in the suite
//   - Outcome: "passed", "failed" or "pending"
//   - Condition: Kind of pass condition (e.g., "equality", "deferred")
//   - Waiting: True when a gated test is still waiting on its gate
//   - Detail: Failure detail, omitted unless the test failed
//   - After: Names of the tests this test is gated on, omitted when empty
type TestEntry struct {
	Name      string   `json:"name" xml:"name,attr"`
	Outcome   string   `json:"outcome" xml:"outcome"`
	Condition string   `json:"condition" xml:"condition"`
	Waiting   bool     `json:"waiting,omitempty" xml:"waiting,omitempty"`
	Detail    string   `json:"detail,omitempty" xml:"detail,omitempty"`
	After     []string `json:"after,omitempty" xml:"after>test,omitempty"`
}
