package display

import (
	"fmt"
	"io"

	"github.com/ajxudir/subtest/pkg/constants"
	"github.com/ajxudir/subtest/pkg/orchestrator"
	"github.com/ajxudir/subtest/pkg/utils"
)

// PrintWarnings prints warning messages to the writer, preceded by a blank line.
// Does nothing if warnings is empty.
//
// Example output:
//
//	<blank line>
//	⚠️ deadline is shorter than the poll interval
func PrintWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}

	_, _ = fmt.Fprintln(w)
	for _, warning := range warnings {
		_, _ = fmt.Fprintf(w, "%s %s\n", constants.IconWarn, warning)
	}
}

// PrintSummary prints a one-line verdict for a finished run.
//
// Example output:
//
//	🟢 Passed: 5 of 5 tests passed in 1.02s
//	❌ Failed: 4 of 5 tests passed in 1.02s
func PrintSummary(w io.Writer, result *orchestrator.Result) {
	if result == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "%s %s: %d of %d tests passed in %s\n",
		OutcomeIcon(result.Outcome), OutcomeLabel(result.Outcome),
		result.Passed, result.Total(), utils.FormatDuration(result.Duration))
}

// PrintNoTestsMessage prints a message when a filter selected no tests.
func PrintNoTestsMessage(w io.Writer, filter string) {
	if filter == "" || filter == constants.FilterAll {
		_, _ = fmt.Fprintln(w, "No tests to run")
		return
	}
	_, _ = fmt.Fprintf(w, "No tests match filter %q\n", filter)
}
