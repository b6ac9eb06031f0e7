package display

import (
	"io"

	"github.com/ajxudir/subtest/pkg/orchestrator"
	"github.com/ajxudir/subtest/pkg/output"
	"github.com/ajxudir/subtest/pkg/subtest"
)

// Progress re-exports output.Progress for convenience.
type Progress = output.Progress

// NewProgress creates a progress indicator titled "Running tests".
//
// Parameters:
//   - w: Writer to output progress to (typically os.Stderr)
//   - total: Number of tests in the run
//
// Returns:
//   - *Progress: A new progress indicator ready for ProgressObserver
func NewProgress(w io.Writer, total int) *Progress {
	return output.NewProgress(w, total, "Running tests")
}

// ProgressObserver returns a tick observer that reports settled tests as progress.
//
// Example:
//
//	progress := display.NewProgress(os.Stderr, suite.Len())
//	result, err := orchestrator.RunTests(ctx, suite,
//	    orchestrator.WithObserver(display.ProgressObserver(progress)))
//	progress.Done()
func ProgressObserver(p *Progress) orchestrator.Observer {
	last := -1
	return func(tests *subtest.Suite) {
		counts := tests.Counts()
		settled := counts.Passed + counts.Failed
		if settled == last {
			return
		}
		last = settled
		p.SetTotal(counts.Total())
		p.SetCurrent(settled)
	}
}
