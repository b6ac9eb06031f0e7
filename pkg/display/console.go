package display

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ajxudir/subtest/pkg/orchestrator"
	"github.com/ajxudir/subtest/pkg/subtest"
	"github.com/ajxudir/subtest/pkg/utils"
)

// ansiEraseLines moves the cursor up n lines and clears to the end of the screen.
const ansiEraseLines = "\033[%dA\033[J"

// DefaultDetailWidth is the width failure details are clipped to in a frame.
const DefaultDetailWidth = 80

// Console renders a run as frames of text.
//
// Register Observe as a tick observer. A frame is written only when it differs
// from the previous one, so a fast poll interval does not flood the output.
type Console struct {
	mu          sync.Mutex
	w           io.Writer
	redraw      bool
	icons       bool
	detailWidth int
	last        string
	lastLines   int
	frames      int
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithRedraw makes every frame replace the previous one in place.
func WithRedraw(redraw bool) ConsoleOption {
	return func(c *Console) { c.redraw = redraw }
}

// WithIcons prefixes every test line with an outcome icon.
func WithIcons(icons bool) ConsoleOption {
	return func(c *Console) { c.icons = icons }
}

// WithDetailWidth clips failure details to width terminal cells. Zero disables clipping.
func WithDetailWidth(width int) ConsoleOption {
	return func(c *Console) {
		if width >= 0 {
			c.detailWidth = width
		}
	}
}

// NewConsole creates a console writing frames to w.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{w: w, detailWidth: DefaultDetailWidth}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Observe renders tests if the frame changed. It satisfies orchestrator.Observer.
func (c *Console) Observe(tests *subtest.Suite) {
	frame := c.Frame(tests)

	c.mu.Lock()
	defer c.mu.Unlock()
	if frame == c.last {
		return
	}
	if c.redraw && c.lastLines > 0 {
		_, _ = fmt.Fprintf(c.w, ansiEraseLines, c.lastLines)
	}
	_, _ = io.WriteString(c.w, frame)
	c.last = frame
	c.lastLines = strings.Count(frame, "\n")
	c.frames++
}

// Frames returns the number of frames written so far.
func (c *Console) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// Frame renders the current state of tests.
//
// The first line is "Tests passed: P of N (F failed, R running) X%" where X is
// the rounded share of passed tests. Each test follows on its own line in suite
// order, with names padded to a common display width.
func (c *Console) Frame(tests *subtest.Suite) string {
	counts := tests.Counts()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Tests passed: %d of %d (%d failed, %d running) %d%%\n",
		counts.Passed, counts.Total(), counts.Failed, counts.Pending,
		utils.Percentage(counts.Passed, counts.Total()))

	nameWidth := 0
	tests.Each(func(name string, _ *subtest.Test) {
		nameWidth = utils.Max(nameWidth, utils.DisplayWidth(name))
	})

	tests.Each(func(name string, test *subtest.Test) {
		cond := test.Condition()
		marker := Marker(cond)
		if c.detailWidth > 0 {
			marker = utils.Clip(marker, c.detailWidth)
		}
		sb.WriteString("  ")
		if c.icons {
			sb.WriteString(markerIcon(cond))
			sb.WriteString(" ")
		}
		sb.WriteString(utils.ToWidth(name, nameWidth))
		sb.WriteString("  ")
		sb.WriteString(marker)
		sb.WriteString("\n")
	})
	return sb.String()
}

// RunTestsOnConsole runs suite and renders it live to w.
//
// Frames are redrawn in place; pass orchestrator options to set the poll
// interval, a deadline or additional observers.
//
// Parameters:
//   - ctx: Bounds the run
//   - w: Destination for frames (typically os.Stdout)
//   - suite: Tests to run
//   - opts: Options for the underlying orchestrator.Run
//
// Returns:
//   - *orchestrator.Result: Aggregate result of the run
//   - error: Validation errors, or why the run ended early; test failures are not errors
func RunTestsOnConsole(ctx context.Context, w io.Writer, suite *subtest.Suite, opts ...orchestrator.Option) (*orchestrator.Result, error) {
	console := NewConsole(w, WithRedraw(true))
	run := orchestrator.New(suite, opts...)
	run.Observe(console.Observe)
	return run.Execute(ctx)
}
