package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ajxudir/subtest/pkg/utils"
)

// Progress is a single-line progress indicator rewritten in place with a
// carriage return.
//
// Fields:
//   - writer: Destination for progress output (typically os.Stderr)
//   - total: Total number of steps
//   - current: Current step number
//   - message: Descriptive message displayed with the progress
//   - enabled: Whether progress output is enabled
//   - lastWidth: Width of the last rendered line, used to clear leftovers
type Progress struct {
	mu        sync.Mutex
	writer    io.Writer
	total     int
	current   int
	message   string
	enabled   bool
	lastWidth int
}

// NewProgress creates an enabled progress indicator.
//
// Parameters:
//   - writer: Destination for progress output (typically os.Stderr)
//   - total: Total number of steps in the operation
//   - message: Descriptive message to display (e.g., "Running tests")
//
// Returns:
//   - *Progress: A new progress indicator
func NewProgress(writer io.Writer, total int, message string) *Progress {
	return &Progress{
		writer:  writer,
		total:   total,
		message: message,
		enabled: true,
	}
}

// SetEnabled enables or disables progress output.
func (p *Progress) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// SetTotal changes the number of steps, e.g. when a suite is filtered after
// the indicator was created.
func (p *Progress) SetTotal(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
}

// SetCurrent sets the current step and re-renders the line.
//
// Rendering happens outside the critical section so a slow writer never blocks
// other callers holding the lock.
func (p *Progress) SetCurrent(current int) {
	p.mu.Lock()
	p.current = current
	total, enabled := p.total, p.enabled
	p.mu.Unlock()

	if enabled && total > 0 {
		p.renderValues(current, total)
	}
}

// Current returns the last step set.
func (p *Progress) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Done renders the final state and ends the line.
func (p *Progress) Done() {
	p.mu.Lock()
	current, total, enabled := p.current, p.total, p.enabled
	p.mu.Unlock()

	if enabled && total > 0 {
		p.renderValues(current, total)
		_, _ = fmt.Fprintln(p.writer)
	}
}

// Clear blanks the progress line and returns the cursor to its start.
func (p *Progress) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled && p.lastWidth > 0 {
		_, _ = fmt.Fprintf(p.writer, "\r%s\r", strings.Repeat(" ", p.lastWidth))
	}
}

// renderValues writes "message: current/total (X%)", padded over the previous
// line, and syncs file writers so CI logs show the line immediately.
func (p *Progress) renderValues(current, total int) {
	line := fmt.Sprintf("\r%s: %d/%d (%d%%)", p.message, current, total, utils.Percentage(current, total))

	p.mu.Lock()
	if len(line) < p.lastWidth {
		line += strings.Repeat(" ", p.lastWidth-len(line))
	}
	p.lastWidth = len(line)
	p.mu.Unlock()

	_, _ = fmt.Fprint(p.writer, line)

	if f, ok := p.writer.(*os.File); ok {
		_ = f.Sync()
	}
}
