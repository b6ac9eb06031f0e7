// Package verbose provides debug logging for test runs with documentation references.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	enabled bool
	writer  io.Writer = os.Stderr
)

// Enable turns on verbose logging and allows debug messages to be printed.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Sets the enabled flag to true
//   - Releases the write lock
//
// Returns:
//   - None
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off verbose logging and prevents debug messages from being printed.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Sets the enabled flag to false
//   - Releases the write lock
//
// Returns:
//   - None
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled returns whether verbose logging is currently enabled.
//
// It performs the following operations:
//   - Acquires a read lock to ensure thread-safe access
//   - Reads the enabled flag value
//   - Releases the read lock
//
// Returns:
//   - bool: true if verbose logging is enabled, false otherwise
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter sets the output writer for verbose messages.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Updates the writer if the provided writer is not nil
//   - Releases the write lock
//
// Parameters:
//   - w: The io.Writer to use for output; if nil, the writer remains unchanged
//
// Returns:
//   - None
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		writer = w
	}
}

// getWriter returns the current writer with proper locking for internal use.
//
// It performs the following operations:
//   - Acquires a read lock to ensure thread-safe access
//   - Reads the writer value
//   - Releases the read lock
//
// Returns:
//   - io.Writer: The currently configured output writer
func getWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return writer
}

// isEnabled returns whether verbose is enabled with proper locking for internal use.
//
// It performs the following operations:
//   - Acquires a read lock to ensure thread-safe access
//   - Reads the enabled flag value
//   - Releases the read lock
//
// Returns:
//   - bool: true if verbose logging is enabled, false otherwise
func isEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Printf prints a formatted verbose message if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Formats and prints the message with [DEBUG] prefix to the configured writer
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
//
// Returns:
//   - None
func Printf(format string, args ...any) {
	if isEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] "+format+"\n", args...)
	}
}

// Info prints an informational verbose message if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the message with [DEBUG] prefix to the configured writer
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - msg: The message string to print
//
// Returns:
//   - None
func Info(msg string) {
	if isEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] %s\n", msg)
	}
}

// Infof prints a formatted informational verbose message if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Formats and prints the message with [DEBUG] prefix to the configured writer
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
//
// Returns:
//   - None
func Infof(format string, args ...any) {
	if isEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] "+format+"\n", args...)
	}
}

// DocRef represents a documentation reference for a specific topic.
//
// It contains information to help users find relevant documentation
// when a run behaves unexpectedly or the configuration is rejected.
//
// Fields:
//   - Topic: A human-readable name for the documentation topic
//   - Command: The command that prints the relevant documentation
//   - Hint: A brief description of what the documentation covers
type DocRef struct {
	Topic   string
	Command string
	Hint    string
}

// Common documentation references.
var docRefs = map[string]DocRef{
	"config": {
		Topic:   "Configuration",
		Command: "subtest config --show-schema",
		Hint:    "Lists every .subtest.yml key with its type; --show-defaults prints the defaults",
	},
	"conditions": {
		Topic:   "Pass Conditions",
		Command: "go doc github.com/ajxudir/subtest/pkg/condition",
		Hint:    "Each test settles through exactly one pass condition",
	},
	"after": {
		Topic:   "Test Dependencies",
		Command: "go doc github.com/ajxudir/subtest/pkg/subtest Test.After",
		Hint:    "Gated tests wait for their gate to settle before running",
	},
	"deadline": {
		Topic:   "Run Deadline",
		Command: "subtest demo --help",
		Hint:    "A zero deadline waits forever for pending tests",
	},
	"cli": {
		Topic:   "CLI Reference",
		Command: "subtest --help",
		Hint:    "See all available commands and flags",
	},
}

// WithDocRef prints a verbose message with a documentation reference if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the message with [DEBUG] prefix
//   - If the topic is found in docRefs, appends the documentation command and hint
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - topic: The documentation topic key (e.g., "config", "after", "deadline")
//   - message: The main message to print
func WithDocRef(topic, message string) {
	if !isEnabled() {
		return
	}
	w := getWriter()
	_, _ = fmt.Fprintf(w, "[DEBUG] %s\n", message)
	if ref, ok := docRefs[strings.ToLower(topic)]; ok {
		_, _ = fmt.Fprintf(w, "        See %s: run '%s'\n", ref.Topic, ref.Command)
		_, _ = fmt.Fprintf(w, "        Hint: %s\n", ref.Hint)
	}
}

// RunStarted logs the start of an orchestrated run if enabled.
//
// Parameters:
//   - tests: Number of tests in the run
//   - interval: The poll interval used by the run
//   - deadline: The run deadline, zero when the run may wait forever
func RunStarted(tests int, interval, deadline time.Duration) {
	if !isEnabled() {
		return
	}
	w := getWriter()
	_, _ = fmt.Fprintf(w, "[DEBUG] Starting %d tests (poll every %s)\n", tests, interval)
	if deadline > 0 {
		_, _ = fmt.Fprintf(w, "        Deadline: %s\n", deadline)
	}
}

// TestSettled logs the settlement of a single test if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the test name and its outcome
//   - Prints the failure detail truncated to 100 characters, when present
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - name: The test name
//   - outcome: The settled outcome label (e.g., "passed", "failed")
//   - detail: The failure detail, nil for passing tests
func TestSettled(name, outcome string, detail error) {
	if !isEnabled() {
		return
	}
	w := getWriter()
	_, _ = fmt.Fprintf(w, "[DEBUG] Test '%s' %s\n", name, outcome)
	if detail != nil {
		_, _ = fmt.Fprintf(w, "        | %s\n", truncate(detail.Error(), 100))
	}
}

// RunFinished logs the aggregate result of a run if enabled.
//
// Parameters:
//   - outcome: The aggregate outcome label
//   - passed: Number of passed tests
//   - failed: Number of failed tests
//   - pending: Number of tests still pending (non-zero only when the run was cut short)
//   - elapsed: Wall time of the run
func RunFinished(outcome string, passed, failed, pending int, elapsed time.Duration) {
	if isEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Run %s: %d passed, %d failed, %d pending (%s)\n",
			outcome, passed, failed, pending, elapsed.Round(time.Millisecond))
	}
}

// ObserverPanicked logs a tick observer that panicked if enabled.
//
// Parameters:
//   - index: Position of the observer in registration order
//   - recovered: The recovered panic value
func ObserverPanicked(index int, recovered any) {
	if isEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Tick observer #%d panicked: %v\n", index, recovered)
	}
}

// ConfigLoaded logs which config file was loaded if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the path to the loaded configuration file
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - path: The file path to the configuration file that was loaded
//
// Returns:
//   - None
func ConfigLoaded(path string) {
	if isEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Config loaded: %s\n", path)
	}
}

// truncate shortens a string to the specified maximum length.
//
// It performs the following operations:
//   - Returns the original string if it's within the maxLen limit
//   - Truncates the string to maxLen-3 and appends "..." if it exceeds maxLen
//
// Parameters:
//   - s: The string to truncate
//   - maxLen: The maximum length for the returned string (must be at least 3)
//
// Returns:
//   - string: The original or truncated string with "..." suffix if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
