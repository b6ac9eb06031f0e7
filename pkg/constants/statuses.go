// Package constants provides centralized string constants used throughout the application.
// This eliminates magic strings and provides a single source of truth for outcome labels.
package constants

// Outcome label constants are the upper-case markers printed per test.
const (
	// LabelPass marks a test whose pass condition settled as passed.
	LabelPass = "PASS"

	// LabelFail marks a test whose pass condition settled as failed.
	LabelFail = "FAIL"

	// LabelWait marks a test that has not settled yet.
	LabelWait = "WAIT"

	// LabelDeferred qualifies a waiting test whose gate has not opened yet.
	LabelDeferred = "deferred"
)

// Placeholder values for display when data is not available.
const (
	// PlaceholderUnknownError is shown when a test failed without any detail.
	PlaceholderUnknownError = "Unknown error"

	// PlaceholderNA is used when a value is not available.
	PlaceholderNA = "#N/A"
)

// Filter constants.
const (
	// FilterAll is the filter value that keeps every test.
	FilterAll = "all"
)

// Icon constants for status display.
// These provide visual indicators for test states in CLI output.
const (
	// IconSuccess indicates a passed test (green circle).
	IconSuccess = "🟢"

	// IconError indicates a failed test (red X).
	IconError = "❌"

	// IconPending indicates a test that is still running (yellow circle).
	IconPending = "🟡"

	// IconBlocked indicates a test waiting on its gate (stop sign).
	IconBlocked = "⛔"

	// IconCheckmark indicates a passed check (checkmark).
	IconCheckmark = "✓"

	// IconCross indicates a failed check (cross).
	IconCross = "✗"

	// IconWarn is the warning prefix for messages.
	IconWarn = "⚠️"

	// IconCheckmarkBox indicates successful validation (checkmark in box).
	IconCheckmarkBox = "✅"

	// IconLightbulb indicates a hint or suggestion.
	IconLightbulb = "💡"
)

// Validation status constants for config file validation.
const (
	// ValidationValid indicates a valid file.
	ValidationValid = "🟢 valid"

	// ValidationInvalid indicates an invalid file.
	ValidationInvalid = "❌ invalid"
)
