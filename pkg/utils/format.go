package utils

import (
	"fmt"
	"math"
	"time"
)

// Percentage returns part as a rounded percentage of total.
//
// A zero or negative total yields 0 so an empty run reports 0% rather than
// dividing by zero.
//
// Parameters:
//   - part: Number of items counted (e.g., passed tests)
//   - total: Number of items overall (passed, failed and pending)
//
// Returns:
//   - int: The percentage rounded half away from zero
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// FormatDuration renders d for humans: milliseconds below one second, seconds
// with two decimals below one minute, and Go's duration syntax otherwise.
//
// Examples:
//   - 850µs -> "0ms"
//   - 42ms -> "42ms"
//   - 1.5s -> "1.50s"
//   - 90s -> "1m30s"
func FormatDuration(d time.Duration) string {
	switch {
	case d < 0:
		return "0ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}
