package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns the number of terminal cells val occupies.
//
// Wide characters such as CJK text and most emoji count as two cells, so
// names and failure details containing them still line up in columns.
func DisplayWidth(val string) int {
	return runewidth.StringWidth(val)
}

// ToWidth pads val with spaces to the given display width.
//
// Parameters:
//   - val: The string to pad
//   - width: Target width in terminal cells; values <= 0 leave val unchanged
//
// Returns:
//   - string: The padded string, or val when it is already at least width cells wide
func ToWidth(val string, width int) string {
	if width <= 0 {
		return val
	}
	current := DisplayWidth(val)
	if current >= width {
		return val
	}
	return val + strings.Repeat(" ", width-current)
}

// Clip shortens val to at most width display cells, ending with "..." when cut.
//
// Parameters:
//   - val: The string to shorten
//   - width: Maximum width in terminal cells; values <= 0 leave val unchanged
//
// Returns:
//   - string: val, or its clipped prefix followed by "..."
func Clip(val string, width int) string {
	if width <= 0 || DisplayWidth(val) <= width {
		return val
	}
	if width <= 3 {
		return runewidth.Truncate(val, width, "")
	}
	return runewidth.Truncate(val, width, "...")
}

// Max returns the largest of values, or 0 when none are given.
func Max(values ...int) int {
	m := 0
	for i, v := range values {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}
