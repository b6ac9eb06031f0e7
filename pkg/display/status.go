package display

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajxudir/subtest/pkg/condition"
	"github.com/ajxudir/subtest/pkg/constants"
)

// Marker returns the per-test status shown in a frame.
//
// Returns:
//   - "PASS" for a passed test
//   - "FAIL (<detail>)" for a failed test, with "Unknown error" when the
//     condition recorded no detail
//   - "WAIT (deferred)" for a gated test still waiting on its gate
//   - "WAIT" for any other pending test
func Marker(c condition.Condition) string {
	switch c.Outcome() {
	case condition.Passed:
		return constants.LabelPass
	case condition.Failed:
		return fmt.Sprintf("%s (%s)", constants.LabelFail, FailureText(c))
	}
	if gated, ok := c.(*condition.Deferred); ok && gated.Waiting() {
		return fmt.Sprintf("%s (%s)", constants.LabelWait, constants.LabelDeferred)
	}
	return constants.LabelWait
}

// FailureText returns the failure detail of c as text.
func FailureText(c condition.Condition) string {
	if detail := c.FailureDetail(); detail != nil && detail.Error() != "" {
		return detail.Error()
	}
	return constants.PlaceholderUnknownError
}

// OutcomeLabel returns the title-cased outcome name, e.g. "Passed".
func OutcomeLabel(o condition.Outcome) string {
	return cases.Title(language.English).String(o.String())
}

// OutcomeIcon returns the icon for an outcome.
func OutcomeIcon(o condition.Outcome) string {
	switch o {
	case condition.Passed:
		return constants.IconSuccess
	case condition.Failed:
		return constants.IconError
	default:
		return constants.IconPending
	}
}

// markerIcon returns the icon for a test, distinguishing tests blocked on a gate.
func markerIcon(c condition.Condition) string {
	if gated, ok := c.(*condition.Deferred); ok && c.Outcome() == condition.Pending && gated.Waiting() {
		return constants.IconBlocked
	}
	return OutcomeIcon(c.Outcome())
}
