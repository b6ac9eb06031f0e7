package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	pkgerrors "github.com/ajxudir/subtest/pkg/errors"
	"github.com/ajxudir/subtest/pkg/output"
)

// Validate performs semantic checks the schema cannot express.
//
// It checks the following:
//   - poll_interval is positive once defaults are applied
//   - deadline and demo.delay are not negative
//   - output names a supported format
//   - filter is a well-formed doublestar pattern
//
// A deadline shorter than the poll interval is reported as a warning.
//
// Returns:
//   - *errors.ValidationResult: validation result with any errors and warnings found
func (c *Config) Validate() *pkgerrors.ValidationResult {
	result := pkgerrors.NewValidationResult()

	if c.PollInterval < 0 {
		result.AddError(&pkgerrors.ValidationError{
			Field:      "poll_interval",
			Message:    fmt.Sprintf("must be positive, got %s", c.PollInterval),
			Expected:   "a duration such as 10ms",
			DocSection: "poll_interval",
		})
	}
	if c.Deadline < 0 {
		result.AddError(&pkgerrors.ValidationError{
			Field:      "deadline",
			Message:    fmt.Sprintf("must not be negative, got %s", c.Deadline),
			Expected:   "a duration such as 30s, or 0 to wait forever",
			DocSection: "deadline",
		})
	}
	if c.Demo.Delay < 0 {
		result.AddError(&pkgerrors.ValidationError{
			Field:    "demo.delay",
			Message:  fmt.Sprintf("must not be negative, got %s", c.Demo.Delay),
			Expected: "a duration such as 500ms",
		})
	}

	if _, err := output.ParseFormatStrict(c.Output); err != nil {
		result.AddError(&pkgerrors.ValidationError{
			Field:     "output",
			Message:   err.Error(),
			ValidKeys: formatKeys(),
		})
	}

	if c.Filter != "" && !doublestar.ValidatePattern(c.Filter) {
		result.AddError(&pkgerrors.ValidationError{
			Field:   "filter",
			Message: fmt.Sprintf("invalid filter pattern %q", c.Filter),
			Hint:    "Use doublestar globs such as \"greeting/*\" or \"**/error*\"",
		})
	}

	if c.Deadline > 0 && c.PollInterval > 0 && c.Deadline < c.PollInterval {
		result.AddWarning(fmt.Sprintf("deadline %s is shorter than poll_interval %s", c.Deadline, c.PollInterval))
	}

	return result
}

func formatKeys() []string {
	keys := make([]string, len(output.Formats))
	for i, f := range output.Formats {
		keys[i] = string(f)
	}
	return keys
}
