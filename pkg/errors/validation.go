package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ValidationError represents a configuration validation failure.
//
// Fields:
//   - Field: Name of the invalid field or flag (e.g., "poll_interval")
//   - Message: Description of what's wrong
//   - Expected: What the valid value should look like
//   - ValidKeys: List of valid options (for enum-like fields)
//   - DocSection: Anchor in docs/configuration.md for this setting
//   - Hint: Actionable hint for fixing the error
//
// Example:
//
//	return &ValidationError{
//	    Field:     "output",
//	    Message:   "unsupported output format \"yaml\"",
//	    ValidKeys: []string{"table", "json", "csv", "xml"},
//	}
type ValidationError struct {
	Field      string
	Message    string
	Expected   string
	ValidKeys  []string
	DocSection string
	Hint       string
}

// Error returns "field: message", or just the message when Field is empty.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// VerboseError returns the error followed by expected values, valid keys,
// documentation link and hint, each on its own indented line.
func (e *ValidationError) VerboseError() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if e.Expected != "" {
		sb.WriteString(fmt.Sprintf("\n    Expected: %s", e.Expected))
	}
	if len(e.ValidKeys) > 0 {
		sb.WriteString(fmt.Sprintf("\n    Valid keys: %s", strings.Join(e.ValidKeys, ", ")))
	}
	if e.DocSection != "" {
		sb.WriteString(fmt.Sprintf("\n    See: docs/configuration.md#%s", e.DocSection))
	}
	if e.Hint != "" {
		sb.WriteString(fmt.Sprintf("\n    Hint: %s", e.Hint))
	}
	return sb.String()
}

// IsValidationError checks if err is a ValidationError and returns it.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// NewConfigValidationError creates a ValidationError for a configuration field.
//
// Example:
//
//	err := errors.NewConfigValidationError("deadline", "must not be negative")
func NewConfigValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidationResult holds the results of validation operations.
//
// Fields:
//   - Errors: Slice of validation errors
//   - Warnings: Slice of warning messages
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []string
}

// NewValidationResult creates an empty ValidationResult with non-nil slices.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Errors:   make([]*ValidationError, 0),
		Warnings: make([]string, 0),
	}
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AddError adds a validation error to the result.
func (r *ValidationResult) AddError(err *ValidationError) {
	r.Errors = append(r.Errors, err)
}

// AddWarning adds a warning message to the result.
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Err returns the validation errors joined into one error, or nil when there
// are none. Each joined error can still be matched with IsValidationError.
func (r *ValidationResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, err := range r.Errors {
		errs[i] = err
	}
	return errors.Join(errs...)
}

// ErrorMessage returns a formatted error message for all validation errors.
//
// Returns:
//   - string: "Validation failed:" followed by one line per error, or empty string if no errors
func (r *ValidationResult) ErrorMessage() string {
	return r.format(false)
}

// VerboseErrorMessage returns ErrorMessage with the details of VerboseError.
func (r *ValidationResult) VerboseErrorMessage() string {
	return r.format(true)
}

func (r *ValidationResult) format(verbose bool) string {
	if len(r.Errors) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Validation failed:\n")
	for _, err := range r.Errors {
		if verbose {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.VerboseError()))
		} else {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}
	return sb.String()
}

// PrintTo writes warnings, then errors, to the given writer.
func (r *ValidationResult) PrintTo(w io.Writer, verbose bool) {
	for _, warning := range r.Warnings {
		_, _ = fmt.Fprintf(w, "Warning: %s\n", warning)
	}
	_, _ = fmt.Fprint(w, r.format(verbose))
}
