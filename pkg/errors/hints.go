package errors

import (
	"strings"
)

// ErrorHint provides an actionable resolution hint for a class of errors.
//
// Fields:
//   - Pattern: Substring to match in error message (case-insensitive)
//   - Hint: Brief description of the issue
//   - Resolution: Command or action to resolve the issue
type ErrorHint struct {
	Pattern    string
	Hint       string
	Resolution string
}

// CommonErrorHints maps error patterns to actionable hints.
// These are used by EnhanceErrorWithHint to add context to errors. Packages
// that produce their own errors add hints with RegisterHint from init.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    "failed to parse",
		Hint:       "Check file syntax",
		Resolution: "Validate the YAML syntax using a linter, or run 'subtest config --validate <file>'",
	},
	{
		Pattern:    "failed to load config",
		Hint:       "Configuration file is invalid or not found",
		Resolution: "Run 'subtest config --show-defaults' to see a valid configuration",
	},
	{
		Pattern:    "no such file or directory",
		Hint:       "File or directory not found",
		Resolution: "Verify the path exists and you have read permissions",
	},
	{
		Pattern:    "permission denied",
		Hint:       "Insufficient permissions",
		Resolution: "Check file permissions or run with appropriate privileges",
	},
}

// GetHint returns the hint and resolution for err, or an empty string if no
// pattern in CommonErrorHints matches.
func GetHint(err error) string {
	if hint, ok := findHint(err); ok {
		return hint.Hint + ": " + hint.Resolution
	}
	return ""
}

// RegisterHint adds a custom hint to the registry. It is meant to be called
// from package init functions; hints registered later are matched after the
// built-in ones.
//
// Parameters:
//   - pattern: Substring to match in error messages
//   - hint: Brief description of the issue
//   - resolution: Actionable suggestion for fixing the error
func RegisterHint(pattern, hint, resolution string) {
	CommonErrorHints = append(CommonErrorHints, ErrorHint{
		Pattern:    pattern,
		Hint:       hint,
		Resolution: resolution,
	})
}

// EnhanceErrorWithHint returns the error message with a matching hint appended
// on its own line.
//
// Example:
//
//	enhanced := errors.EnhanceErrorWithHint(err)
//	fmt.Fprintf(os.Stderr, "Error: %s\n", enhanced)
func EnhanceErrorWithHint(err error) string {
	if err == nil {
		return ""
	}
	if hint, ok := findHint(err); ok {
		return err.Error() + "\n  \U0001F4A1 " + hint.Hint + ": " + hint.Resolution
	}
	return err.Error()
}

func findHint(err error) (ErrorHint, bool) {
	if err == nil {
		return ErrorHint{}, false
	}
	msg := strings.ToLower(err.Error())
	for _, hint := range CommonErrorHints {
		if strings.Contains(msg, strings.ToLower(hint.Pattern)) {
			return hint, true
		}
	}
	return ErrorHint{}, false
}
