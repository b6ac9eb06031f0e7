package errors

import (
	"fmt"
	"io"
	"strings"
)

// PrintErrorWithHints prints errors with actionable hints to the writer.
//
// Each error is formatted according to its type:
//   - ValidationError: "Validation Error: ...", with details when verbose
//   - PartialSuccessError: "Tests Failed: ...", listing the names when verbose
//   - Errors joined with errors.Join: each joined error on its own
//   - Anything else: "Error: ..." with a hint from CommonErrorHints when one matches
//
// Parameters:
//   - w: Writer to output to (typically os.Stderr)
//   - errs: Errors to display; nil entries are skipped
//   - verbose: If true, includes additional details
func PrintErrorWithHints(w io.Writer, errs []error, verbose bool) {
	for _, err := range errs {
		printSingleError(w, err, verbose)
	}
}

func printSingleError(w io.Writer, err error, verbose bool) {
	if err == nil {
		return
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			printSingleError(w, inner, verbose)
		}
		return
	}

	if ve, ok := IsValidationError(err); ok {
		if verbose {
			_, _ = fmt.Fprintf(w, "Validation Error: %s\n", ve.VerboseError())
		} else {
			_, _ = fmt.Fprintf(w, "Validation Error: %s\n", ve.Error())
		}
		return
	}

	if pse, ok := IsPartialSuccess(err); ok {
		_, _ = fmt.Fprintf(w, "Tests Failed: %s\n", pse.Error())
		if verbose && len(pse.Names) > 0 {
			_, _ = fmt.Fprintf(w, "  Not passed: %s\n", strings.Join(pse.Names, ", "))
		}
		return
	}

	_, _ = fmt.Fprintf(w, "Error: %s\n", EnhanceErrorWithHint(err))
}

// FormatErrorsWithHints formats multiple errors with hints, one per line
// prefixed with an error indicator.
func FormatErrorsWithHints(errs []error) string {
	var sb strings.Builder
	for _, err := range errs {
		if err == nil {
			continue
		}
		sb.WriteString("❌ " + EnhanceErrorWithHint(err) + "\n")
	}
	return sb.String()
}
