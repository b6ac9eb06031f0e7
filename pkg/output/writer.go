package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ajxudir/subtest/pkg/utils"
)

// WriteRunReport writes report in the specified format.
//
// It performs the following operations:
//   - Step 1: Creates a formatter for the requested format
//   - Step 2: Writes the report using format-specific logic
//
// Parameters:
//   - w: Destination writer for the output
//   - format: Output format (FormatTable, FormatJSON, FormatXML, or FormatCSV)
//   - report: Run report to write
//
// Returns:
//   - error: When format is unsupported, returns an error; when write fails, returns the underlying error; otherwise returns nil
func WriteRunReport(w io.Writer, format Format, report *RunReport) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(report)
	case FormatXML:
		return formatter.WriteXML(report)
	case FormatCSV:
		return writeRunCSV(formatter, report)
	case FormatTable:
		writeRunTable(w, report)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

var runHeaders = []string{"TEST", "OUTCOME", "CONDITION", "AFTER", "DETAIL"}

func runRow(entry TestEntry) []string {
	return []string{entry.Name, entry.Outcome, entry.Condition, strings.Join(entry.After, " "), entry.Detail}
}

// writeRunCSV writes one row per test. The summary is not part of the CSV.
func writeRunCSV(f *Formatter, report *RunReport) error {
	rows := make([][]string, 0, len(report.Tests))
	for _, entry := range report.Tests {
		rows = append(rows, runRow(entry))
	}
	return f.WriteCSV(runHeaders, rows)
}

// writeRunTable writes the per-test table followed by a summary line.
func writeRunTable(w io.Writer, report *RunReport) {
	table := NewTable()
	for _, h := range runHeaders {
		table.AddColumn(h)
	}
	rows := make([][]string, 0, len(report.Tests))
	for _, entry := range report.Tests {
		row := runRow(entry)
		row[4] = utils.Clip(row[4], 60)
		rows = append(rows, row)
	}
	table.Render(w, rows)

	s := report.Summary
	_, _ = fmt.Fprintf(w, "\n%s: %d passed, %d failed, %d pending of %d (%d%%) in %s\n",
		s.Outcome, s.Passed, s.Failed, s.Pending, s.Total, s.Percent,
		utils.FormatDuration(time.Duration(s.DurationMS)*time.Millisecond))
	if s.Error != "" {
		_, _ = fmt.Fprintf(w, "Run ended early: %s\n", s.Error)
	}
}
