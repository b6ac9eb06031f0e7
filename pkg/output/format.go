// Package output provides formatters for exporting run reports in various formats.
// It supports CSV, JSON, and XML output formats as alternatives to the default table display.
package output

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatTable is the default terminal table output.
	FormatTable Format = "table"
	// FormatCSV outputs data as comma-separated values.
	FormatCSV Format = "csv"
	// FormatJSON outputs data as JSON.
	FormatJSON Format = "json"
	// FormatXML outputs data as XML.
	FormatXML Format = "xml"
)

// Formats lists every supported format in the order shown in help texts.
var Formats = []Format{FormatTable, FormatJSON, FormatCSV, FormatXML}

// ParseFormat parses a format string into a Format type.
//
// The parsing is case-insensitive. Any unrecognized value, including the empty
// string, falls back to FormatTable.
//
// Parameters:
//   - s: Format string to parse (e.g., "csv", "JSON", "XmL")
//
// Returns:
//   - Format: The parsed format, or FormatTable if unrecognized
func ParseFormat(s string) Format {
	f, err := ParseFormatStrict(s)
	if err != nil {
		return FormatTable
	}
	return f
}

// ParseFormatStrict parses a format string and rejects unknown values.
//
// An empty string is accepted as FormatTable so an unset option keeps the default.
//
// Parameters:
//   - s: Format string to parse
//
// Returns:
//   - Format: The parsed format
//   - error: When s names no supported format; otherwise nil
func ParseFormatStrict(s string) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(s)))
	if normalized == "" {
		return FormatTable, nil
	}
	for _, f := range Formats {
		if f == normalized {
			return f, nil
		}
	}
	return FormatTable, fmt.Errorf("unsupported output format %q (expected one of %s)", s, FormatNames())
}

// FormatNames returns the supported formats as a comma-separated list.
func FormatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// IsStructuredFormat returns true if the format is meant for machine consumption.
func IsStructuredFormat(f Format) bool {
	return f == FormatCSV || f == FormatJSON || f == FormatXML
}

// Formatter writes data in a specific format.
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a new formatter for the given format and writer.
func NewFormatter(format Format, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
	}
}

// Format returns the format this formatter writes.
func (f *Formatter) Format() Format {
	return f.format
}

// WriteCSV writes a header row followed by data rows.
//
// csv.Writer buffers writes and only reports errors after Flush, so individual
// Write results are not checked.
//
// Parameters:
//   - headers: Column headers for the CSV
//   - rows: Data rows, each with as many columns as headers
//
// Returns:
//   - error: When write or flush fails, returns the underlying error; otherwise returns nil
func (f *Formatter) WriteCSV(headers []string, rows [][]string) error {
	w := csv.NewWriter(f.writer)

	_ = w.Write(headers)
	for _, row := range rows {
		_ = w.Write(row)
	}

	w.Flush()
	return w.Error()
}

// WriteJSON writes data as compact single-line JSON.
func (f *Formatter) WriteJSON(data any) error {
	return json.NewEncoder(f.writer).Encode(data)
}

// WriteXML writes the XML header followed by data indented with two spaces.
//
// Parameters:
//   - data: Data structure with xml tags
//
// Returns:
//   - error: When encoding fails, returns the underlying error; otherwise returns nil
func (f *Formatter) WriteXML(data any) error {
	_, _ = fmt.Fprint(f.writer, xml.Header)
	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(f.writer)
	return nil
}
