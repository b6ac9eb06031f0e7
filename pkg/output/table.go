package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ajxudir/subtest/pkg/utils"
)

// Column is a single table column with its header and current width.
type Column struct {
	Header string
	Width  int
}

// Table formats rows into aligned columns.
//
// Widths are measured in terminal cells through utils.DisplayWidth, so values
// containing wide characters stay aligned.
type Table struct {
	columns   []Column
	separator string
}

// NewTable creates an empty table with a two-space column separator.
func NewTable() *Table {
	return &Table{
		columns:   make([]Column, 0),
		separator: "  ",
	}
}

// WithSeparator sets a custom column separator and returns the table.
func (t *Table) WithSeparator(sep string) *Table {
	t.separator = sep
	return t
}

// AddColumn adds a column whose initial width is the header width.
func (t *Table) AddColumn(header string) *Table {
	return t.AddColumnWithMinWidth(header, 0)
}

// AddColumnWithMinWidth adds a column that is at least minWidth cells wide.
//
// Parameters:
//   - header: The column header text
//   - minWidth: Minimum width in terminal cells
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) AddColumnWithMinWidth(header string, minWidth int) *Table {
	t.columns = append(t.columns, Column{
		Header: header,
		Width:  utils.Max(utils.DisplayWidth(header), minWidth),
	})
	return t
}

// UpdateWidths widens columns so the given row values fit.
// Values beyond the number of columns are ignored.
func (t *Table) UpdateWidths(values ...string) *Table {
	for i, val := range values {
		if i >= len(t.columns) {
			break
		}
		if w := utils.DisplayWidth(val); w > t.columns[i].Width {
			t.columns[i].Width = w
		}
	}
	return t
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// HeaderRow returns the header row with every header padded to its column width.
func (t *Table) HeaderRow() string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = utils.ToWidth(col.Header, col.Width)
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}

// SeparatorRow returns a row of dashes matching the column widths.
func (t *Table) SeparatorRow() string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = strings.Repeat("-", col.Width)
	}
	return strings.Join(parts, t.separator)
}

// FormatRow formats a data row, padding each value to its column width.
//
// Missing values are treated as empty strings and trailing padding is trimmed.
//
// Parameters:
//   - values: One string per column
//
// Returns:
//   - string: Formatted row with values separated by the separator
func (t *Table) FormatRow(values ...string) string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		val := ""
		if i < len(values) {
			val = values[i]
		}
		parts[i] = utils.ToWidth(val, col.Width)
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}

// Render widens the columns for rows, then writes the header, the separator
// and every row to w.
func (t *Table) Render(w io.Writer, rows [][]string) {
	for _, row := range rows {
		t.UpdateWidths(row...)
	}
	_, _ = fmt.Fprintln(w, t.HeaderRow())
	_, _ = fmt.Fprintln(w, t.SeparatorRow())
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, t.FormatRow(row...))
	}
}

// String returns a representation of the table structure for debugging, in
// the form "Table{columns: [Header1:Width1, Header2:Width2]}".
func (t *Table) String() string {
	var sb strings.Builder
	sb.WriteString("Table{columns: [")
	for i, col := range t.columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%s:%d", col.Header, col.Width))
	}
	sb.WriteString("]}")
	return sb.String()
}
