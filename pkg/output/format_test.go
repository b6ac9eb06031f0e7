package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseFormat tests the behavior of ParseFormat.
//
// It verifies:
//   - Parses valid format strings case-insensitively
//   - Returns FormatTable for unrecognized formats
func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"csv", FormatCSV},
		{"CSV", FormatCSV},
		{"json", FormatJSON},
		{" Json ", FormatJSON},
		{"xml", FormatXML},
		{"table", FormatTable},
		{"", FormatTable},
		{"unknown", FormatTable},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseFormat(tt.input))
		})
	}
}

// TestParseFormatStrict tests that unknown formats are rejected.
func TestParseFormatStrict(t *testing.T) {
	f, err := ParseFormatStrict("XML")
	require.NoError(t, err)
	assert.Equal(t, FormatXML, f)

	f, err = ParseFormatStrict("")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, f)

	_, err = ParseFormatStrict("yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table, json, csv, xml")
}

func TestIsStructuredFormat(t *testing.T) {
	assert.True(t, IsStructuredFormat(FormatCSV))
	assert.True(t, IsStructuredFormat(FormatJSON))
	assert.True(t, IsStructuredFormat(FormatXML))
	assert.False(t, IsStructuredFormat(FormatTable))
}

// TestFormatter tests the raw writers of Formatter.
//
// It verifies:
//   - CSV writes headers then rows
//   - JSON is compact and newline terminated
//   - XML starts with the XML header
func TestFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatCSV, &buf)
	assert.Equal(t, FormatCSV, f.Format())
	require.NoError(t, f.WriteCSV([]string{"A", "B"}, [][]string{{"1", "x,y"}}))
	assert.Equal(t, "A,B\n1,\"x,y\"\n", buf.String())

	buf.Reset()
	require.NoError(t, NewFormatter(FormatJSON, &buf).WriteJSON(map[string]int{"n": 1}))
	assert.Equal(t, "{\"n\":1}\n", buf.String())
	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	buf.Reset()
	type item struct {
		Name string `xml:"name"`
	}
	require.NoError(t, NewFormatter(FormatXML, &buf).WriteXML(item{Name: "n"}))
	assert.Contains(t, buf.String(), "<?xml version=\"1.0\" encoding=\"UTF-8\"?>")
	assert.Contains(t, buf.String(), "<name>n</name>")

	buf.Reset()
	assert.Error(t, NewFormatter(FormatXML, &buf).WriteXML(make(chan int)))
}
