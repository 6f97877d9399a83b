// Package fileio reads uploaded spreadsheets (.xlsx, .xls, .csv) into a
// uniform in-memory table, keeping the file's column order so callers can
// present pickers and resolve user-chosen columns.
package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Table is one parsed sheet: ordered headers plus data rows. Every row is
// padded to the header width, so Rows[r][c] is always addressable.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ReadTable picks a parser by file extension. headerRow is 1-based.
func ReadTable(r io.Reader, filename string, headerRow int) (*Table, error) {
	if headerRow < 1 {
		return nil, fmt.Errorf("header row must be >= 1, got %d", headerRow)
	}
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx":
		return readXLSX(r, headerRow)
	case ".xls":
		return readXLS(r, headerRow)
	case ".csv":
		return readCSV(r, headerRow)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .xlsx, .xls or .csv)", filename)
	}
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// ColumnIndex finds a column by header name: exact match first, then
// trimmed case-insensitive. Returns -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range t.Headers {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i
		}
	}
	return -1
}

// Column returns all values of the i-th column, one per data row.
func (t *Table) Column(i int) []string {
	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out
}

// buildTable assembles a Table from raw sheet rows. The table width is the
// widest row seen, not just the header row, so ragged sheets lose nothing.
// Blank header cells get synthetic "Column N" names; rows that are entirely
// empty are dropped.
func buildTable(rows [][]string, headerRow int) *Table {
	if len(rows) == 0 {
		return &Table{}
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return &Table{}
	}

	hdrIdx := headerRow - 1
	if hdrIdx >= len(rows) {
		hdrIdx = 0
	}

	headers := make([]string, width)
	for c := 0; c < width; c++ {
		var v string
		if c < len(rows[hdrIdx]) {
			v = cleanCell(rows[hdrIdx][c])
		}
		if v == "" {
			v = fmt.Sprintf("Column %d", c+1)
		}
		headers[c] = v
	}

	var data [][]string
	for r := hdrIdx + 1; r < len(rows); r++ {
		row := make([]string, width)
		empty := true
		for c := 0; c < width; c++ {
			var v string
			if c < len(rows[r]) {
				v = cleanCell(rows[r][c])
			}
			row[c] = v
			if v != "" {
				empty = false
			}
		}
		if !empty {
			data = append(data, row)
		}
	}
	return &Table{Headers: headers, Rows: data}
}

// cleanCell trims a raw cell value, treating non-breaking and narrow spaces
// as trimmable; spreadsheets exported from office suites are full of them.
func cleanCell(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '\r', '\n', '\u00a0', '\u2009', '\u202f':
			return true
		}
		return false
	})
}
