package fileio

import (
	"bytes"
	"errors"
	"io"

	xls "github.com/extrame/xls"
)

// Legacy .xls files do not expose a reliable row width, so the sheet is
// probed for its real width and every row is read up to it.

const xlsProbeCols = 512

// readXLS parses the first sheet of a legacy .xls workbook. Files exported
// by old office suites are frequently cp1251; a few charsets are attempted
// before giving up.
func readXLS(r io.Reader, headerRow int) (*Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var wb *xls.WorkBook
	var lastErr error
	for _, charset := range []string{"utf-8", "windows-1251", "koi8-r"} {
		wb, err = xls.OpenReader(bytes.NewReader(b), charset)
		if err == nil && wb != nil {
			lastErr = nil
			break
		}
		lastErr = err
	}
	if wb == nil {
		if lastErr == nil {
			lastErr = errors.New("xls: failed to open workbook")
		}
		return nil, lastErr
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return &Table{}, nil
	}

	width := xlsSheetWidth(sheet)
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		cols := make([]string, width)
		if row := sheet.Row(i); row != nil {
			for j := 0; j < width; j++ {
				cols[j] = row.Col(j) // missing cells come back empty
			}
		}
		rows = append(rows, cols)
	}
	return buildTable(rows, headerRow), nil
}

// xlsSheetWidth scans every row for the rightmost non-empty cell; LastCol
// on individual rows under-reports for merged headers.
func xlsSheetWidth(sheet *xls.WorkSheet) int {
	width := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		for j := 0; j < xlsProbeCols; j++ {
			if cleanCell(row.Col(j)) != "" && j+1 > width {
				width = j + 1
			}
		}
	}
	if width == 0 {
		width = 1
	}
	return width
}
