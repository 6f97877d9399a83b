// Package export renders a match report as a downloadable spreadsheet.
// The workbook layout follows the tool's historical output: a "matches"
// sheet plus trimmed copies of both inputs for traceability.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	excelize "github.com/xuri/excelize/v2"

	"brandmatch-service/internal/fileio"
	"brandmatch-service/internal/match/model"
)

// SampleRowLimit caps the size of the descriptions_sample and brands_sample
// sheets embedded in the workbook.
const SampleRowLimit = 1000

// FlattenMatches renders matches the way the results column shows them:
// "Nike (100.0), Nikee (85.7)". No match renders as an empty string.
func FlattenMatches(matches []model.Match) string {
	if len(matches) == 0 {
		return ""
	}
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = fmt.Sprintf("%s (%.1f)", m.Brand, m.Score)
	}
	return strings.Join(parts, ", ")
}

// WriteXLSX writes the report as an .xlsx workbook with sheets "matches",
// "descriptions_sample" and "brands_sample". Sample tables may be nil.
func WriteXLSX(w io.Writer, rep model.Report, descSample, brandSample *fileio.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "matches"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	withKey := rep.Columns.DescID != ""
	if err := setRow(f, sheet, 1, headerCells(withKey)); err != nil {
		return err
	}
	for i, row := range rep.Rows {
		if err := setRow(f, sheet, i+2, matchCells(row, withKey)); err != nil {
			return err
		}
	}

	if err := writeSampleSheet(f, "descriptions_sample", descSample); err != nil {
		return err
	}
	if err := writeSampleSheet(f, "brands_sample", brandSample); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

// WriteCSV writes the matches table alone as CSV, same columns as the
// workbook's matches sheet.
func WriteCSV(w io.Writer, rep model.Report) error {
	cw := csv.NewWriter(w)
	withKey := rep.Columns.DescID != ""

	if err := cw.Write(stringCells(headerCells(withKey))); err != nil {
		return err
	}
	for _, row := range rep.Rows {
		if err := cw.Write(stringCells(matchCells(row, withKey))); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func headerCells(withKey bool) []interface{} {
	cells := []interface{}{"Description", "Matched_Brands", "Best_Score", "Has_Match"}
	if withKey {
		cells = append([]interface{}{"data_key"}, cells...)
	}
	return cells
}

func matchCells(row model.ReportRow, withKey bool) []interface{} {
	var best interface{}
	if row.BestScore != nil {
		best = *row.BestScore
	}
	cells := []interface{}{row.Description, FlattenMatches(row.Matches), best, row.HasMatch}
	if withKey {
		cells = append([]interface{}{row.DataKey}, cells...)
	}
	return cells
}

// stringCells is the CSV rendering of one row of workbook cells.
func stringCells(cells []interface{}) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		switch v := c.(type) {
		case nil:
			out[i] = ""
		case string:
			out[i] = v
		case bool:
			out[i] = strconv.FormatBool(v)
		case float64:
			out[i] = strconv.FormatFloat(v, 'f', 1, 64)
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}

// writeSampleSheet copies the first SampleRowLimit rows of an input table
// into its own sheet, headers included.
func writeSampleSheet(f *excelize.File, name string, t *fileio.Table) error {
	if t == nil || len(t.Headers) == 0 {
		return nil
	}
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := setRow(f, name, 1, toCells(t.Headers)); err != nil {
		return err
	}
	limit := len(t.Rows)
	if limit > SampleRowLimit {
		limit = SampleRowLimit
	}
	for i := 0; i < limit; i++ {
		if err := setRow(f, name, i+2, toCells(t.Rows[i])); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
