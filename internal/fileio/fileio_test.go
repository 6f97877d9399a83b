package fileio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func TestReadTable_CSV(t *testing.T) {
	src := "description,brand\nNike Air Max,Nike\nPuma Suede,Puma\n"

	tab, err := ReadTable(strings.NewReader(src), "data.csv", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"description", "brand"}, tab.Headers)
	require.Equal(t, 2, tab.RowCount())
	assert.Equal(t, []string{"Nike Air Max", "Nike"}, tab.Rows[0])
	assert.Equal(t, "Puma", tab.Rows[1][1])
}

func TestReadTable_CSVWindows1251(t *testing.T) {
	utf := "бренд,описание\n" +
		"Найк,беговые кроссовки для тренировок\n" +
		"Адидас,спортивная обувь и одежда для всей семьи\n" +
		"Пума,футбольные бутсы мячи и аксессуары\n"
	raw, err := charmap.Windows1251.NewEncoder().String(utf)
	require.NoError(t, err)

	tab, err := ReadTable(strings.NewReader(raw), "data.csv", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"бренд", "описание"}, tab.Headers)
	require.Equal(t, 3, tab.RowCount())
	assert.Equal(t, "Найк", tab.Rows[0][0])
}

func TestReadTable_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"description", "brand"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Nike Air Max", "Nike"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Cola bottle", "Coca-Cola"}))
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	tab, err := ReadTable(&buf, "upload.xlsx", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"description", "brand"}, tab.Headers)
	require.Equal(t, 2, tab.RowCount())
	assert.Equal(t, "Coca-Cola", tab.Rows[1][1])
}

func TestReadTable_SynthesizesBlankHeaders(t *testing.T) {
	src := "description,,brand\nshoe,x,Nike\n"

	tab, err := ReadTable(strings.NewReader(src), "h.csv", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"description", "Column 2", "brand"}, tab.Headers)
}

func TestReadTable_RaggedRowsArePadded(t *testing.T) {
	src := "a,b\n1\n2,3,4\n"

	tab, err := ReadTable(strings.NewReader(src), "r.csv", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "Column 3"}, tab.Headers)
	require.Equal(t, 2, tab.RowCount())
	assert.Equal(t, []string{"1", "", ""}, tab.Rows[0])
	assert.Equal(t, []string{"2", "3", "4"}, tab.Rows[1])
}

func TestReadTable_HeaderRowBelowTop(t *testing.T) {
	src := "exported 2024-01-01,\ndescription,brand\nNike Shoe,Nike\n"

	tab, err := ReadTable(strings.NewReader(src), "h.csv", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"description", "brand"}, tab.Headers)
	require.Equal(t, 1, tab.RowCount())
	assert.Equal(t, []string{"Nike Shoe", "Nike"}, tab.Rows[0])
}

func TestReadTable_SkipsEmptyRows(t *testing.T) {
	src := "a,b\n,\nx,y\n , \n"

	tab, err := ReadTable(strings.NewReader(src), "e.csv", 1)
	require.NoError(t, err)
	require.Equal(t, 1, tab.RowCount())
	assert.Equal(t, []string{"x", "y"}, tab.Rows[0])
}

func TestReadTable_TrimsSpecialSpaces(t *testing.T) {
	src := "brand\n\u00a0Nike\u202f\n"

	tab, err := ReadTable(strings.NewReader(src), "s.csv", 1)
	require.NoError(t, err)
	require.Equal(t, 1, tab.RowCount())
	assert.Equal(t, "Nike", tab.Rows[0][0])
}

func TestReadTable_RejectsUnknownExtension(t *testing.T) {
	_, err := ReadTable(strings.NewReader("x"), "report.pdf", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestReadTable_RejectsHeaderRowBelowOne(t *testing.T) {
	_, err := ReadTable(strings.NewReader("a\n1\n"), "a.csv", 0)
	assert.Error(t, err)
}

func TestReadTable_HeaderRowPastEndFallsBackToFirst(t *testing.T) {
	src := "a,b\n1,2\n"

	tab, err := ReadTable(strings.NewReader(src), "f.csv", 9)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tab.Headers)
	require.Equal(t, 1, tab.RowCount())
}

func TestTable_ColumnIndexAndColumn(t *testing.T) {
	tab := &Table{
		Headers: []string{"Description", "Brand"},
		Rows:    [][]string{{"x", "Nike"}, {"y", "Puma"}},
	}
	assert.Equal(t, 0, tab.ColumnIndex("Description"))
	assert.Equal(t, 1, tab.ColumnIndex("  brand "))
	assert.Equal(t, -1, tab.ColumnIndex("missing"))
	assert.Equal(t, []string{"Nike", "Puma"}, tab.Column(1))
	assert.Equal(t, 2, tab.RowCount())
}

func TestReadTable_EmptyCSV(t *testing.T) {
	tab, err := ReadTable(strings.NewReader(""), "empty.csv", 1)
	require.NoError(t, err)
	assert.Empty(t, tab.Headers)
	assert.Equal(t, 0, tab.RowCount())
}
