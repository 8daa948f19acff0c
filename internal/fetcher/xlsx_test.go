package fetcher

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createTestXLSX(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				cell := row.AddCell()
				cell.SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "test.xlsx")
	err := f.Save(path)
	require.NoError(t, err)
	return path
}

func TestReadXLSX_Basic(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Speakers": {
			{"Name", "Title", "Company"},
			{"Harshil Mathur", "CEO", "Razorpay"},
			{"Falguni Nayar", "Founder", "Nykaa"},
		},
	})

	rows, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Title", "Company"}, rows[0])
	assert.Equal(t, []string{"Harshil Mathur", "CEO", "Razorpay"}, rows[1])
}

func TestReadXLSX_SheetByName(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Ignore": {{"x"}},
		"Day2":   {{"Name"}, {"Vidit Aatrey"}},
	})

	rows, err := ReadXLSX(path, XLSXOptions{SheetName: "Day2"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Vidit Aatrey", rows[1][0])
}

func TestReadXLSX_SheetNotFound(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{"Sheet1": {{"a"}}})

	_, err := ReadXLSX(path, XLSXOptions{SheetName: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadXLSX_IndexOutOfRange(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{"Sheet1": {{"a"}}})

	_, err := ReadXLSX(path, XLSXOptions{SheetIndex: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestReadXLSX_MissingFile(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), XLSXOptions{})
	require.Error(t, err)
}
