package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteAndReadFirstSheet(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf,
		Sheet{
			Name:   "Students",
			Header: []string{"Email_address", "Marks"},
			Rows:   [][]interface{}{{"ada@sjsu.edu", 91}, {"alan@sjsu.edu", 80}},
		},
		Sheet{
			Name:   "Course Stats",
			Header: []string{"Course_id", "Mean"},
			Rows:   [][]interface{}{{"DATA200", 85.5}},
		},
	)
	require.NoError(t, err)

	rows, err := ReadFirstSheet(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Email_address", "Marks"},
		{"ada@sjsu.edu", "91"},
		{"alan@sjsu.edu", "80"},
	}, rows)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Students", "Course Stats"}, f.GetSheetList())

	mean, err := f.GetCellValue("Course Stats", "B2")
	require.NoError(t, err)
	assert.Equal(t, "85.5", mean)
}

func TestWriteRequiresSheets(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}))
}

func TestReadFirstSheetRejectsGarbage(t *testing.T) {
	_, err := ReadFirstSheet(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}
