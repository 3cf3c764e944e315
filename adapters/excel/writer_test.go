package excel

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestToExcelRoundTrip(t *testing.T) {
	reader := NewDataReader(DefaultReaderConfig())
	table, err := reader.Load("bank.csv", strings.NewReader(bankCSV))
	require.NoError(t, err)

	content, err := ToExcel(table)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()
	age, err := f.GetCellValue(ExportSheet, "A2")
	require.NoError(t, err)
	_, err = strconv.Atoi(age)
	assert.NoError(t, err, "int columns keep integer values")
	ageType, err := f.GetCellType(ExportSheet, "A2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, ageType, "int columns are not written as text")
	jobType, err := f.GetCellType(ExportSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeSharedString, jobType)

	reloaded, err := reader.Load("export.xlsx", bytes.NewReader(content))
	require.NoError(t, err)
	assert.True(t, table.Equal(reloaded))
}

func TestToExcelEmptyTable(t *testing.T) {
	table, err := NewDataReader(DefaultReaderConfig()).Load("header.csv", strings.NewReader("job,y\n"))
	require.NoError(t, err)

	content, err := ToExcel(table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(ExportSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"job", "y"}}, rows)
}
