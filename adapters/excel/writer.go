package excel

import (
	"telemarketing/domain/dataset"
	"telemarketing/internal/errors"

	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// ExportSheet is the worksheet name used for exported tables
const ExportSheet = "Sheet1"

// ToExcel renders a table as an .xlsx workbook, buffered fully in memory.
// Numeric and boolean columns keep their cell types; missing values are left blank.
func ToExcel(table *dataset.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	columns := table.Columns()
	header := make([]interface{}, len(columns))
	for i, name := range columns {
		header[i] = name
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "failed to write header row")
	}

	frame := table.Frame()
	for r := 0; r < table.Len(); r++ {
		row := make([]interface{}, len(columns))
		for c := range columns {
			row[c] = cellValue(frame.Elem(r, c))
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, errors.Wrap(err, "failed to address row")
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return nil, errors.Wrapf(err, "failed to write row %d", r+1)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize workbook")
	}
	return buf.Bytes(), nil
}

func cellValue(elem series.Element) interface{} {
	if elem.IsNA() {
		return nil
	}
	switch elem.Type() {
	case series.Int:
		if v, err := elem.Int(); err == nil {
			return v
		}
	case series.Float:
		return elem.Float()
	case series.Bool:
		if v, err := elem.Bool(); err == nil {
			return v
		}
	}
	return elem.String()
}
