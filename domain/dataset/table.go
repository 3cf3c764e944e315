package dataset

import (
	"fmt"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// missingMarkers are the cell contents treated as missing values on load.
var missingMarkers = []string{"", "NA", "NaN", "<nil>"}

// Table is an immutable in-memory dataset with named, homogeneously typed
// columns. Operations that select rows return a new Table.
type Table struct {
	frame dataframe.DataFrame
}

// NewTable wraps a dataframe, surfacing any error it carries.
func NewTable(frame dataframe.DataFrame) (*Table, error) {
	if frame.Err != nil {
		return nil, fmt.Errorf("invalid table: %w", frame.Err)
	}
	return &Table{frame: frame}, nil
}

// FromRecords builds a Table from a header row followed by data rows. Column
// types are inferred from the data (int, float, bool, otherwise string).
// A header with no data rows yields an empty Table of string columns.
func FromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	header := records[0]
	if len(records) == 1 {
		columns := make([]series.Series, len(header))
		for i, name := range header {
			columns[i] = series.New([]string{}, series.String, name)
		}
		return NewTable(dataframe.New(columns...))
	}

	frame := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(missingMarkers),
	)
	return NewTable(frame)
}

// Frame exposes the underlying dataframe for the analysis layer.
func (t *Table) Frame() dataframe.DataFrame {
	return t.frame
}

// Columns returns the column names in file order.
func (t *Table) Columns() []string {
	return t.frame.Names()
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.frame.Nrow()
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool {
	return t == nil || t.frame.Nrow() == 0
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.frame.Names() {
		if col == name {
			return true
		}
	}
	return false
}

// ColumnType returns the inferred type of a column.
func (t *Table) ColumnType(name string) (series.Type, error) {
	if !t.HasColumn(name) {
		return "", fmt.Errorf("column %q not found", name)
	}
	return t.frame.Col(name).Type(), nil
}

// Column returns the series backing a column.
func (t *Table) Column(name string) (series.Series, error) {
	if !t.HasColumn(name) {
		return series.Series{}, fmt.Errorf("column %q not found", name)
	}
	return t.frame.Col(name), nil
}

// Head returns the first n rows, or the whole table when it is shorter.
func (t *Table) Head(n int) *Table {
	if n >= t.Len() {
		return t
	}
	if n < 0 {
		n = 0
	}
	return t.Subset(rangeIndexes(n))
}

// Subset returns the rows at the given positions, in that order.
func (t *Table) Subset(indexes []int) *Table {
	return &Table{frame: t.frame.Subset(indexes)}
}

// Rows returns the data rows as display strings, without the header.
// Missing values are blank.
func (t *Table) Rows() [][]string {
	nrows, ncols := t.frame.Dims()
	rows := make([][]string, nrows)
	for r := range rows {
		row := make([]string, ncols)
		for c := range row {
			row[c] = CellString(t.frame.Elem(r, c))
		}
		rows[r] = row
	}
	return rows
}

// CellString renders a cell for display: blank when missing and floats in
// their shortest form.
func CellString(elem series.Element) string {
	if elem.IsNA() {
		return ""
	}
	if elem.Type() == series.Float {
		return strconv.FormatFloat(elem.Float(), 'f', -1, 64)
	}
	return elem.String()
}

// Unique returns the distinct non-missing values of a column in order of
// first appearance.
func (t *Table) Unique(column string) ([]string, error) {
	s, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	values := make([]string, 0)
	for i := 0; i < s.Len(); i++ {
		elem := s.Elem(i)
		if elem.IsNA() {
			continue
		}
		v := CellString(elem)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values, nil
}

// Equal reports whether both tables have the same columns, types and cells.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Len() != other.Len() {
		return false
	}
	names, otherNames := t.frame.Names(), other.frame.Names()
	if len(names) != len(otherNames) {
		return false
	}
	for i := range names {
		if names[i] != otherNames[i] || t.frame.Col(names[i]).Type() != other.frame.Col(names[i]).Type() {
			return false
		}
	}
	a, b := t.Rows(), other.Rows()
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func rangeIndexes(n int) []int {
	indexes := make([]int, n)
	for i := range indexes {
		indexes[i] = i
	}
	return indexes
}
