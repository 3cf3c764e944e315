package analysis

import (
	"fmt"

	"telemarketing/domain/dataset"
	"telemarketing/internal/errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ApplyFilters returns the rows of table whose value in every constrained
// column of spec is one of the selected values. Wildcard columns pass through
// and a column with an empty selection matches no rows. The input table is
// never modified.
func ApplyFilters(table *dataset.Table, spec dataset.FilterSpec) (*dataset.Table, error) {
	if table == nil {
		return nil, errors.MissingData("no table to filter")
	}

	var filters []dataframe.F
	excludeAll := false
	for _, column := range spec.Columns() {
		if !table.HasColumn(column) {
			return nil, errors.ValidationError(fmt.Sprintf("filter column %q is not in the table", column))
		}
		values := spec[column]
		if dataset.IsWildcard(values) {
			continue
		}
		if len(values) == 0 {
			excludeAll = true
			continue
		}
		filters = append(filters, dataframe.F{
			Colname:    column,
			Comparator: series.In,
			Comparando: values,
		})
	}

	if excludeAll {
		return table.Subset([]int{}), nil
	}
	if len(filters) == 0 {
		return table, nil
	}

	filtered, err := dataset.NewTable(table.Frame().FilterAggregation(dataframe.And, filters...))
	if err != nil {
		return nil, errors.Wrap(err, "failed to apply filters")
	}
	return filtered, nil
}
