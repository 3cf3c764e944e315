package dataset

import (
	"sort"
)

// Wildcard is the selection value meaning "no constraint on this column".
const Wildcard = "all"

// FilterSpec maps a column name to the accepted values for that column.
// A selection containing Wildcard leaves the column unconstrained; an empty
// selection accepts nothing.
type FilterSpec map[string][]string

// NewWildcardSpec returns a spec that leaves every given column unconstrained.
func NewWildcardSpec(columns []string) FilterSpec {
	spec := make(FilterSpec, len(columns))
	for _, col := range columns {
		spec[col] = []string{Wildcard}
	}
	return spec
}

// IsWildcard reports whether a selection leaves its column unconstrained.
func IsWildcard(values []string) bool {
	for _, v := range values {
		if v == Wildcard {
			return true
		}
	}
	return false
}

// Columns returns the spec's columns in sorted order.
func (s FilterSpec) Columns() []string {
	cols := make([]string, 0, len(s))
	for col := range s {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Constrained returns the columns with a concrete (non-wildcard) selection.
func (s FilterSpec) Constrained() []string {
	cols := make([]string, 0, len(s))
	for _, col := range s.Columns() {
		if !IsWildcard(s[col]) {
			cols = append(cols, col)
		}
	}
	return cols
}

// Selected reports whether value is part of the column's selection. Columns
// absent from the spec count as wildcard.
func (s FilterSpec) Selected(column, value string) bool {
	values, ok := s[column]
	if !ok || IsWildcard(values) {
		return value == Wildcard
	}
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// OutcomeShare is one bar of an outcome distribution.
type OutcomeShare struct {
	Value   string  `json:"value"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// OutcomeDistribution is the percentage share of each distinct outcome value,
// ordered by the natural order of the outcome column's type.
type OutcomeDistribution struct {
	Column string         `json:"column"`
	Total  int            `json:"total"`
	Shares []OutcomeShare `json:"shares"`
}

// IsEmpty reports whether there is nothing to render.
func (d OutcomeDistribution) IsEmpty() bool {
	return len(d.Shares) == 0
}

// Percentages returns the distribution as value -> percent.
func (d OutcomeDistribution) Percentages() map[string]float64 {
	out := make(map[string]float64, len(d.Shares))
	for _, share := range d.Shares {
		out[share.Value] = share.Percent
	}
	return out
}

// Labels returns the outcome values in order.
func (d OutcomeDistribution) Labels() []string {
	labels := make([]string, len(d.Shares))
	for i, share := range d.Shares {
		labels[i] = share.Value
	}
	return labels
}
