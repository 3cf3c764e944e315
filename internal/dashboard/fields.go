package dashboard

import (
	"telemarketing/domain/dataset"
)

// FilterField pairs a categorical column with the label of its multi-select widget
type FilterField struct {
	Column string
	Label  string
}

// DefaultFilterFields are the campaign attributes offered as filters
var DefaultFilterFields = []FilterField{
	{Column: "job", Label: "Job"},
	{Column: "marital", Label: "Marital status"},
	{Column: "default", Label: "Credit in default?"},
	{Column: "housing", Label: "Has housing loan?"},
	{Column: "loan", Label: "Has personal loan?"},
	{Column: "contact", Label: "Contact method"},
	{Column: "month", Label: "Contact month"},
	{Column: "day_of_week", Label: "Contact day of week"},
}

// Option is one entry of a multi-select widget
type Option struct {
	Value    string
	Selected bool
}

// Widget is a rendered multi-select: the column's distinct values plus the wildcard
type Widget struct {
	Column  string
	Label   string
	Options []Option
}

// buildWidget lists the distinct values of field's column followed by the
// wildcard, marking what spec currently selects.
func buildWidget(table *dataset.Table, field FilterField, spec dataset.FilterSpec) (Widget, error) {
	values, err := table.Unique(field.Column)
	if err != nil {
		return Widget{}, err
	}

	widget := Widget{Column: field.Column, Label: field.Label}
	for _, v := range append(values, dataset.Wildcard) {
		widget.Options = append(widget.Options, Option{
			Value:    v,
			Selected: spec.Selected(field.Column, v),
		})
	}
	return widget, nil
}
