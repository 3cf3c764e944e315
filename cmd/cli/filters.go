package main

import (
	"fmt"
	"os"
	"strings"

	"telemarketing/domain/dataset"
	"telemarketing/internal/errors"

	"gopkg.in/yaml.v3"
)

// loadFilterFile reads a YAML mapping of column to selected values, e.g.
//
//	job: [admin., technician]
//	marital: [all]
func loadFilterFile(path string) (dataset.FilterSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read filter file %s", path)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("invalid filter file %s: %w", path, err))
	}

	spec := make(dataset.FilterSpec, len(raw))
	for column, values := range raw {
		if values == nil {
			values = []string{}
		}
		spec[column] = values
	}
	return spec, nil
}

// parseFilterFlags turns repeated col=v1,v2 flags into a spec. An empty value
// list ("col=") selects nothing.
func parseFilterFlags(flags []string) (dataset.FilterSpec, error) {
	spec := make(dataset.FilterSpec, len(flags))
	for _, flag := range flags {
		column, list, ok := strings.Cut(flag, "=")
		column = strings.TrimSpace(column)
		if !ok || column == "" {
			return nil, errors.InvalidInput(fmt.Sprintf("filter %q must look like column=value1,value2", flag))
		}

		values := []string{}
		for _, v := range strings.Split(list, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		spec[column] = append(spec[column], values...)
		if spec[column] == nil {
			spec[column] = []string{}
		}
	}
	return spec, nil
}

// buildSpec merges the filter file with flag filters; flags win per column
func buildSpec(file string, flags []string) (dataset.FilterSpec, error) {
	spec := make(dataset.FilterSpec)
	if file != "" {
		fromFile, err := loadFilterFile(file)
		if err != nil {
			return nil, err
		}
		for column, values := range fromFile {
			spec[column] = values
		}
	}

	fromFlags, err := parseFilterFlags(flags)
	if err != nil {
		return nil, err
	}
	for column, values := range fromFlags {
		spec[column] = values
	}
	return spec, nil
}
