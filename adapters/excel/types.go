package excel

import (
	"path/filepath"
	"strings"

	"telemarketing/internal/errors"
)

// Format identifies how an uploaded file is parsed
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SupportedExtensions lists the upload extensions accepted by the reader
var SupportedExtensions = []string{".csv", ".xlsx"}

// DetectFormat sniffs the format from the filename extension only.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", errors.UnsupportedFormat(filepath.Base(filename))
	}
}
