package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"telemarketing/domain/dataset"
	"telemarketing/internal"
	"telemarketing/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader turns uploaded CSV and Excel files into tables
type DataReader struct {
	config ReaderConfig
	logger *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ReaderConfig) *DataReader {
	return &DataReader{
		config: config,
		logger: internal.DefaultLogger.With("DataReader"),
	}
}

// Load parses src according to the extension of filename.
func (r *DataReader) Load(filename string, src io.Reader) (*dataset.Table, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		r.logger.Warn("rejected %s: unsupported extension", filename)
		return nil, err
	}

	content, err := r.readAll(src)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var records [][]string
	switch format {
	case FormatCSV:
		records, err = r.readCSVRecords(content)
	case FormatXLSX:
		records, err = r.readExcelRecords(content)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.MissingData(fmt.Sprintf("%s contains no data", filename))
	}

	records = r.normalize(records)
	table, err := dataset.FromRecords(records)
	if err != nil {
		return nil, errors.Wrapf(errors.MissingData(err.Error()), "%s could not be read as a table", filename)
	}

	r.logger.Info("%s file %s processed in %.2fms (%d columns, %d rows)",
		strings.ToUpper(string(format)), filename, float64(time.Since(start).Nanoseconds())/1e6, len(table.Columns()), table.Len())
	return table, nil
}

// LoadFile opens path and loads it with Load.
func (r *DataReader) LoadFile(path string) (*dataset.Table, error) {
	if _, err := DetectFormat(path); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer file.Close()
	return r.Load(path, file)
}

func (r *DataReader) readAll(src io.Reader) ([]byte, error) {
	if r.config.MaxBytes > 0 {
		src = io.LimitReader(src, r.config.MaxBytes+1)
	}
	content, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read upload")
	}
	if r.config.MaxBytes > 0 && int64(len(content)) > r.config.MaxBytes {
		return nil, errors.InvalidInput(fmt.Sprintf("File exceeds the %.1f MB limit", float64(r.config.MaxBytes)/(1024*1024)))
	}
	return content, nil
}

// readCSVRecords reads comma-separated text; rows may have ragged lengths
func (r *DataReader) readCSVRecords(content []byte) ([][]string, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "failed to read CSV file")
	}
	return rows, nil
}

// readExcelRecords reads the configured sheet, or the first one in the workbook
func (r *DataReader) readExcelRecords(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "failed to open Excel file")
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.MissingData("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(errors.InvalidInput(err.Error()), "failed to read sheet %s", sheet)
	}
	r.logger.Debug("sheet %s read (%d rows)", sheet, len(rows))
	return rows, nil
}

// normalize drops blank leading rows, trims cells and pads every row to the
// header width. Spreadsheet rows omit trailing empty cells.
func (r *DataReader) normalize(records [][]string) [][]string {
	for len(records) > 0 && isBlank(records[0]) {
		records = records[1:]
	}
	if len(records) == 0 {
		return records
	}

	width := len(records[0])
	out := make([][]string, 0, len(records))
	for i, row := range records {
		if i > 0 && isBlank(row) {
			continue
		}
		normalized := make([]string, width)
		for j := 0; j < width && j < len(row); j++ {
			cell := row[j]
			if r.config.TrimSpace {
				cell = strings.TrimSpace(cell)
			}
			normalized[j] = cell
		}
		out = append(out, normalized)
	}
	return out
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
