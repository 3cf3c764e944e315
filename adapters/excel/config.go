package excel

// ReaderConfig holds configuration for reading uploaded data files
type ReaderConfig struct {
	// MaxBytes rejects inputs larger than this; zero disables the limit.
	MaxBytes int64 `json:"max_bytes"`
	// Sheet selects a worksheet by name; empty means the workbook's first sheet.
	Sheet string `json:"sheet"`
	// TrimSpace strips surrounding whitespace from headers and cells.
	TrimSpace bool `json:"trim_space"`
}

// DefaultReaderConfig returns sensible defaults for upload processing
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		MaxBytes:  50 * 1024 * 1024,
		TrimSpace: true,
	}
}
