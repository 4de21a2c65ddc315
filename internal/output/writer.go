package output

import (
	"io"
)

// Writer defines the interface for report writers.
type Writer interface {
	// WriteReport writes the complete scan report
	WriteReport(report *ScanReport) error

	// Flush flushes any buffered output
	Flush() error

	// Close closes the writer
	Close() error
}

// Config holds output configuration.
type Config struct {
	Format   string `json:"format" yaml:"format"`
	Pretty   bool   `json:"pretty" yaml:"pretty"`
	FilePath string `json:"file_path" yaml:"file_path"`
}

// NewWriter creates a new report writer for the configured format.
func NewWriter(w io.Writer, config Config) Writer {
	switch config.Format {
	case "csv":
		return NewCSVWriter(w)
	case "json":
		return NewJSONWriter(w, config.Pretty)
	default:
		return NewJSONWriter(w, config.Pretty)
	}
}
