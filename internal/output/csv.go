package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"sync"
)

// csvHeader is the column layout for endpoint rows.
var csvHeader = []string{
	"method", "path", "source_file", "line", "class_name", "member_name",
	"coverage", "spec_file", "operation_id", "summary",
}

// CSVWriter writes one row per endpoint.
type CSVWriter struct {
	mu     sync.Mutex
	cw     *csv.Writer
	closed bool
}

// NewCSVWriter creates a new CSV writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{cw: csv.NewWriter(w)}
}

// WriteReport writes the header and all endpoint rows.
func (c *CSVWriter) WriteReport(report *ScanReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	if err := c.cw.Write(csvHeader); err != nil {
		return err
	}
	for _, ep := range report.Endpoints {
		row := []string{
			string(ep.Method),
			ep.Path,
			ep.SourceFile,
			strconv.Itoa(ep.Line),
			ep.ClassName,
			ep.MemberName,
			string(ep.Coverage.Status),
			ep.Coverage.SpecFile,
			"",
			"",
		}
		if m := ep.Coverage.Matched; m != nil {
			row[8] = m.OperationID
			row[9] = m.Summary
		}
		if err := c.cw.Write(row); err != nil {
			return err
		}
	}
	c.cw.Flush()
	return c.cw.Error()
}

// Flush flushes buffered rows.
func (c *CSVWriter) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cw.Flush()
	return c.cw.Error()
}

// Close closes the writer.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cw.Flush()
	return c.cw.Error()
}
