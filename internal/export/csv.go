// Package export implements the output sinks for finalized works: the CSV
// file, the streaming HTML table, and the ranked console summary.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/jfalvarez/bookscout/internal/library"
)

// CSVHeader is the column layout of the CSV output.
var CSVHeader = []string{"Author", "Book Title", "Published", "Rating", "Description"}

// CSVDelimiter separates fields in the CSV output.
const CSVDelimiter = ';'

// CSVExporter streams works to a semicolon-delimited CSV file. Failure to
// create the file is fatal at construction, distinct from fetch-level misses.
type CSVExporter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVExporter creates the output file and writes the header row.
func NewCSVExporter(path string) (*CSVExporter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv output %s: %w", path, err)
	}
	writer := csv.NewWriter(file)
	writer.Comma = CSVDelimiter
	if err := writer.Write(CSVHeader); err != nil {
		file.Close()
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	return &CSVExporter{file: file, writer: writer}, nil
}

// WriteWork appends one row for the work.
func (e *CSVExporter) WriteWork(w library.Work) error {
	record := []string{w.Author, w.Title, w.Published, FormatRating(w.Rating), w.Description}
	if err := e.writer.Write(record); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (e *CSVExporter) Close() error {
	e.writer.Flush()
	if err := e.writer.Error(); err != nil {
		e.file.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("close csv: %w", err)
	}
	return nil
}

// FormatRating renders a rating with two decimal places, the format shared by
// the CSV and HTML outputs.
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 2, 64)
}
