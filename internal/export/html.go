package export

import (
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/jfalvarez/bookscout/internal/library"
)

// tableOpen is written once before any work arrives so the table renders
// incrementally while the run is still fetching.
const tableOpen = `<table>
<tr><th>Author</th><th>Book Title</th><th>Published</th><th>Rating</th><th>Description</th></tr>
<style>body { font-family: Arial, sans-serif; } table { width: 100%; border-collapse: collapse; margin-bottom: 20px; } th, td { padding: 10px; border: 1px solid #ddd; text-align: left; } th { background-color: #f4f4f4; }</style>
`

var rowTemplate = template.Must(template.New("row").Parse(
	`<tr><td>{{.Author}}</td><td>{{.Title}}</td><td>{{.Published}}</td><td>{{.Rating}}</td><td>{{.Description}}</td></tr>
`))

type htmlRow struct {
	Author      string
	Title       string
	Published   string
	Rating      string
	Description string
}

// HTMLExporter streams works into a single HTML table, one row per work, in
// emission order. Field values render through html/template so remote content
// is always escaped.
type HTMLExporter struct {
	out    io.Writer
	closer io.Closer
	works  int
}

// NewHTMLExporter writes the table opening to out and returns a streaming
// exporter over it.
func NewHTMLExporter(out io.Writer) (*HTMLExporter, error) {
	if _, err := io.WriteString(out, tableOpen); err != nil {
		return nil, fmt.Errorf("write html header: %w", err)
	}
	return &HTMLExporter{out: out}, nil
}

// OpenHTMLExporter creates path and streams the table into it.
func OpenHTMLExporter(path string) (*HTMLExporter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create html output %s: %w", path, err)
	}
	e, err := NewHTMLExporter(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	e.closer = file
	return e, nil
}

// WriteWork renders one table row.
func (e *HTMLExporter) WriteWork(w library.Work) error {
	row := htmlRow{
		Author:      w.Author,
		Title:       w.Title,
		Published:   w.Published,
		Rating:      FormatRating(w.Rating),
		Description: w.Description,
	}
	if err := rowTemplate.Execute(e.out, row); err != nil {
		return fmt.Errorf("write html row: %w", err)
	}
	e.works++
	return nil
}

// Close terminates the table, appends the final count paragraph, and closes
// the underlying file when the exporter owns one.
func (e *HTMLExporter) Close() error {
	if _, err := fmt.Fprintf(e.out, "</table>\n<p>Export complete: %d works.</p>\n", e.works); err != nil {
		return fmt.Errorf("write html footer: %w", err)
	}
	if e.closer != nil {
		if err := e.closer.Close(); err != nil {
			return fmt.Errorf("close html output: %w", err)
		}
	}
	return nil
}
