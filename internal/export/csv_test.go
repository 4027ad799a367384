package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jfalvarez/bookscout/internal/library"
)

func TestCSVExporterRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "books.csv")
	exporter, err := NewCSVExporter(path)
	require.NoError(t, err)

	works := []library.Work{
		{Author: "Andy Weir", Title: "The Martian", Published: "2011", Rating: 8.0, Description: "Stranded on Mars."},
		{Author: "Ursula K. Le Guin", Title: "The; Dispossessed", Published: "1974", Rating: 0.0, Description: "An ambiguous utopia."},
	}
	for _, w := range works {
		require.NoError(t, exporter.WriteWork(w))
	}
	require.NoError(t, exporter.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	records, err := reader.ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	require.Equal(t, CSVHeader, records[0])
	require.Equal(t, []string{"Andy Weir", "The Martian", "2011", "8.00", "Stranded on Mars."}, records[1])
	// Fields containing the delimiter survive the round trip.
	require.Equal(t, []string{"Ursula K. Le Guin", "The; Dispossessed", "1974", "0.00", "An ambiguous utopia."}, records[2])
}

func TestCSVExporterUnwritablePath(t *testing.T) {
	t.Parallel()

	_, err := NewCSVExporter(filepath.Join(t.TempDir(), "missing", "books.csv"))
	require.Error(t, err)
}

func TestFormatRating(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0.00", FormatRating(0))
	require.Equal(t, "4.50", FormatRating(4.5))
	require.Equal(t, "3.33", FormatRating(3.3333))
}
