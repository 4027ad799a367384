package library_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jfalvarez/bookscout/internal/fetch"
	"github.com/jfalvarez/bookscout/internal/library"
)

// newLibraryServer fakes the three Open Library endpoints the aggregator
// consumes, counting ratings requests.
func newLibraryServer(t *testing.T, ratingCalls *atomic.Int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/authors/OL1A.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"name":"Andy Weir"}`)
	})
	mux.HandleFunc("/authors/OL1A/works.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"entries":[
			{"title":"The Martian","created":{"value":"2011-09-27T00:00:00"},"description":"Stranded on Mars.","key":"/works/OL1W"},
			{"title":"Artemis","created":{"value":"2017-11-14T00:00:00"},"description":{"type":"/type/text","value":"A lunar heist."},"key":"/works/OL2W"},
			{"title":"No Description","created":{"value":"2015-01-01T00:00:00"},"key":"/works/OL3W"}
		]}`)
	})
	mux.HandleFunc("/works/OL1W/ratings.json", func(w http.ResponseWriter, _ *http.Request) {
		ratingCalls.Add(1)
		fmt.Fprint(w, `{"summary":{"average":4.41}}`)
	})
	mux.HandleFunc("/works/OL2W/ratings.json", func(w http.ResponseWriter, _ *http.Request) {
		ratingCalls.Add(1)
		http.Error(w, "gone", http.StatusNotFound)
	})
	return httptest.NewServer(mux)
}

func TestAggregatorOverHTTPStack(t *testing.T) {
	t.Parallel()

	var ratingCalls atomic.Int64
	srv := newLibraryServer(t, &ratingCalls)
	defer srv.Close()

	client := fetch.NewClient(fetch.Config{Timeout: 2 * time.Second})
	pool := fetch.NewPool(client, 4, zap.NewNop())
	agg := library.NewAggregator(client, pool, srv.URL, zap.NewNop())

	name, works := agg.BuildWorks(context.Background(), "OL1A", 50)

	require.Equal(t, "Andy Weir", name)
	require.Len(t, works, 2)
	require.Equal(t, "The Martian", works[0].Title)
	require.Equal(t, 4.41, works[0].Rating)
	require.Equal(t, "Artemis", works[1].Title)
	require.Equal(t, 0.0, works[1].Rating)
	// The incomplete entry never produced a rating lookup.
	require.Equal(t, int64(2), ratingCalls.Load())
}
