package library

import (
	"context"
	"encoding/json"
	"time"
)

// Fetcher performs a single JSON GET. Implementations report every non-200
// response, transport failure, and decode failure as an error; callers treat
// any error as "no data" for that URL rather than aborting.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string, v any) error
}

// RatingsFetcher resolves many independent lookups concurrently and joins the
// raw bodies by key. Keys whose fetch failed are absent from the result.
type RatingsFetcher interface {
	FetchMany(ctx context.Context, urls map[string]string) map[string]json.RawMessage
}

// WorkSink consumes finalized works one at a time, in emission order.
type WorkSink interface {
	WriteWork(Work) error
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
