package library

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/jfalvarez/bookscout/internal/metrics"
	"github.com/jfalvarez/bookscout/internal/openlibrary"
)

// Aggregator resolves one author id into a display name and a bounded,
// rating-enriched set of works. An Aggregator is stateless across authors;
// every BuildWorks call is independent.
type Aggregator struct {
	fetcher Fetcher
	ratings RatingsFetcher
	baseURL string
	logger  *zap.Logger
}

// NewAggregator builds an Aggregator against the given API base URL.
func NewAggregator(fetcher Fetcher, ratings RatingsFetcher, baseURL string, logger *zap.Logger) *Aggregator {
	if baseURL == "" {
		baseURL = openlibrary.DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		fetcher: fetcher,
		ratings: ratings,
		baseURL: baseURL,
		logger:  logger,
	}
}

// BuildWorks fetches the author's metadata and works listing, materializes
// provisional works for every complete entry up to limit, resolves their
// ratings in one concurrent pass, and merges the results back by key.
//
// Every fetch miss degrades to "no data for this item": a metadata miss
// yields the unknown-author sentinel, a listing miss yields an empty set, and
// a rating miss leaves the 0.0 sentinel on an otherwise complete work.
func (a *Aggregator) BuildWorks(ctx context.Context, authorID string, limit int) (string, []Work) {
	name := a.fetchName(ctx, authorID)

	var listing openlibrary.WorksResponse
	if err := a.fetcher.FetchJSON(ctx, openlibrary.WorksURL(a.baseURL, authorID), &listing); err != nil {
		a.logger.Warn("works listing miss",
			zap.String("author_id", authorID),
			zap.Error(err))
		return name, nil
	}
	if len(listing.Entries) == 0 {
		return name, nil
	}

	works, ratingURLs := a.collectEntries(name, listing.Entries, limit)
	a.mergeRatings(ctx, works, ratingURLs)

	a.logger.Debug("author works built",
		zap.String("author_id", authorID),
		zap.String("author", name),
		zap.Int("works", len(works)))
	return name, works
}

// collectEntries walks the listing in API order and materializes provisional
// works with the 0.0 rating sentinel. The limit bounds entries considered for
// rating lookup; incomplete entries are skipped without counting toward it.
// Duplicate keys overwrite in place, keeping the original position.
func (a *Aggregator) collectEntries(author string, entries []openlibrary.WorkEntry, limit int) ([]Work, map[string]string) {
	var (
		works      []Work
		index      = make(map[string]int)
		ratingURLs = make(map[string]string)
	)
	for _, entry := range entries {
		if len(works) >= limit {
			break
		}
		title := entry.Title
		year := openlibrary.PublishedYear(entry.Created.Value)
		description := entry.Description.Value
		if title == "" || year == "" || description == "" {
			continue
		}

		key := openlibrary.WorkKey(entry.Key)
		ratingURLs[key] = openlibrary.RatingsURL(a.baseURL, key)

		w := Work{
			Author:      author,
			Title:       title,
			Published:   year,
			Rating:      0.0,
			Description: description,
			Key:         key,
		}
		if i, ok := index[key]; ok {
			works[i] = w
			continue
		}
		index[key] = len(works)
		works = append(works, w)
	}
	return works, ratingURLs
}

// mergeRatings resolves all rating URLs in one concurrent pass and attaches
// each average onto the provisional work sharing its key. A missing result or
// a zero average leaves the sentinel; zero-rated works are kept on purpose so
// the result set is not starved.
func (a *Aggregator) mergeRatings(ctx context.Context, works []Work, ratingURLs map[string]string) {
	if len(works) == 0 {
		return
	}
	resolved := a.ratings.FetchMany(ctx, ratingURLs)
	for i := range works {
		raw, ok := resolved[works[i].Key]
		if !ok {
			metrics.IncRatingsMissing()
			continue
		}
		var resp openlibrary.RatingsResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			a.logger.Debug("ratings decode failed",
				zap.String("key", works[i].Key),
				zap.Error(err))
			metrics.IncRatingsMissing()
			continue
		}
		if resp.Summary.Average > 0.0 {
			works[i].Rating = resp.Summary.Average
		} else {
			metrics.IncRatingsMissing()
		}
	}
}

func (a *Aggregator) fetchName(ctx context.Context, authorID string) string {
	var resp openlibrary.AuthorResponse
	if err := a.fetcher.FetchJSON(ctx, openlibrary.AuthorURL(a.baseURL, authorID), &resp); err != nil {
		a.logger.Warn("author metadata miss",
			zap.String("author_id", authorID),
			zap.Error(err))
		return UnknownAuthor
	}
	if resp.Name == "" {
		return UnknownAuthor
	}
	return resp.Name
}
