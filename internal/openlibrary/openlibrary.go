// Package openlibrary models the subset of the Open Library API consumed by
// the export pipeline: author metadata, works listings, and rating summaries.
package openlibrary

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultBaseURL is the public Open Library endpoint.
const DefaultBaseURL = "https://openlibrary.org"

// worksKeyPrefix is the canonical path prefix carried by listing entry keys.
const worksKeyPrefix = "/works/"

// AuthorURL resolves an author id to its metadata document URL.
func AuthorURL(base, id string) string {
	return fmt.Sprintf("%s/authors/%s.json", strings.TrimRight(base, "/"), id)
}

// WorksURL resolves an author id to its works listing URL.
func WorksURL(base, id string) string {
	return fmt.Sprintf("%s/authors/%s/works.json", strings.TrimRight(base, "/"), id)
}

// RatingsURL resolves a work key to its community ratings URL.
func RatingsURL(base, key string) string {
	return fmt.Sprintf("%s/works/%s/ratings.json", strings.TrimRight(base, "/"), key)
}

// AuthorResponse is the author metadata document.
type AuthorResponse struct {
	Name string `json:"name"`
}

// WorksResponse lists an author's published works as returned in one page.
type WorksResponse struct {
	Entries []WorkEntry `json:"entries"`
}

// WorkEntry is a single works listing entry. Only the fields the pipeline
// consumes are modeled; everything else in the document is ignored.
type WorkEntry struct {
	Title       string      `json:"title"`
	Key         string      `json:"key"`
	Created     TypedValue  `json:"created"`
	Description Description `json:"description"`
}

// TypedValue is the Open Library {type, value} wrapper.
type TypedValue struct {
	Value string `json:"value"`
}

// Description tolerates the two shapes the API serves: a flat string or a
// typed object carrying the text in its value field.
type Description struct {
	Value string
}

// UnmarshalJSON accepts either description shape. Null and absent both leave
// the value empty, which the aggregator treats as an incomplete entry.
func (d *Description) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		d.Value = ""
		return nil
	}
	if trimmed[0] == '"' {
		return json.Unmarshal(data, &d.Value)
	}
	var tv TypedValue
	if err := json.Unmarshal(data, &tv); err != nil {
		return err
	}
	d.Value = tv.Value
	return nil
}

// RatingsResponse is the community ratings document for a work.
type RatingsResponse struct {
	Summary RatingsSummary `json:"summary"`
}

// RatingsSummary carries the average rating; null averages decode to zero.
type RatingsSummary struct {
	Average float64 `json:"average"`
}

// WorkKey strips the canonical path prefix from a listing entry key.
func WorkKey(raw string) string {
	return strings.TrimPrefix(raw, worksKeyPrefix)
}

// PublishedYear extracts the 4-digit year from a creation timestamp. Too-short
// timestamps yield an empty year, which marks the entry incomplete.
func PublishedYear(created string) string {
	if len(created) < 4 {
		return ""
	}
	return created[:4]
}
