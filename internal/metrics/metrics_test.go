package metrics

import (
	"testing"
	"time"
)

func TestEndpointLabel(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"author metadata", "https://openlibrary.org/authors/OL1A.json", "authors"},
		{"works listing", "https://openlibrary.org/authors/OL1A/works.json", "works"},
		{"ratings", "https://openlibrary.org/works/OL1W/ratings.json", "ratings"},
		{"unrelated path", "https://openlibrary.org/search.json", "other"},
		{"invalid url", "http://%", "unknown"},
		{"empty string", "", "other"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EndpointLabel(tc.input); got != tc.expected {
				t.Errorf("EndpointLabel(%q) = %q; want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestObserveFetchBeforeInitIsNoop(t *testing.T) {
	// Collectors are nil until Init runs; this must not panic.
	ObserveFetch("https://openlibrary.org/authors/OL1A.json", OutcomeOK, time.Millisecond)
	IncRatingsMissing()
}

func TestInit(t *testing.T) {
	// Call Init multiple times to test idempotency.
	Init()
	Init()

	if fetchesTotal == nil || fetchDurationSeconds == nil || ratingsMissingTotal == nil {
		t.Fatal("Init() did not initialize metrics collectors")
	}

	ObserveFetch("https://openlibrary.org/works/OL1W/ratings.json", OutcomeMiss, 5*time.Millisecond)
	IncRatingsMissing()
}
