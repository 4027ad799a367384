// Package metrics exposes Prometheus collectors for the export pipeline.
package metrics

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcome labels.
const (
	OutcomeOK          = "ok"
	OutcomeMiss        = "miss"
	OutcomeError       = "error"
	OutcomeDecodeError = "decode_error"
)

var (
	fetchesTotal         *prometheus.CounterVec
	fetchDurationSeconds *prometheus.HistogramVec
	ratingsMissingTotal  prometheus.Counter

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		fetchesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookscout_fetches_total",
				Help: "Total API fetch attempts, labeled by endpoint and outcome.",
			},
			[]string{"endpoint", "outcome"},
		)

		fetchDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bookscout_fetch_duration_seconds",
				Help:    "Histogram of API fetch latencies, labeled by endpoint.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 15},
			},
			[]string{"endpoint"},
		)

		ratingsMissingTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "bookscout_ratings_missing_total",
				Help: "Works whose rating lookup missed or returned a zero average.",
			},
		)
	})
}

// ObserveFetch records one completed fetch attempt. It is a no-op until Init
// runs, so library code can call it unconditionally.
func ObserveFetch(rawURL, outcome string, d time.Duration) {
	if fetchesTotal == nil {
		return
	}
	endpoint := EndpointLabel(rawURL)
	fetchesTotal.WithLabelValues(endpoint, outcome).Inc()
	fetchDurationSeconds.WithLabelValues(endpoint).Observe(d.Seconds())
}

// IncRatingsMissing counts a work kept with its sentinel rating.
func IncRatingsMissing() {
	if ratingsMissingTotal == nil {
		return
	}
	ratingsMissingTotal.Inc()
}

// EndpointLabel maps an Open Library URL onto a bounded label set so the
// fetch counters never explode in cardinality.
func EndpointLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "unknown"
	}
	path := u.Path
	switch {
	case strings.HasSuffix(path, "/ratings.json"):
		return "ratings"
	case strings.HasSuffix(path, "/works.json"):
		return "works"
	case strings.HasPrefix(path, "/authors/"):
		return "authors"
	default:
		return "other"
	}
}

// Handler returns the HTTP handler that serves the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
