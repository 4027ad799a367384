// Package library defines the core types shared across the export pipeline.
package library

// Work is a single published work enriched with its community rating. A Work
// is immutable once the aggregator finalizes it; the rating starts at the 0.0
// sentinel and is replaced at most once during the merge step.
type Work struct {
	Author      string
	Title       string
	Published   string
	Rating      float64
	Description string
	Key         string
}

// UnknownAuthor is the display name used when the author metadata fetch
// misses or the document carries no name.
const UnknownAuthor = "Unknown author"
