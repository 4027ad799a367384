package library

import "strconv"

// Default weights for the relevance score.
const (
	DefaultYearWeight   = 0.25
	DefaultRatingWeight = 0.75
)

// Scorer computes a relevance score from a work's age and rating. The current
// year comes from the injected Clock, never from an implicit global.
type Scorer struct {
	clock        Clock
	yearWeight   float64
	ratingWeight float64
}

// NewScorer builds a Scorer with the default weights.
func NewScorer(clock Clock) Scorer {
	return Scorer{
		clock:        clock,
		yearWeight:   DefaultYearWeight,
		ratingWeight: DefaultRatingWeight,
	}
}

// WithWeights returns a copy of the Scorer using the given weights.
func (s Scorer) WithWeights(yearWeight, ratingWeight float64) Scorer {
	s.yearWeight = yearWeight
	s.ratingWeight = ratingWeight
	return s
}

// Score weighs how old a work is against how well it is rated. A non-numeric
// published year counts as year zero; future-dated works produce a negative
// age, which is not clamped.
func (s Scorer) Score(w Work) float64 {
	year, _ := strconv.Atoi(w.Published)
	yearsOld := s.clock.Now().Year() - year
	return float64(yearsOld)*s.yearWeight + w.Rating*s.ratingWeight
}
