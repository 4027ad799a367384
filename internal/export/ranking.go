package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jfalvarez/bookscout/internal/library"
)

// Ranking collects every emitted work and renders the top scorers as a
// console table at the end of a run. It is the consumer of the relevance
// score; the CSV and HTML outputs carry the raw fields only.
type Ranking struct {
	scorer library.Scorer
	works  []library.Work
}

// NewRanking builds an empty Ranking over the given scorer.
func NewRanking(scorer library.Scorer) *Ranking {
	return &Ranking{scorer: scorer}
}

// WriteWork records the work for ranking. It never fails.
func (r *Ranking) WriteWork(w library.Work) error {
	r.works = append(r.works, w)
	return nil
}

// Top returns the n highest-scoring works, ties broken by emission order.
// n <= 0 returns everything.
func (r *Ranking) Top(n int) []library.Work {
	ranked := append([]library.Work(nil), r.works...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return r.scorer.Score(ranked[i]) > r.scorer.Score(ranked[j])
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Render writes the ranked table for the top n works to out.
func (r *Ranking) Render(out io.Writer, n int) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false

	t.AppendHeader(table.Row{"#", "Author", "Book Title", "Published", "Rating", "Score"})
	for i, w := range r.Top(n) {
		t.AppendRow(table.Row{
			i + 1,
			w.Author,
			w.Title,
			w.Published,
			FormatRating(w.Rating),
			fmt.Sprintf("%.2f", r.scorer.Score(w)),
		})
	}
	t.Render()
}
