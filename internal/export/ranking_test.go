package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jfalvarez/bookscout/internal/library"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}

func scorerAt2025() library.Scorer {
	return library.NewScorer(fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)})
}

func TestRankingTopOrdersByScore(t *testing.T) {
	t.Parallel()

	ranking := NewRanking(scorerAt2025())
	// score = yearsOld*0.25 + rating*0.75
	works := []library.Work{
		{Title: "Old Unrated", Published: "1900", Rating: 0.0}, // 31.25
		{Title: "New Rated", Published: "2020", Rating: 9.0},   // 8.0
		{Title: "Mid", Published: "1990", Rating: 4.0},         // 11.75
	}
	for _, w := range works {
		require.NoError(t, ranking.WriteWork(w))
	}

	top := ranking.Top(2)
	require.Len(t, top, 2)
	require.Equal(t, "Old Unrated", top[0].Title)
	require.Equal(t, "Mid", top[1].Title)

	all := ranking.Top(0)
	require.Len(t, all, 3)
}

func TestRankingTopStableForTies(t *testing.T) {
	t.Parallel()

	ranking := NewRanking(scorerAt2025())
	require.NoError(t, ranking.WriteWork(library.Work{Title: "First", Published: "2000", Rating: 2.0}))
	require.NoError(t, ranking.WriteWork(library.Work{Title: "Second", Published: "2000", Rating: 2.0}))

	top := ranking.Top(2)
	require.Equal(t, "First", top[0].Title)
	require.Equal(t, "Second", top[1].Title)
}

func TestRankingRender(t *testing.T) {
	t.Parallel()

	ranking := NewRanking(scorerAt2025())
	require.NoError(t, ranking.WriteWork(library.Work{
		Author: "Andy Weir", Title: "The Martian", Published: "2011", Rating: 8.0,
	}))

	var buf bytes.Buffer
	ranking.Render(&buf, 10)

	out := buf.String()
	require.Contains(t, out, "The Martian")
	require.Contains(t, out, "8.00")
	require.Contains(t, out, "9.50") // 14*0.25 + 8*0.75
}
