package sinks

import (
	"context"
	"sync"

	"github.com/jfalvarez/bookscout/internal/progress"
)

// Snapshot is a point-in-time view of run progress served by the status
// endpoint.
type Snapshot struct {
	RunID      string `json:"run_id"`
	Authors    int    `json:"authors"`
	Works      int    `json:"works"`
	LastAuthor string `json:"last_author,omitempty"`
	Done       bool   `json:"done"`
}

// Tracker keeps live run counters behind a mutex so the status server can
// read them while the pipeline runs.
type Tracker struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Consume folds the event into the live snapshot.
func (t *Tracker) Consume(_ context.Context, evt progress.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch evt.Stage {
	case progress.StageRunStart:
		t.snap = Snapshot{RunID: evt.RunID.String()}
	case progress.StageAuthorDone:
		t.snap.Authors++
		t.snap.LastAuthor = evt.Author
	case progress.StageWorkEmitted:
		t.snap.Works++
	case progress.StageRunDone:
		t.snap.Done = true
	}
	return nil
}

// Close implements the Sink interface; it performs no action.
func (t *Tracker) Close(context.Context) error {
	return nil
}

// Snapshot returns a copy of the current progress view.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}
