// Package pipeline drives the per-author export loop and enforces the global
// record cap.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jfalvarez/bookscout/internal/library"
	"github.com/jfalvarez/bookscout/internal/progress"
)

// WorksBuilder resolves one author id into a display name and its works.
type WorksBuilder interface {
	BuildWorks(ctx context.Context, authorID string, limit int) (string, []library.Work)
}

// Config bounds the run.
type Config struct {
	PerAuthorLimit int
	GlobalLimit    int
}

// Pipeline iterates the author list in order, builds each author's work set,
// and forwards finished works to the sinks. The global record count is the
// only state carried across author iterations and the Pipeline is its sole
// writer, so a single-threaded run needs no locking.
type Pipeline struct {
	builder WorksBuilder
	sinks   []library.WorkSink
	hub     *progress.Hub
	clock   library.Clock
	cfg     Config
	logger  *zap.Logger
}

// Summary reports what one run produced.
type Summary struct {
	RunID   uuid.UUID
	Authors int
	Works   int
	Elapsed time.Duration
}

// New constructs a Pipeline.
func New(
	builder WorksBuilder,
	sinks []library.WorkSink,
	hub *progress.Hub,
	clock library.Clock,
	cfg Config,
	logger *zap.Logger,
) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		builder: builder,
		sinks:   sinks,
		hub:     hub,
		clock:   clock,
		cfg:     cfg,
		logger:  logger,
	}
}

// Run processes author ids in order until the list or the global record cap
// is exhausted. Once the cap is reached no further author is queried, and the
// cap may truncate an author's works mid-list; truncation is silent. Fetch
// misses never fail the run; a sink write failure does, immediately.
func (p *Pipeline) Run(ctx context.Context, authorIDs []string) (Summary, error) {
	runID := uuid.New()
	start := p.clock.Now()
	p.hub.Emit(progress.Event{RunID: runID, Stage: progress.StageRunStart, At: start})

	emitted := 0
	authors := 0
	for _, authorID := range authorIDs {
		if emitted >= p.cfg.GlobalLimit {
			break
		}
		if err := ctx.Err(); err != nil {
			return Summary{}, fmt.Errorf("run canceled: %w", err)
		}

		p.hub.Emit(progress.Event{
			RunID:    runID,
			Stage:    progress.StageAuthorStart,
			AuthorID: authorID,
			At:       p.clock.Now(),
		})

		name, works := p.builder.BuildWorks(ctx, authorID, p.cfg.PerAuthorLimit)
		authors++

		kept := 0
		for _, w := range works {
			if emitted >= p.cfg.GlobalLimit {
				break
			}
			for _, sink := range p.sinks {
				if err := sink.WriteWork(w); err != nil {
					return Summary{}, fmt.Errorf("write work %q: %w", w.Key, err)
				}
			}
			emitted++
			kept++
			p.hub.Emit(progress.Event{
				RunID:    runID,
				Stage:    progress.StageWorkEmitted,
				AuthorID: authorID,
				Author:   name,
				WorkKey:  w.Key,
				At:       p.clock.Now(),
			})
		}

		p.hub.Emit(progress.Event{
			RunID:    runID,
			Stage:    progress.StageAuthorDone,
			AuthorID: authorID,
			Author:   name,
			Works:    kept,
			At:       p.clock.Now(),
		})
		p.logger.Info("author processed",
			zap.String("author_id", authorID),
			zap.String("author", name),
			zap.Int("kept", kept),
			zap.Int("total", emitted))
	}

	elapsed := p.clock.Now().Sub(start)
	p.hub.Emit(progress.Event{
		RunID: runID,
		Stage: progress.StageRunDone,
		Works: emitted,
		At:    p.clock.Now(),
		Dur:   elapsed,
	})
	return Summary{
		RunID:   runID,
		Authors: authors,
		Works:   emitted,
		Elapsed: elapsed,
	}, nil
}
