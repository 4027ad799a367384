// Package progress defines the event stream emitted while an export runs and
// the hub that fans it out to sinks.
package progress

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Stage denotes the type of milestone represented by an Event.
type Stage string

// Supported progress stages.
const (
	StageRunStart    Stage = "RUN_START"
	StageAuthorStart Stage = "AUTHOR_START"
	StageAuthorDone  Stage = "AUTHOR_DONE"
	StageWorkEmitted Stage = "WORK_EMITTED"
	StageRunDone     Stage = "RUN_DONE"
)

// Event is a single milestone in an export run. AuthorID and Author are set
// on author stages; WorkKey on work stages; Works carries the per-author kept
// count on AUTHOR_DONE and the run total on RUN_DONE.
type Event struct {
	RunID    uuid.UUID
	Stage    Stage
	AuthorID string
	Author   string
	WorkKey  string
	Works    int
	At       time.Time
	Dur      time.Duration
}

// Validate rejects events that would be meaningless downstream.
func (e Event) Validate() error {
	if e.RunID == uuid.Nil {
		return errors.New("progress: event missing run id")
	}
	if e.Stage == "" {
		return errors.New("progress: event missing stage")
	}
	return nil
}
