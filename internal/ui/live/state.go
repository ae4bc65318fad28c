package live

import (
	"time"

	"rowpost/internal/runner"
)

// RowState holds UI state for a single row invocation.
type RowState struct {
	Index      int
	Status     runner.RowEventType
	HTTPStatus int
	Detail     string
	StartedAt  time.Time
	FinishedAt time.Time
	Elapsed    time.Duration
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued    int
	Reserving int
	Posting   int
	Done      int
	Success   int
	Failure   int
	TimedOut  int
	Cancelled int
}

// State captures the live UI state for a run.
type State struct {
	RunID     string
	Input     string
	Total     int
	StartedAt time.Time
	LastEvent string
	Rows      []RowState
	Counts    StatusCounts
}
