package live

import "rowpost/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventRow delivers a row status update.
	EventRow
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind   EventKind
	RunID  string
	Input  string
	Total  int
	Row    runner.RowEvent
	Counts runner.OutcomeCounts
}
