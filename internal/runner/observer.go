package runner

import "time"

// RowEventType identifies a row status update for observers.
type RowEventType string

const (
	// RowQueued marks a row known but not yet started.
	RowQueued RowEventType = "queued"
	// RowReserving marks a slot reservation in progress.
	RowReserving RowEventType = "reserving"
	// RowPosting marks an active request.
	RowPosting RowEventType = "posting"
	// RowSuccess marks a 2xx completion.
	RowSuccess RowEventType = "success"
	// RowFailure marks a transport or HTTP status failure.
	RowFailure RowEventType = "failure"
	// RowTimedOut marks a completion gate timeout.
	RowTimedOut RowEventType = "timed_out"
	// RowCancelled marks a cancelled invocation.
	RowCancelled RowEventType = "cancelled"
)

// RowEvent carries a single status update for a row.
type RowEvent struct {
	RowIndex  int
	Type      RowEventType
	Status    int
	Detail    string
	Elapsed   time.Duration
	EmittedAt time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string, input string, total int)
	// OnRowEvent delivers a row status update.
	OnRowEvent(event RowEvent)
	// OnRunEnd signals run completion.
	OnRunEnd(results Results)
}

// rowObserver wraps a RunObserver with nil-safe emission.
type rowObserver struct {
	observer RunObserver
	now      func() time.Time
}

// newRowObserver constructs a row observer when a RunObserver is set.
func newRowObserver(observer RunObserver, now func() time.Time) *rowObserver {
	if observer == nil {
		return nil
	}
	return &rowObserver{observer: observer, now: now}
}

// EmitQueuedAll emits queued events for every row in the run.
func (o *rowObserver) EmitQueuedAll(total int) {
	if o == nil {
		return
	}
	for index := 0; index < total; index++ {
		o.Emit(index, RowQueued, 0, "", 0)
	}
}

// Emit emits an observer event for the given row index.
func (o *rowObserver) Emit(index int, eventType RowEventType, status int, detail string, elapsed time.Duration) {
	if o == nil || o.observer == nil {
		return
	}
	o.observer.OnRowEvent(RowEvent{
		RowIndex:  index,
		Type:      eventType,
		Status:    status,
		Detail:    detail,
		Elapsed:   elapsed,
		EmittedAt: o.now(),
	})
}
