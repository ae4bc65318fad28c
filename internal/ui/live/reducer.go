package live

import (
	"fmt"

	"rowpost/internal/runner"
)

// Reduce applies a row event to the UI state.
func Reduce(state State, event runner.RowEvent) State {
	state = ensureRow(state, event)
	state = applyRowEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, event runner.RowEvent) State {
	if event.RowIndex < 0 {
		return state
	}
	if event.RowIndex < len(state.Rows) {
		return state
	}
	rows := make([]RowState, event.RowIndex+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = RowState{Index: i, Status: runner.RowQueued}
	}
	state.Rows = rows
	return state
}

// applyRowEvent updates a row with the given event.
func applyRowEvent(state State, event runner.RowEvent) State {
	if event.RowIndex < 0 || event.RowIndex >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.RowIndex]
	row.Status = event.Type
	if event.Type == runner.RowPosting && row.StartedAt.IsZero() {
		row.StartedAt = event.EmittedAt
	}
	if isTerminalStatus(event.Type) {
		if !event.EmittedAt.IsZero() {
			row.FinishedAt = event.EmittedAt
		}
		row.HTTPStatus = event.Status
		row.Detail = event.Detail
		row.Elapsed = event.Elapsed
	}
	state.Rows[event.RowIndex] = row
	return state
}

// isTerminalStatus reports whether a status is final.
func isTerminalStatus(status runner.RowEventType) bool {
	switch status {
	case runner.RowSuccess,
		runner.RowFailure,
		runner.RowTimedOut,
		runner.RowCancelled:
		return true
	default:
		return false
	}
}

// recount recomputes status counts for the current rows.
func recount(rows []RowState) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.RowQueued:
			counts.Queued++
		case runner.RowReserving:
			counts.Reserving++
		case runner.RowPosting:
			counts.Posting++
		case runner.RowSuccess:
			counts.Done++
			counts.Success++
		case runner.RowFailure:
			counts.Done++
			counts.Failure++
		case runner.RowTimedOut:
			counts.Done++
			counts.TimedOut++
		case runner.RowCancelled:
			counts.Done++
			counts.Cancelled++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.RowEvent) string {
	switch event.Type {
	case runner.RowFailure:
		if event.Status > 0 {
			return fmt.Sprintf("Row %d failed (status %d)", event.RowIndex+1, event.Status)
		}
		return fmt.Sprintf("Row %d failed: %s", event.RowIndex+1, event.Detail)
	case runner.RowTimedOut:
		return fmt.Sprintf("Row %d timed out", event.RowIndex+1)
	case runner.RowCancelled:
		return fmt.Sprintf("Row %d cancelled", event.RowIndex+1)
	case runner.RowSuccess:
		return fmt.Sprintf("Row %d completed", event.RowIndex+1)
	}
	return ""
}
