package runner

import (
	"time"

	"rowpost/pkg/rowbridge"
)

// RowRecord captures the outcome of one row invocation.
type RowRecord struct {
	Index     int
	Payload   []byte
	Result    rowbridge.Result
	StartedAt time.Time
	Elapsed   time.Duration
}

// OutcomeCounts tallies terminal outcomes across a run.
type OutcomeCounts struct {
	Success   int
	Failure   int
	TimedOut  int
	Cancelled int
}

// Total returns the number of counted rows.
func (c OutcomeCounts) Total() int {
	return c.Success + c.Failure + c.TimedOut + c.Cancelled
}

// Results describes a completed run.
type Results struct {
	RunID      string
	Function   string
	Endpoint   string
	Input      string
	StartedAt  time.Time
	FinishedAt time.Time
	Rows       []RowRecord
	Counts     OutcomeCounts
}

// countOutcomes tallies terminal outcome kinds over row records.
func countOutcomes(rows []RowRecord) OutcomeCounts {
	counts := OutcomeCounts{}
	for _, row := range rows {
		switch row.Result.Kind {
		case rowbridge.OutcomeSuccess:
			counts.Success++
		case rowbridge.OutcomeFailure:
			counts.Failure++
		case rowbridge.OutcomeTimedOut:
			counts.TimedOut++
		case rowbridge.OutcomeCancelled:
			counts.Cancelled++
		}
	}
	return counts
}
