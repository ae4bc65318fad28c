// Package runner fans row payloads out to workers and collects outcomes.
package runner

import (
	"context"
	"fmt"
	"time"

	"rowpost/internal/dataset"
	"rowpost/internal/slots"
	"rowpost/internal/udf"
)

type nowFunc func() time.Time

// Params configures a run.
type Params struct {
	RunID    string
	Function string
	Endpoint string
	Input    string
	Fn       udf.RowFunc
	Rows     []dataset.Row
	Workers  int
	Slots    slots.Slots
	Observer RunObserver
	Now      nowFunc
}

// Run executes every row through the row function and returns ordered results.
func Run(ctx context.Context, params Params) (Results, error) {
	if params.Fn == nil {
		return Results{}, fmt.Errorf("row function required")
	}
	if params.RunID == "" {
		params.RunID = NewRunID()
	}
	if params.Workers <= 0 {
		params.Workers = 1
	}
	if params.Slots == nil {
		params.Slots = slots.Noop
	}
	if params.Now == nil {
		params.Now = time.Now
	}

	observer := newRowObserver(params.Observer, params.Now)
	if params.Observer != nil {
		params.Observer.OnRunStart(params.RunID, params.Input, len(params.Rows))
	}
	observer.EmitQueuedAll(len(params.Rows))

	startedAt := params.Now()
	records := runRowJobsConcurrent(ctx, params.Rows, params.Workers, rowJobDeps{
		fn:       params.Fn,
		pool:     params.Slots,
		observer: observer,
		now:      params.Now,
	})

	results := Results{
		RunID:      params.RunID,
		Function:   params.Function,
		Endpoint:   params.Endpoint,
		Input:      params.Input,
		StartedAt:  startedAt,
		FinishedAt: params.Now(),
		Rows:       records,
		Counts:     countOutcomes(records),
	}
	if params.Observer != nil {
		params.Observer.OnRunEnd(results)
	}
	return results, nil
}
