package runner

import (
	"context"
	"sync"

	"rowpost/internal/dataset"
	"rowpost/internal/slots"
	"rowpost/internal/udf"
	"rowpost/pkg/rowbridge"
)

// rowJobDeps bundles dependencies for executing row jobs.
type rowJobDeps struct {
	fn       udf.RowFunc
	pool     slots.Slots
	observer *rowObserver
	now      nowFunc
}

// runRowJobsConcurrent executes row jobs across workers and preserves
// input ordering in the returned records.
func runRowJobsConcurrent(ctx context.Context, rows []dataset.Row, workers int, deps rowJobDeps) []RowRecord {
	records := make([]RowRecord, len(rows))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				records[index] = executeRowJob(ctx, rows[index], deps)
			}
		}()
	}

	for index := range rows {
		jobs <- index
	}
	close(jobs)
	wg.Wait()
	return records
}

// executeRowJob reserves a slot, invokes the row function, and reports
// lifecycle events for one row.
func executeRowJob(ctx context.Context, row dataset.Row, deps rowJobDeps) RowRecord {
	deps.observer.Emit(row.Index, RowReserving, 0, "", 0)
	release, err := deps.pool.Reserve(ctx)
	if err != nil {
		record := RowRecord{
			Index:     row.Index,
			Payload:   row.Payload,
			Result:    rowbridge.Result{Kind: rowbridge.OutcomeCancelled, Detail: err.Error()},
			StartedAt: deps.now(),
		}
		deps.observer.Emit(row.Index, RowCancelled, 0, record.Result.Detail, 0)
		return record
	}
	defer func() {
		// The slot must come back even when the run context is gone.
		_ = release(context.WithoutCancel(ctx))
	}()

	deps.observer.Emit(row.Index, RowPosting, 0, "", 0)
	startedAt := deps.now()
	result := deps.fn(ctx, row.Payload)
	elapsed := deps.now().Sub(startedAt)

	deps.observer.Emit(row.Index, terminalEventType(result.Kind), result.Status, result.Detail, elapsed)
	return RowRecord{
		Index:     row.Index,
		Payload:   row.Payload,
		Result:    result,
		StartedAt: startedAt,
		Elapsed:   elapsed,
	}
}

// terminalEventType maps an outcome kind to its observer event.
func terminalEventType(kind rowbridge.OutcomeKind) RowEventType {
	switch kind {
	case rowbridge.OutcomeSuccess:
		return RowSuccess
	case rowbridge.OutcomeTimedOut:
		return RowTimedOut
	case rowbridge.OutcomeCancelled:
		return RowCancelled
	default:
		return RowFailure
	}
}
