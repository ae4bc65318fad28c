package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"rowpost/internal/runner"
)

// plainObserver prints row lifecycle lines for non-TTY output.
type plainObserver struct {
	mu     sync.Mutex
	stdout io.Writer
}

func newPlainObserver(stdout io.Writer) *plainObserver {
	return &plainObserver{stdout: stdout}
}

func (p *plainObserver) OnRunStart(runID string, input string, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.stdout, "Run %s: %d rows from %s\n", runID, total, input)
}

func (p *plainObserver) OnRowEvent(event runner.RowEvent) {
	switch event.Type {
	case runner.RowSuccess, runner.RowFailure, runner.RowTimedOut, runner.RowCancelled:
	default:
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	line := fmt.Sprintf("row %d: %s", event.RowIndex, event.Type)
	if event.Status > 0 {
		line += fmt.Sprintf(" status=%d", event.Status)
	}
	if event.Detail != "" {
		line += " " + event.Detail
	}
	if event.Elapsed > 0 {
		line += fmt.Sprintf(" (%s)", event.Elapsed.Round(time.Millisecond))
	}
	fmt.Fprintln(p.stdout, line)
}

func (p *plainObserver) OnRunEnd(results runner.Results) {
	p.mu.Lock()
	defer p.mu.Unlock()
	counts := results.Counts
	fmt.Fprintf(p.stdout, "Run %s finished: success=%d failure=%d timed_out=%d cancelled=%d\n",
		results.RunID, counts.Success, counts.Failure, counts.TimedOut, counts.Cancelled)
}
