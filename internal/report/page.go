// Package report renders run summaries as an HTML page.
package report

import (
	"context"
	"fmt"
	"io"

	"rowpost/internal/runstore"

	"github.com/a-h/templ"
)

// ReportPage builds the runs overview component.
func ReportPage(runs []runstore.RunSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageHead); err != nil {
			return err
		}
		if len(runs) == 0 {
			if _, err := io.WriteString(w, `<p>No runs recorded yet.</p>`); err != nil {
				return err
			}
			return writePageFoot(w)
		}
		if _, err := io.WriteString(w, tableHead); err != nil {
			return err
		}
		for _, run := range runs {
			if err := writeRunRow(w, run); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</tbody></table>`); err != nil {
			return err
		}
		return writePageFoot(w)
	})
}

const pageHead = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Rowpost Runs</title>
  </head>
  <body>
    <h1>Rowpost Runs</h1>
`

const tableHead = `<table>
<thead><tr>
<th>Run</th><th>Function</th><th>Endpoint</th><th>Started</th>
<th>Success</th><th>Failure</th><th>Timed out</th><th>Cancelled</th><th>Success rate</th>
</tr></thead><tbody>`

// writeRunRow emits one table row for a stored run.
func writeRunRow(w io.Writer, run runstore.RunSummary) error {
	_, err := fmt.Fprintf(
		w,
		`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%s</td></tr>`,
		templ.EscapeString(run.RunID),
		templ.EscapeString(run.Function),
		templ.EscapeString(run.Endpoint),
		templ.EscapeString(formatTime(run.StartedAt)),
		run.Counts.Success,
		run.Counts.Failure,
		run.Counts.TimedOut,
		run.Counts.Cancelled,
		formatRate(run.Counts.Success, run.Counts.Total()),
	)
	return err
}

func writePageFoot(w io.Writer) error {
	_, err := io.WriteString(w, `
    <p><a href="/data/db.duckdb">Download DuckDB database</a></p>
  </body>
</html>`)
	return err
}
