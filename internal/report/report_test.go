package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"rowpost/internal/runner"
	"rowpost/internal/runstore"
)

// TestRenderReportHTMLListsRuns ensures run rows appear with counts.
func TestRenderReportHTMLListsRuns(t *testing.T) {
	runs := []runstore.RunSummary{
		{
			RunID:     "run-1",
			Function:  "http_post",
			Endpoint:  "http://example/rows",
			StartedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			Counts:    runner.OutcomeCounts{Success: 3, Failure: 1},
		},
	}
	html, err := RenderReportHTML(context.Background(), runs)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"run-1", "http_post", "http://example/rows", "75.00%", "2026-03-01T10:00:00Z"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in report:\n%s", want, html)
		}
	}
}

// TestRenderReportHTMLEmpty ensures the empty state renders.
func TestRenderReportHTMLEmpty(t *testing.T) {
	html, err := RenderReportHTML(context.Background(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "No runs recorded yet") {
		t.Fatalf("expected empty state, got:\n%s", html)
	}
}

// TestRenderReportHTMLEscapesValues ensures endpoint text is HTML escaped.
func TestRenderReportHTMLEscapesValues(t *testing.T) {
	runs := []runstore.RunSummary{{RunID: "run-1", Endpoint: "http://example/<script>"}}
	html, err := RenderReportHTML(context.Background(), runs)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("expected escaped endpoint, got:\n%s", html)
	}
}

// TestFormatRateZeroTotal avoids division by zero.
func TestFormatRateZeroTotal(t *testing.T) {
	if got := formatRate(0, 0); got != "0.00%" {
		t.Fatalf("unexpected rate %q", got)
	}
}
