package report

import (
	"context"
	"strings"

	"rowpost/internal/runstore"
)

// RenderReportHTML renders the runs page into a string.
func RenderReportHTML(ctx context.Context, runs []runstore.RunSummary) (string, error) {
	var builder strings.Builder
	if err := ReportPage(runs).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}
