package live

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"rowpost/internal/runner"
)

// formatIndex formats a row index for display.
func formatIndex(index int) string {
	return "R" + pad2(index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatStatus renders a status string for a row.
func formatStatus(row RowState, noColor bool) string {
	return stylizeStatus(statusLabel(row.Status), row.Status, noColor)
}

// statusLabel maps status codes to display labels.
func statusLabel(status runner.RowEventType) string {
	switch status {
	case runner.RowQueued:
		return "queued"
	case runner.RowReserving:
		return "reserving"
	case runner.RowPosting:
		return "posting"
	case runner.RowSuccess:
		return "success"
	case runner.RowFailure:
		return "failure"
	case runner.RowTimedOut:
		return "timed out"
	case runner.RowCancelled:
		return "cancelled"
	default:
		return string(status)
	}
}

// formatHTTPStatus formats the HTTP status column.
func formatHTTPStatus(status int) string {
	if status <= 0 {
		return ""
	}
	return fmtInt(status)
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row RowState, now time.Time) string {
	if row.Elapsed > 0 {
		return row.Elapsed.Round(time.Millisecond).String()
	}
	if !row.StartedAt.IsZero() {
		return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	return ""
}

// formatDetail truncates detail text for display.
func formatDetail(detail string) string {
	const limit = 60
	if len(detail) <= limit {
		return detail
	}
	return detail[:limit-3] + "..."
}

// stylizeStatus applies status coloring when enabled.
func stylizeStatus(text string, status runner.RowEventType, noColor bool) string {
	if noColor {
		return text
	}
	return statusStyle(status).Render(text)
}

// statusStyle selects a style for a given status.
func statusStyle(status runner.RowEventType) lipgloss.Style {
	color := lipgloss.Color("244")
	switch status {
	case runner.RowSuccess:
		color = lipgloss.Color("42")
	case runner.RowFailure:
		color = lipgloss.Color("196")
	case runner.RowTimedOut:
		color = lipgloss.Color("220")
	case runner.RowCancelled:
		color = lipgloss.Color("246")
	case runner.RowPosting:
		color = lipgloss.Color("33")
	case runner.RowReserving:
		color = lipgloss.Color("39")
	case runner.RowQueued:
		color = lipgloss.Color("246")
	}
	return lipgloss.NewStyle().Foreground(color)
}
