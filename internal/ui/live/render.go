package live

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	elapsed := ""
	if !state.StartedAt.IsZero() {
		elapsed = now.Sub(state.StartedAt).Round(100 * time.Millisecond).String()
	}
	line := "Run " + state.RunID
	if state.Input != "" {
		line += " | Input: " + state.Input
	}
	if state.Total > 0 {
		line += " | Rows: " + fmtInt(state.Total)
	}
	if elapsed != "" {
		line += " | Elapsed: " + elapsed
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Queued: " + fmtInt(counts.Queued) +
		" Reserving: " + fmtInt(counts.Reserving) +
		" Posting: " + fmtInt(counts.Posting) +
		" Done: " + fmtInt(counts.Done) +
		" Success: " + fmtInt(counts.Success) +
		" Failure: " + fmtInt(counts.Failure) +
		" TimedOut: " + fmtInt(counts.TimedOut) +
		" Cancelled: " + fmtInt(counts.Cancelled)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
