package report

import (
	"fmt"
	"time"
)

// formatRate returns a percentage string for report output.
func formatRate(part, total int) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(part)/float64(total)*100)
}

// formatTime renders a timestamp for the report table.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
