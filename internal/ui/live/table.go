package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// defaultColumns returns the initial table layout.
func defaultColumns() []table.Column {
	return columnsForWidth(100)
}

// columnsForWidth sizes columns for the terminal width.
func columnsForWidth(width int) []table.Column {
	detail := width - 34
	if detail < 20 {
		detail = 20
	}
	return []table.Column{
		{Title: "Row", Width: 5},
		{Title: "Status", Width: 12},
		{Title: "HTTP", Width: 5},
		{Title: "Elapsed", Width: 9},
		{Title: "Detail", Width: detail},
	}
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatIndex(row.Index),
			formatStatus(row, noColor),
			formatHTTPStatus(row.HTTPStatus),
			formatRowDuration(row, now),
			formatDetail(row.Detail),
		})
	}
	return rows
}
