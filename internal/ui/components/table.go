package components

import (
	"charm.land/bubbles/v2/table"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gallop/internal/ui/theme"
)

// NewTable builds a read-only bubbles table in the app's colors. height
// counts rows, not including the header.
func NewTable(columns []table.Column, rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height+1),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Secondary).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.BgDark).
		Background(theme.Gold).
		Bold(true)
	s.Cell = s.Cell.Foreground(theme.Text)
	t.SetStyles(s)
	return t
}
