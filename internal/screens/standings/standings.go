// Package standings shows the cumulative rankings of the current
// tournament.
package standings

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gallop/internal/router"
	"github.com/abhisek/gallop/internal/screen"
	"github.com/abhisek/gallop/internal/standings"
	"github.com/abhisek/gallop/internal/ui/components"
	"github.com/abhisek/gallop/internal/ui/layout"
	"github.com/abhisek/gallop/internal/ui/theme"
)

// StandingsScreen lists rankings by points with the leader on top.
type StandingsScreen struct {
	agg      *standings.Aggregator
	rankings []standings.Ranking
	table    table.Model
}

var _ screen.Screen = (*StandingsScreen)(nil)
var _ screen.KeyHintProvider = (*StandingsScreen)(nil)

// New creates a standings screen over agg.
func New(agg *standings.Aggregator) *StandingsScreen {
	return &StandingsScreen{agg: agg}
}

// Init snapshots the rankings; the screen does not follow later races.
func (s *StandingsScreen) Init() tea.Cmd {
	s.rankings = s.agg.Sorted()
	rows := make([]table.Row, len(s.rankings))
	for i, r := range s.rankings {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			r.Name,
			strconv.Itoa(r.TotalPoints),
			strconv.Itoa(r.RacesParticipated),
			strconv.Itoa(r.BestPosition),
			fmt.Sprintf("%.2f", r.AveragePosition),
		}
	}
	s.table = components.NewTable([]table.Column{
		{Title: "#", Width: 3},
		{Title: "Competitor", Width: 20},
		{Title: "Pts", Width: 5},
		{Title: "Races", Width: 6},
		{Title: "Best", Width: 5},
		{Title: "Avg", Width: 6},
	}, rows, min(len(rows), 12))
	return nil
}

func (s *StandingsScreen) Title() string {
	return "Standings"
}

func (s *StandingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StandingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *StandingsScreen) View(width, height int) string {
	if len(s.rankings) == 0 {
		return lipgloss.NewStyle().
			Width(width).Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.TextDim).Italic(true).
			Render("No races run yet.")
	}

	var b strings.Builder
	lead := s.rankings[0]
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
			Render(fmt.Sprintf("♛ %s · %d pts", lead.Name, lead.TotalPoints))))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.table.View()))
	b.WriteString("\n\n")

	if c := s.table.Cursor(); c >= 0 && c < len(s.rankings) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderPositions(s.rankings[c])))
	}
	return b.String()
}

// renderPositions shows one competitor's placings, medals in color.
func renderPositions(r standings.Ranking) string {
	parts := make([]string, len(r.Positions))
	for i, p := range r.Positions {
		parts[i] = lipgloss.NewStyle().Foreground(theme.Medal(p)).Render(ordinal(p))
	}
	name := lipgloss.NewStyle().Foreground(theme.Silk(r.Color)).Bold(true).Render(r.Name)
	return name + "  " + strings.Join(parts, " ")
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix
}
