package track

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/table"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gallop/internal/race"
	"github.com/abhisek/gallop/internal/tournament"
	"github.com/abhisek/gallop/internal/ui/components"
	"github.com/abhisek/gallop/internal/ui/theme"
)

func (s *TrackScreen) View(width, height int) string {
	t := s.flow.Tournament()
	if t.Status() == tournament.StatusIdle {
		return lipgloss.NewStyle().
			Width(width).Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("No schedule yet.\n\nPress g to draw %d rounds.", t.Config().Rounds()))
	}

	var b strings.Builder
	b.WriteString(renderSchedule(t.Rounds(), t.ActiveIndex(), width))
	b.WriteString("\n\n")

	if round, ok := t.CurrentRound(); ok {
		b.WriteString(renderRoundLine(round, t.Status(), len(t.Rounds())))
		b.WriteString("\n\n")
	}

	if s.results != nil {
		b.WriteString(s.table.View())
		b.WriteString("\n\n")
		b.WriteString(s.renderRecap(width))
	} else {
		b.WriteString(renderLanes(t, width))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Warning.Render("  " + s.errMsg))
	}
	return b.String()
}

// renderSchedule draws one chip per round, colored by its status.
func renderSchedule(rounds []tournament.Round, active, width int) string {
	chips := make([]string, len(rounds))
	for i, r := range rounds {
		label := fmt.Sprintf(" R%d %dm ", r.Number, r.Distance)
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		switch {
		case r.Status == tournament.RoundCompleted:
			style = style.Foreground(theme.Success)
			label = fmt.Sprintf(" R%d %dm ✓ ", r.Number, r.Distance)
		case i == active:
			style = style.Foreground(theme.BgDark).Background(theme.Gold).Bold(true)
		}
		chips[i] = style.Render(label)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(chips, " "))
}

func renderRoundLine(r tournament.Round, status tournament.Status, total int) string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("  Round %d of %d · %dm", r.Number, total, r.Distance)) +
		lipgloss.NewStyle().Foreground(theme.Accent).
			Render("   "+status.String())
}

// renderLanes draws every participant, leader first.
func renderLanes(t *tournament.Tournament, width int) string {
	lanes := t.LeaderBoard()
	lines := make([]string, len(lanes))
	for i, l := range lanes {
		suffix := components.Percent(l.Progress.Progress)
		if fd := t.FinishData(l.Competitor.ID); fd.Finished {
			suffix = fmt.Sprintf("%6ss +%d", fd.Time, fd.Points)
		}
		lines[i] = "  " + components.LaneBar{
			Label:   l.Competitor.Name,
			Color:   theme.Silk(l.Competitor.Color),
			Percent: l.Progress.Progress / 100,
			Suffix:  suffix,
			Width:   width - 4,
		}.View()
	}
	return strings.Join(lines, "\n")
}

func (s *TrackScreen) renderRecap(width int) string {
	if s.waiting {
		return "  " + s.spinner.View() + lipgloss.NewStyle().Foreground(theme.TextDim).Render(" The commentator is catching breath...")
	}
	if s.recap == nil {
		return ""
	}
	body := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render(s.recap.Headline)
	if len(s.recap.Lines) > 0 {
		body += "\n" + lipgloss.NewStyle().Foreground(theme.Text).Render(strings.Join(s.recap.Lines, " "))
	}
	return components.Card(body, min(width-4, 96))
}

// resultsTable lists a finished round's placings.
func resultsTable(flow *tournament.Flow, results []race.Result) table.Model {
	pool := flow.Tournament().Pool()
	rows := make([]table.Row, len(results))
	for i, r := range results {
		name := fmt.Sprintf("#%d", r.CompetitorID)
		if c, err := pool.ByID(r.CompetitorID); err == nil {
			name = c.Name
		}
		rows[i] = table.Row{
			strconv.Itoa(r.Position),
			name,
			fmt.Sprintf("%.2fs", r.CompletionMs/1000),
			fmt.Sprintf("%.1f", r.FinalSpeed),
			strconv.Itoa(r.Points),
		}
	}
	return components.NewTable([]table.Column{
		{Title: "Pos", Width: 4},
		{Title: "Competitor", Width: 20},
		{Title: "Time", Width: 10},
		{Title: "Speed", Width: 7},
		{Title: "Pts", Width: 4},
	}, rows, len(rows))
}
