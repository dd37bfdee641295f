package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/gallop/internal/ui/components"
	"github.com/abhisek/gallop/internal/ui/theme"
)

const arcadeTitleFull = `  ██████   █████  ██      ██       ██████  ██████
 ██       ██   ██ ██      ██      ██    ██ ██   ██
 ██   ███ ███████ ██      ██      ██    ██ ██████
 ██    ██ ██   ██ ██      ██      ██    ██ ██
  ██████  ██   ██ ███████ ███████  ██████  ██`

const arcadeTitleCompact = "G · A · L · L · O · P"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	art := arcadeTitleFull
	if compact {
		art = arcadeTitleCompact
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(style.Render(art))
}

// renderStatsBar shows progress through the current tournament.
func renderStatsBar(st stats, cw int, compact bool) string {
	roundStyle := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	leadStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	rounds := fmt.Sprintf("⚑ %d/%d ROUNDS", st.completed, st.total)
	if compact {
		rounds = fmt.Sprintf("⚑%d/%d", st.completed, st.total)
	}
	lead := dim.Render("♞ NO LEADER")
	if st.leader != "" {
		lead = leadStyle.Render(fmt.Sprintf("♞ %s %d", strings.ToUpper(st.leader), st.leaderPoints))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(roundStyle.Render(rounds) + "  " + lead)
}

func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	buttons := make([]string, len(items))
	for i, label := range items {
		buttons[i] = components.ArcadeButton(label, i == selected, disabled[i], buttonWidth)
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders items as plain lines for terminals where
// bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	lines := make([]string, len(items))
	for i, label := range items {
		switch {
		case disabled[i]:
			lines[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == selected:
			lines[i] = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Gold).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			lines[i] = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}

// renderCommentaryNote says where recaps come from.
func renderCommentaryNote(provider string, cw int) string {
	text := "Commentary: built-in"
	if provider != "" {
		text = "Commentary: " + provider
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).Align(lipgloss.Center).Render(text)
}

func renderMascotBox(v MascotVariant, cw int) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(RenderMascot(v))
}
