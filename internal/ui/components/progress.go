package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/gallop/internal/ui/theme"
)

// LaneBar draws one competitor's run down the track.
type LaneBar struct {
	Label   string
	Color   color.Color
	Percent float64 // 0..1
	Suffix  string
	Width   int
}

// labelWidth keeps every lane's track aligned.
const labelWidth = 18

// View renders the lane: label, track, then suffix.
func (l LaneBar) View() string {
	label := l.Label
	if lipgloss.Width(label) > labelWidth {
		label = string([]rune(label)[:labelWidth-1]) + "…"
	}
	head := lipgloss.NewStyle().
		Width(labelWidth).
		Foreground(l.Color).
		Bold(true).
		Render(label)

	suffix := lipgloss.NewStyle().Foreground(theme.TextDim).Render(l.Suffix)
	barWidth := max(4, l.Width-labelWidth-lipgloss.Width(suffix)-3)

	filled := int(float64(barWidth) * l.Percent)
	filled = min(barWidth, max(0, filled))

	track := lipgloss.NewStyle().Background(l.Color).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Turf).Render(strings.Repeat(" ", barWidth-filled))

	return head + " " + track + "│ " + suffix
}

// Percent formats a 0..100 progress value for a lane suffix.
func Percent(progress float64) string {
	return fmt.Sprintf("%5.1f%%", progress)
}
