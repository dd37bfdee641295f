package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gallop/internal/ui/layout"
)

// Screen is one page of the gallop TUI: the home menu, the race track,
// the standings table or the tournament history. The router owns the
// header and footer; a screen only draws the body between them.
type Screen interface {
	// Init runs once when the screen is pushed. Race screens use it to
	// start the frame ticker.
	Init() tea.Cmd

	// Update reacts to keys, frame ticks and flow events. It may return
	// a different screen, which replaces this one on the stack.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View draws the body into a width by height area.
	View(width, height int) string

	// Title is shown in the header, e.g. "Round 3 of 6".
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints,
// e.g. the track shows space to start a race and n for the next round.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
