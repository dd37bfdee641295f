// Package app hosts the Bubble Tea program: the screen router inside a
// header and footer frame.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gallop/internal/commentary"
	"github.com/abhisek/gallop/internal/router"
	"github.com/abhisek/gallop/internal/screen"
	"github.com/abhisek/gallop/internal/screens/home"
	"github.com/abhisek/gallop/internal/store"
	"github.com/abhisek/gallop/internal/tournament"
	"github.com/abhisek/gallop/internal/ui/layout"
)

// Options holds the services the screens run on.
type Options struct {
	Flow *tournament.Flow

	// Recaps writes round commentary. Nil uses the built-in template.
	Recaps *commentary.Service

	// EventRepo backs the race log screen. Nil hides it.
	EventRepo store.EventRepo

	// Provider names the commentary model for display.
	Provider string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	flow   *tournament.Flow
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(home.New(opts.Flow, opts.Recaps, opts.EventRepo, opts.Provider)),
		flow:   opts.Flow,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.flow.Stop()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.status(), m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// status summarizes the tournament for the header.
func (m AppModel) status() string {
	t := m.flow.Tournament()
	switch t.Status() {
	case tournament.StatusIdle:
		return ""
	case tournament.StatusAllRacesCompleted:
		return "FINISHED"
	}
	return fmt.Sprintf("ROUND %d/%d", t.ActiveIndex()+1, len(t.Rounds()))
}

func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
