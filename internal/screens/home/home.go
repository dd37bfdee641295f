// Package home is the main menu.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gallop/internal/commentary"
	"github.com/abhisek/gallop/internal/router"
	"github.com/abhisek/gallop/internal/screen"
	"github.com/abhisek/gallop/internal/screens/history"
	standingsscreen "github.com/abhisek/gallop/internal/screens/standings"
	"github.com/abhisek/gallop/internal/screens/track"
	"github.com/abhisek/gallop/internal/store"
	"github.com/abhisek/gallop/internal/tournament"
	"github.com/abhisek/gallop/internal/ui/components"
	"github.com/abhisek/gallop/internal/ui/layout"
)

// Menu positions.
const (
	itemNew = iota
	itemContinue
	itemStandings
	itemLog
	itemExit
)

type stats struct {
	completed, total int
	leader           string
	leaderPoints     int
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	flow      *tournament.Flow
	recaps    *commentary.Service
	eventRepo store.EventRepo
	provider  string

	menu     components.Menu
	disabled map[int]bool
	stats    stats
	mascot   MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. eventRepo may be nil, which disables the
// race log. provider names the commentary model, empty for the template.
func New(flow *tournament.Flow, recaps *commentary.Service, eventRepo store.EventRepo, provider string) *HomeScreen {
	h := &HomeScreen{flow: flow, recaps: recaps, eventRepo: eventRepo, provider: provider}
	h.refresh()
	return h
}

// Init recomputes menu state. The router calls it again whenever the home
// screen is uncovered.
func (h *HomeScreen) Init() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) refresh() {
	t := h.flow.Tournament()
	agg := h.flow.Standings()

	h.stats = stats{completed: len(t.CompletedRounds()), total: t.Config().Rounds()}
	if champ, ok := agg.Champion(); ok {
		h.stats.leader = champ.Name
		h.stats.leaderPoints = champ.TotalPoints
	}

	switch {
	case t.IsAllCompleted():
		h.mascot = MascotChampion
	case t.Status() != tournament.StatusIdle:
		h.mascot = MascotRacing
	default:
		h.mascot = MascotIdle
	}

	h.disabled = map[int]bool{
		itemContinue:  t.Status() == tournament.StatusIdle,
		itemStandings: !agg.HasResults(),
		itemLog:       h.eventRepo == nil,
	}

	items := []components.MenuItem{
		itemNew:       {Label: "NEW TOURNAMENT", Action: h.newTournament},
		itemContinue:  {Label: "CONTINUE", Action: h.push(func() screen.Screen { return track.New(h.flow, h.recaps) })},
		itemStandings: {Label: "STANDINGS", Action: h.push(func() screen.Screen { return standingsscreen.New(h.flow.Standings()) })},
		itemLog:       {Label: "RACE LOG", Action: h.push(func() screen.Screen { return history.New(h.eventRepo) })},
		itemExit:      {Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	for i := range items {
		items[i].Disabled = h.disabled[i]
	}

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) newTournament() tea.Cmd {
	ctx := context.Background()
	h.flow.Reset(ctx)
	if err := h.flow.NewSchedule(ctx); err != nil {
		return nil
	}
	return h.push(func() screen.Screen { return track.New(h.flow, h.recaps) })()
}

func (h *HomeScreen) push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// chromeRows is the height of the bordered header and footer.
const chromeRows = 6

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer rows to
	// estimate the terminal.
	compact := layout.IsCompactWidth(width) || layout.IsCompactHeight(height+chromeRows)
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot, cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menu.Labels(), h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu.Labels(), h.menu.Selected, cw, h.disabled))
	}
	sections = append(sections, renderCommentaryNote(h.provider, cw))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
