// Package history is the race log screen: past tournaments from the
// event store.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gallop/internal/router"
	"github.com/abhisek/gallop/internal/screen"
	"github.com/abhisek/gallop/internal/store"
	"github.com/abhisek/gallop/internal/ui/layout"
	"github.com/abhisek/gallop/internal/ui/theme"
)

// summaryLimit caps how many tournaments are listed.
const summaryLimit = 30

type historyLoadedMsg struct {
	Tournaments []store.TournamentSummaryRecord
	Err         error
}

type resultsLoadedMsg struct {
	TournamentID string
	Results      []store.ResultEventRecord
	Err          error
}

// HistoryScreen lists recent tournaments; Enter expands the round winners
// of the selected one.
type HistoryScreen struct {
	eventRepo   store.EventRepo
	tournaments []store.TournamentSummaryRecord
	results     map[string][]store.ResultEventRecord
	selected    int
	expanded    map[int]bool
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		results:   make(map[string][]store.ResultEventRecord),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ts, err := repo.TournamentSummaries(context.Background(), store.QueryOpts{Limit: summaryLimit})
		return historyLoadedMsg{Tournaments: ts, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Race Log"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Winners"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.tournaments = msg.Tournaments
		}
		s.loaded = true
		return s, nil

	case resultsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.results[msg.TournamentID] = msg.Results
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.tournaments)-1 {
				s.selected++
			}
		case "enter":
			if len(s.tournaments) == 0 {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.tournaments[s.selected].TournamentID
			if _, ok := s.results[id]; !ok && s.expanded[s.selected] {
				return s, s.loadResults(id)
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadResults(id string) tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		rs, err := repo.QueryResults(context.Background(), id)
		return resultsLoadedMsg{TournamentID: id, Results: rs, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}
	if s.errMsg != "" {
		return center(lipgloss.NewStyle().Foreground(theme.Error), fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n  Loading race log...")
	}
	if len(s.tournaments) == 0 {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true), "\n\n  No tournaments yet. Go run one!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, t := range s.tournaments {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%s  %s  %d rounds  %s",
			prefix, t.StartedAt.Local().Format("Jan 02 15:04"), shortID(t.TournamentID), t.RoundsCompleted, outcome(t))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, w := range roundWinners(s.results[t.TournamentID]) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render(w)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func outcome(t store.TournamentSummaryRecord) string {
	switch {
	case t.Finished:
		return "champion " + t.Champion
	case t.Reset:
		return "reset"
	default:
		return "unfinished"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// roundWinners renders one line per round from results ordered by round
// and position.
func roundWinners(results []store.ResultEventRecord) []string {
	if len(results) == 0 {
		return []string{"    no finished rounds"}
	}
	var out []string
	for _, r := range results {
		if r.Position != 1 {
			continue
		}
		out = append(out, fmt.Sprintf("    R%d %dm  %s  %.2fs", r.Round, r.Distance, r.CompetitorName, r.CompletionMs/1000))
	}
	return out
}
