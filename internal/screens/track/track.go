// Package track is the tournament screen: the schedule, the live race and
// each round's results.
package track

import (
	"context"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gallop/internal/commentary"
	"github.com/abhisek/gallop/internal/race"
	"github.com/abhisek/gallop/internal/router"
	"github.com/abhisek/gallop/internal/screen"
	standingsscreen "github.com/abhisek/gallop/internal/screens/standings"
	"github.com/abhisek/gallop/internal/tournament"
	"github.com/abhisek/gallop/internal/ui/layout"
	"github.com/abhisek/gallop/internal/ui/theme"
)

// FrameInterval paces the race at 60 frames per second.
const FrameInterval = time.Second / 60

// frameMsg drives one Flow.Tick. id ties it to the race that scheduled it.
type frameMsg struct {
	id  int
	now time.Time
}

// recapPollMsg checks whether background commentary is ready.
type recapPollMsg struct{ id int }

const recapPollInterval = 100 * time.Millisecond

// TrackScreen shows the tournament and runs its races.
type TrackScreen struct {
	flow   *tournament.Flow
	recaps *commentary.Service

	ctx     context.Context
	frameID int

	results []race.Result
	table   table.Model
	recap   *commentary.Recap
	recapID int
	waiting bool
	spinner spinner.Model
	errMsg  string
}

var _ screen.Screen = (*TrackScreen)(nil)
var _ screen.KeyHintProvider = (*TrackScreen)(nil)
var _ router.Popper = (*TrackScreen)(nil)

// New creates the tournament screen. recaps may be nil.
func New(flow *tournament.Flow, recaps *commentary.Service) *TrackScreen {
	return &TrackScreen{
		flow:   flow,
		recaps: recaps,
		ctx:    context.Background(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
}

// Init resumes a race that was running when the screen was last left.
func (s *TrackScreen) Init() tea.Cmd {
	if s.flow.Running() {
		return s.nextFrame()
	}
	return nil
}

func (s *TrackScreen) Title() string {
	return "Tournament"
}

// OnPop freezes a running race until the screen is shown again.
func (s *TrackScreen) OnPop() {
	s.frameID++
	s.flow.Pause()
	if s.recaps != nil {
		s.recaps.Cancel()
	}
	s.waiting = false
}

func (s *TrackScreen) KeyHints() []layout.KeyHint {
	t := s.flow.Tournament()
	var hints []layout.KeyHint
	switch t.Status() {
	case tournament.StatusIdle:
		hints = append(hints, layout.KeyHint{Key: "g", Description: "Generate schedule"})
	case tournament.StatusScheduleReady:
		hints = append(hints,
			layout.KeyHint{Key: "s", Description: "Start round"},
			layout.KeyHint{Key: "g", Description: "New schedule"})
	case tournament.StatusRaceCompleted:
		hints = append(hints, layout.KeyHint{Key: "n", Description: "Next round"})
	case tournament.StatusAllRacesCompleted:
		hints = append(hints,
			layout.KeyHint{Key: "n", Description: "Final standings"},
			layout.KeyHint{Key: "g", Description: "New tournament"})
	}
	if t.Status() != tournament.StatusIdle {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Reset"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *TrackScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.id != s.frameID {
			return s, nil
		}
		return s, s.onFrame(msg.now)

	case recapPollMsg:
		if msg.id != s.recapID || !s.waiting {
			return s, nil
		}
		if r, ok := s.recaps.ConsumeRecap(); ok {
			s.recap = r
			s.waiting = false
			return s, nil
		}
		return s, pollRecap(msg.id)

	case spinner.TickMsg:
		if !s.waiting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.onKey(msg.String())
	}
	return s, nil
}

func (s *TrackScreen) onKey(key string) tea.Cmd {
	t := s.flow.Tournament()
	switch key {
	case "g":
		switch t.Status() {
		case tournament.StatusIdle:
		case tournament.StatusScheduleReady, tournament.StatusAllRacesCompleted:
			s.flow.Reset(s.ctx)
		default:
			return nil
		}
		s.clearRound()
		if err := s.flow.NewSchedule(s.ctx); err != nil {
			s.errMsg = err.Error()
		}

	case "s":
		s.clearRound()
		if err := s.flow.Start(s.ctx); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.frameID++
		return s.nextFrame()

	case "n":
		switch t.Status() {
		case tournament.StatusRaceCompleted:
			if err := s.flow.Next(s.ctx); err != nil {
				s.errMsg = err.Error()
				return nil
			}
			s.clearRound()
		case tournament.StatusAllRacesCompleted:
			agg := s.flow.Standings()
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: standingsscreen.New(agg)}
			}
		}

	case "r":
		s.frameID++
		s.flow.Reset(s.ctx)
		s.clearRound()
	}
	return nil
}

func (s *TrackScreen) onFrame(now time.Time) tea.Cmd {
	upd, err := s.flow.Tick(s.ctx, now)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if upd.Stopped {
		return nil
	}
	if upd.Results == nil {
		return s.nextFrame()
	}

	s.results = upd.Results
	s.table = resultsTable(s.flow, upd.Results)
	return s.requestRecap(upd.Results)
}

func (s *TrackScreen) requestRecap(results []race.Result) tea.Cmd {
	t := s.flow.Tournament()
	round, _ := t.CurrentRound()
	in := commentary.NewInput(round.Number, round.Distance, results, t.Pool(), s.flow.Standings(), t.IsAllCompleted())

	if s.recaps == nil {
		r := commentary.Fallback(in)
		s.recap = &r
		return nil
	}
	s.recapID++
	s.waiting = true
	s.recaps.RequestRecap(s.ctx, in)
	return tea.Batch(s.spinner.Tick, pollRecap(s.recapID))
}

func (s *TrackScreen) clearRound() {
	s.errMsg = ""
	s.results = nil
	s.recap = nil
	s.waiting = false
	if s.recaps != nil {
		s.recaps.Cancel()
	}
}

func (s *TrackScreen) nextFrame() tea.Cmd {
	id := s.frameID
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg{id: id, now: t}
	})
}

func pollRecap(id int) tea.Cmd {
	return tea.Tick(recapPollInterval, func(time.Time) tea.Msg {
		return recapPollMsg{id: id}
	})
}
