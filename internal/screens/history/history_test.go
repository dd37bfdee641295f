package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gallop/internal/store"
)

// fakeRepo serves canned race log queries. Unused methods panic through
// the embedded nil interface.
type fakeRepo struct {
	store.EventRepo
	summaries []store.TournamentSummaryRecord
	results   map[string][]store.ResultEventRecord
}

func (f *fakeRepo) TournamentSummaries(context.Context, store.QueryOpts) ([]store.TournamentSummaryRecord, error) {
	return f.summaries, nil
}

func (f *fakeRepo) QueryResults(_ context.Context, id string) ([]store.ResultEventRecord, error) {
	return f.results[id], nil
}

func loadedScreen(t *testing.T, repo *fakeRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	s.Update(cmd())
	return s
}

func TestHistoryScreenEmpty(t *testing.T) {
	s := loadedScreen(t, &fakeRepo{})
	if !strings.Contains(s.View(80, 20), "No tournaments yet") {
		t.Error("expected empty message")
	}
}

func TestHistoryScreenListsAndExpands(t *testing.T) {
	repo := &fakeRepo{
		summaries: []store.TournamentSummaryRecord{
			{TournamentID: "aaaaaaaa-1111", StartedAt: time.Now(), RoundsCompleted: 6, Finished: true, Champion: "Iron Hoof"},
			{TournamentID: "bbbbbbbb-2222", StartedAt: time.Now(), RoundsCompleted: 2, Reset: true},
		},
		results: map[string][]store.ResultEventRecord{
			"aaaaaaaa-1111": {
				{Round: 1, Distance: 1200, CompetitorName: "Iron Hoof", Position: 1, CompletionMs: 61000},
				{Round: 1, Distance: 1200, CompetitorName: "Solar Blade", Position: 2, CompletionMs: 61500},
			},
		},
	}
	s := loadedScreen(t, repo)

	view := s.View(100, 30)
	for _, want := range []string{"aaaaaaaa", "champion Iron Hoof", "reset"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected results load on expand")
	}
	s.Update(cmd())

	view = s.View(100, 30)
	if !strings.Contains(view, "R1 1200m  Iron Hoof  61.00s") {
		t.Errorf("expanded view missing winner:\n%s", view)
	}
	if strings.Contains(view, "Solar Blade") {
		t.Error("only winners should be listed")
	}
}

func TestHistoryScreenNavigationBounds(t *testing.T) {
	s := loadedScreen(t, &fakeRepo{summaries: []store.TournamentSummaryRecord{{TournamentID: "x"}, {TournamentID: "y"}}})
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
}
