package standings

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gallop/internal/chance"
	"github.com/abhisek/gallop/internal/race"
	"github.com/abhisek/gallop/internal/registry"
	"github.com/abhisek/gallop/internal/router"
	"github.com/abhisek/gallop/internal/standings"
)

func testAggregator() (*standings.Aggregator, *registry.Registry) {
	reg := registry.New(registry.DefaultConfig(), chance.NewSeeded(3))
	reg.Generate()
	agg := standings.New(reg)
	agg.Record([]race.Result{
		{RoundNumber: 1, CompetitorID: 5, Position: 1, Points: 10},
		{RoundNumber: 1, CompetitorID: 2, Position: 2, Points: 8},
	})
	agg.Record([]race.Result{
		{RoundNumber: 2, CompetitorID: 2, Position: 1, Points: 10},
		{RoundNumber: 2, CompetitorID: 5, Position: 3, Points: 6},
	})
	return agg, reg
}

func TestStandingsScreenShowsLeader(t *testing.T) {
	agg, reg := testAggregator()
	s := New(agg)
	s.Init()

	leader, _ := reg.ByID(2)
	view := s.View(100, 30)
	if !strings.Contains(view, leader.Name+" · 18 pts") {
		t.Errorf("view missing leader line:\n%s", view)
	}
	if !strings.Contains(view, "1st") || !strings.Contains(view, "2nd") {
		t.Errorf("view missing positions of selected competitor:\n%s", view)
	}
}

func TestStandingsScreenEmpty(t *testing.T) {
	reg := registry.New(registry.DefaultConfig(), chance.NewSeeded(3))
	s := New(standings.New(reg))
	s.Init()
	if !strings.Contains(s.View(80, 20), "No races run yet.") {
		t.Error("expected empty message")
	}
}

func TestStandingsScreenEscPops(t *testing.T) {
	agg, _ := testAggregator()
	s := New(agg)
	s.Init()
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st"}
	for n, want := range tests {
		if got := ordinal(n); got != want {
			t.Errorf("ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}
