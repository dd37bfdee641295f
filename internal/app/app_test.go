package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gallop/internal/chance"
	"github.com/abhisek/gallop/internal/registry"
	"github.com/abhisek/gallop/internal/router"
	"github.com/abhisek/gallop/internal/standings"
	"github.com/abhisek/gallop/internal/tournament"
)

func testModel() AppModel {
	reg := registry.New(registry.DefaultConfig(), chance.NewSeeded(9))
	flow := tournament.NewFlow(tournament.New(tournament.DefaultConfig(), reg), standings.New(reg), tournament.FlowOptions{Source: chance.NewSeeded(10)})
	return newAppModel(Options{Flow: flow})
}

func TestAppTooSmall(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(updated.(AppModel).render(), "too small") {
		t.Error("expected the minimum size message")
	}
}

func TestAppEscAtRootIsNoop(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the home screen should do nothing")
	}
}

func TestAppNewTournamentShowsRoundInHeader(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(AppModel)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a push")
	}
	updated, _ = m.Update(cmd())
	m = updated.(AppModel)

	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if got := m.status(); got != "ROUND 1/6" {
		t.Errorf("status = %q, want ROUND 1/6", got)
	}
	if out := m.render(); !strings.Contains(out, "ROUND 1/6") {
		t.Errorf("header missing round:\n%s", out)
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should pop the tournament screen")
	}
}
