package components

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gallop/internal/ui/theme"
)

func TestMenuSkipsDisabled(t *testing.T) {
	var fired string
	action := func(label string) func() tea.Cmd {
		return func() tea.Cmd {
			fired = label
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "A", Action: action("A")},
		{Label: "B", Disabled: true},
		{Label: "C", Action: action("C")},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if fired != "C" {
		t.Errorf("fired = %q, want C", fired)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0", m.Selected)
	}
}

func TestNewMenuSelectsFirstEnabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "A", Disabled: true}, {Label: "B"}})
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
	if got := strings.Join(m.Labels(), ","); got != "A,B" {
		t.Errorf("Labels = %q", got)
	}
}

func TestLaneBar(t *testing.T) {
	bar := LaneBar{Label: "Crimson Comet", Color: theme.Silk("#E63946"), Percent: 0.5, Suffix: Percent(50), Width: 60}
	v := bar.View()
	if !strings.Contains(v, "Crimson Comet") || !strings.Contains(v, " 50.0%") {
		t.Errorf("lane view missing text: %q", v)
	}
}

func TestContentWidth(t *testing.T) {
	tests := []struct{ in, want int }{{10, 20}, {50, 44}, {200, 60}}
	for _, tt := range tests {
		if got := ContentWidth(tt.in); got != tt.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNewTable(t *testing.T) {
	tbl := NewTable(
		[]table.Column{{Title: "Pos", Width: 4}, {Title: "Name", Width: 16}},
		[]table.Row{{"1", "Crimson Comet"}, {"2", "Iron Hoof"}},
		2,
	)
	if len(tbl.Rows()) != 2 {
		t.Errorf("rows = %d, want 2", len(tbl.Rows()))
	}
	if !strings.Contains(tbl.View(), "Iron Hoof") {
		t.Error("table view missing row")
	}
}
