package standings

import (
	"fmt"
	"math"
	"testing"

	"github.com/abhisek/gallop/internal/race"
	"github.com/abhisek/gallop/internal/registry"
)

// fakeLookup knows competitors 0..n-1.
type fakeLookup struct {
	n int
}

func (f fakeLookup) ByID(id int) (registry.Competitor, error) {
	if id < 0 || id >= f.n {
		return registry.Competitor{}, registry.ErrNotFound
	}
	return registry.Competitor{ID: id, Name: fmt.Sprintf("Runner %d", id), Color: "#FFFFFF"}, nil
}

// roundResults places ids in the given order.
func roundResults(round int, ids ...int) []race.Result {
	cfg := race.DefaultConfig()
	out := make([]race.Result, len(ids))
	for i, id := range ids {
		out[i] = race.Result{
			RoundNumber:  round,
			CompetitorID: id,
			Position:     i + 1,
			Points:       cfg.Points(i+1, len(ids)),
		}
	}
	return out
}

func TestRecordSingleRound(t *testing.T) {
	a := New(fakeLookup{n: 20})
	a.Record(roundResults(1, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0))

	rankings := a.Rankings()
	if len(rankings) != 10 {
		t.Fatalf("len(rankings) = %d, want 10", len(rankings))
	}
	want := []int{10, 8, 6, 5, 4, 3, 2, 1, 1, 1}
	for i, r := range rankings {
		if r.RacesParticipated != 1 {
			t.Errorf("%s RacesParticipated = %d, want 1", r.Name, r.RacesParticipated)
		}
		if r.TotalPoints != want[i] {
			t.Errorf("%s TotalPoints = %d, want %d", r.Name, r.TotalPoints, want[i])
		}
	}
}

func TestRecordAcrossRounds(t *testing.T) {
	a := New(fakeLookup{n: 20})
	a.Record(roundResults(1, 0, 1, 2))
	a.Record(roundResults(2, 2, 0, 1))

	byID := map[int]Ranking{}
	for _, r := range a.Rankings() {
		byID[r.CompetitorID] = r
	}

	r0 := byID[0]
	if r0.TotalPoints != 18 || r0.RacesParticipated != 2 || r0.BestPosition != 1 {
		t.Errorf("competitor 0 = %+v", r0)
	}
	if math.Abs(r0.AveragePosition-1.5) > 1e-9 {
		t.Errorf("competitor 0 AveragePosition = %v, want 1.5", r0.AveragePosition)
	}
	if got := r0.Positions; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("competitor 0 Positions = %v, want [1 2]", got)
	}
}

func TestChampionFirstMaxWins(t *testing.T) {
	a := New(fakeLookup{n: 20})
	if _, ok := a.Champion(); ok {
		t.Fatal("Champion reported with no results")
	}

	// 0 and 1 end level on 18 points; 0 appeared first.
	a.Record(roundResults(1, 0, 1))
	a.Record(roundResults(2, 1, 0))

	champ, ok := a.Champion()
	if !ok {
		t.Fatal("no champion")
	}
	if champ.CompetitorID != 0 {
		t.Errorf("champion = %d, want 0", champ.CompetitorID)
	}
}

func TestSortedByPointsDescending(t *testing.T) {
	a := New(fakeLookup{n: 20})
	a.Record(roundResults(1, 3, 1, 2))
	a.Record(roundResults(2, 2, 3, 1))

	sorted := a.Sorted()
	for i := 1; i < len(sorted); i++ {
		if sorted[i].TotalPoints > sorted[i-1].TotalPoints {
			t.Errorf("sorted[%d] has %d points after %d", i, sorted[i].TotalPoints, sorted[i-1].TotalPoints)
		}
	}
	if sorted[0].CompetitorID != 3 {
		t.Errorf("leader = %d, want 3", sorted[0].CompetitorID)
	}
}

func TestUnknownCompetitorsSkipped(t *testing.T) {
	a := New(fakeLookup{n: 2})
	a.Record(roundResults(1, 0, 1, 5))

	if got := len(a.Rankings()); got != 2 {
		t.Errorf("len(rankings) = %d, want 2", got)
	}
	if got := len(a.ResultsByRound(1)); got != 3 {
		t.Errorf("history dropped unknown competitor: %d results, want 3", got)
	}
}

func TestQueries(t *testing.T) {
	a := New(fakeLookup{n: 20})
	if a.HasResults() {
		t.Error("HasResults on empty aggregator")
	}
	a.Record(roundResults(1, 4, 5))
	a.Record(roundResults(2, 5, 6))

	if !a.HasResults() {
		t.Error("HasResults = false after Record")
	}
	r2 := a.ResultsByRound(2)
	if len(r2) != 2 || r2[0].CompetitorID != 5 {
		t.Errorf("ResultsByRound(2) = %+v", r2)
	}
	h := a.History(5)
	if len(h) != 2 || h[0].RoundNumber != 1 || h[1].RoundNumber != 2 {
		t.Errorf("History(5) = %+v", h)
	}
	if got := len(a.Results()); got != 4 {
		t.Errorf("len(Results) = %d, want 4", got)
	}

	a.Clear()
	if a.HasResults() || len(a.Rankings()) != 0 {
		t.Error("Clear left data behind")
	}
}

func TestRankingsAreCopies(t *testing.T) {
	a := New(fakeLookup{n: 20})
	a.Record(roundResults(1, 0, 1))

	r := a.Rankings()
	r[0].TotalPoints = 999
	r[0].Positions[0] = 42

	again := a.Rankings()
	if again[0].TotalPoints == 999 || again[0].Positions[0] == 42 {
		t.Error("caller mutation leaked into aggregator")
	}
}
