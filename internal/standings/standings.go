// Package standings aggregates round results into cumulative rankings.
package standings

import (
	"slices"
	"sort"
	"sync"

	"github.com/abhisek/gallop/internal/race"
	"github.com/abhisek/gallop/internal/registry"
)

// Lookup resolves competitor display details.
type Lookup interface {
	ByID(id int) (registry.Competitor, error)
}

// Ranking is one competitor's performance across all recorded rounds.
type Ranking struct {
	CompetitorID      int
	Name              string
	Color             string
	TotalPoints       int
	RacesParticipated int
	BestPosition      int
	AveragePosition   float64
	Positions         []int
}

// Aggregator keeps the full result history and the rankings derived from
// it. Rankings are rebuilt from scratch on every change.
type Aggregator struct {
	mu       sync.RWMutex
	lookup   Lookup
	history  []race.Result
	rankings []Ranking
}

// New creates an empty Aggregator.
func New(lookup Lookup) *Aggregator {
	return &Aggregator{lookup: lookup}
}

// Record appends a batch of results and recomputes the rankings.
func (a *Aggregator) Record(results []race.Result) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.history = append(a.history, results...)
	a.rankings = a.compute()
}

// compute builds rankings in order of each competitor's first appearance.
// Results for competitors the lookup does not know are skipped.
func (a *Aggregator) compute() []Ranking {
	var out []Ranking
	index := map[int]int{}

	for _, r := range a.history {
		i, ok := index[r.CompetitorID]
		if !ok {
			c, err := a.lookup.ByID(r.CompetitorID)
			if err != nil {
				continue
			}
			i = len(out)
			index[r.CompetitorID] = i
			out = append(out, Ranking{
				CompetitorID: c.ID,
				Name:         c.Name,
				Color:        c.Color,
				BestPosition: r.Position,
			})
		}

		rk := &out[i]
		rk.TotalPoints += r.Points
		rk.RacesParticipated++
		rk.Positions = append(rk.Positions, r.Position)
		rk.BestPosition = min(rk.BestPosition, r.Position)
	}

	for i := range out {
		sum := 0
		for _, p := range out[i].Positions {
			sum += p
		}
		out[i].AveragePosition = float64(sum) / float64(len(out[i].Positions))
	}
	return out
}

// Rankings returns a copy of the rankings in first-appearance order.
func (a *Aggregator) Rankings() []Ranking {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return cloneRankings(a.rankings)
}

// Champion returns the ranking with the most points. Ties go to whoever
// appeared first. ok is false when nothing has been recorded.
func (a *Aggregator) Champion() (champ Ranking, ok bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if len(a.rankings) == 0 {
		return Ranking{}, false
	}
	best := 0
	for i, r := range a.rankings {
		if r.TotalPoints > a.rankings[best].TotalPoints {
			best = i
		}
	}
	champ = a.rankings[best]
	champ.Positions = slices.Clone(champ.Positions)
	return champ, true
}

// Sorted returns rankings by total points, highest first. Equal totals
// keep first-appearance order.
func (a *Aggregator) Sorted() []Ranking {
	out := a.Rankings()
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalPoints > out[j].TotalPoints })
	return out
}

// ResultsByRound returns the results recorded for round, by position.
func (a *Aggregator) ResultsByRound(round int) []race.Result {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []race.Result
	for _, r := range a.history {
		if r.RoundNumber == round {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// History returns every result of one competitor in recording order.
func (a *Aggregator) History(competitorID int) []race.Result {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []race.Result
	for _, r := range a.history {
		if r.CompetitorID == competitorID {
			out = append(out, r)
		}
	}
	return out
}

// Results returns the full result history.
func (a *Aggregator) Results() []race.Result {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.history)
}

// HasResults reports whether any result has been recorded.
func (a *Aggregator) HasResults() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.history) > 0
}

// Clear drops all results and rankings.
func (a *Aggregator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = nil
	a.rankings = nil
}

func cloneRankings(in []Ranking) []Ranking {
	out := make([]Ranking, len(in))
	for i, r := range in {
		r.Positions = slices.Clone(r.Positions)
		out[i] = r
	}
	return out
}
