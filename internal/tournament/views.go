package tournament

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/abhisek/gallop/internal/race"
	"github.com/abhisek/gallop/internal/registry"
)

// Lane pairs a participant with its live progress.
type Lane struct {
	Competitor registry.Competitor
	Progress   race.Progress
}

// FinishData is the display view of one competitor's finish.
type FinishData struct {
	Finished bool
	Time     string // seconds, two decimals
	Points   int
}

// ID identifies the current schedule. Empty while idle.
func (t *Tournament) ID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.id
}

// Generation changes every time the schedule is created or discarded.
func (t *Tournament) Generation() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.generation
}

func (t *Tournament) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

func (t *Tournament) ActiveIndex() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

// Rounds returns a copy of the schedule.
func (t *Tournament) Rounds() []Round {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Round, len(t.rounds))
	for i, r := range t.rounds {
		out[i] = r.clone()
	}
	return out
}

// CurrentRound returns the active round, if any.
func (t *Tournament) CurrentRound() (Round, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, err := t.activeRound()
	if err != nil {
		return Round{}, false
	}
	return r.clone(), true
}

// Progress returns a copy of the live progress map.
func (t *Tournament) Progress() map[int]race.Progress {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[int]race.Progress, len(t.progress))
	for k, v := range t.progress {
		out[k] = v
	}
	return out
}

func (t *Tournament) CompletedRounds() []Round {
	return t.roundsWhere(func(r Round) bool { return r.Status == RoundCompleted })
}

// PendingRounds includes the round currently running.
func (t *Tournament) PendingRounds() []Round {
	return t.roundsWhere(func(r Round) bool { return r.Status != RoundCompleted })
}

func (t *Tournament) roundsWhere(keep func(Round) bool) []Round {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []Round
	for _, r := range t.rounds {
		if keep(r) {
			out = append(out, r.clone())
		}
	}
	return out
}

func (t *Tournament) IsAllCompleted() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.allCompleted()
}

// IsScheduleReady reports whether a full schedule exists.
func (t *Tournament) IsScheduleReady() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rounds) == t.cfg.Rounds() && t.status != StatusIdle
}

func (t *Tournament) IsInProgress() bool {
	return t.Status() == StatusRaceInProgress
}

// LeaderBoard returns the active round's participants ordered by live
// progress, leader first.
func (t *Tournament) LeaderBoard() []Lane {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, err := t.activeRound()
	if err != nil {
		return nil
	}
	lanes := make([]Lane, len(r.Participants))
	for i, c := range r.Participants {
		p, ok := t.progress[c.ID]
		if !ok {
			p = race.Progress{CompetitorID: c.ID}
		}
		lanes[i] = Lane{Competitor: c, Progress: p}
	}
	slices.SortStableFunc(lanes, func(a, b Lane) int {
		return cmp.Compare(b.Progress.Progress, a.Progress.Progress)
	})
	return lanes
}

// FinishData reports whether the competitor has finished the running round,
// its display time and the points its current placing is worth.
func (t *Tournament) FinishData(id int) FinishData {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.progress[id]
	if !ok || !p.Finished {
		return FinishData{Time: "0.00"}
	}

	ms := p.ViewerFinishMs
	if ms <= 0 {
		ms = p.RealFinishMs
	}

	var finished []race.Progress
	for _, q := range t.progress {
		if q.Finished {
			finished = append(finished, q)
		}
	}
	slices.SortFunc(finished, func(a, b race.Progress) int {
		return cmp.Or(cmp.Compare(a.RealFinishMs, b.RealFinishMs), cmp.Compare(a.CompetitorID, b.CompetitorID))
	})
	position := slices.IndexFunc(finished, func(q race.Progress) bool { return q.CompetitorID == id }) + 1

	return FinishData{
		Finished: true,
		Time:     fmt.Sprintf("%.2f", ms/1000),
		Points:   t.cfg.Race.Points(position, len(t.progress)),
	}
}
