// Package tournament holds the round state machine and the flow that
// drives races through it.
package tournament

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/gallop/internal/race"
	"github.com/abhisek/gallop/internal/registry"
)

// Pool is the slice of the competitor registry the tournament needs.
type Pool interface {
	Count() int
	Generate()
	PickUnique(n int) ([]registry.Competitor, error)
	ByID(id int) (registry.Competitor, error)
	ApplyRaceEffects(ran []int)
}

// Round is one scheduled race.
type Round struct {
	Number       int
	Distance     int
	Participants []registry.Competitor
	Status       RoundStatus
	StartedAt    *time.Time
	EndedAt      *time.Time
	Results      []race.Result
}

func (r Round) clone() Round {
	r.Participants = slices.Clone(r.Participants)
	r.Results = slices.Clone(r.Results)
	if r.StartedAt != nil {
		t := *r.StartedAt
		r.StartedAt = &t
	}
	if r.EndedAt != nil {
		t := *r.EndedAt
		r.EndedAt = &t
	}
	return r
}

// Has reports whether the competitor runs in this round.
func (r Round) Has(id int) bool {
	return slices.ContainsFunc(r.Participants, func(c registry.Competitor) bool { return c.ID == id })
}

// Tournament is the round state machine. All mutations are serialized and
// every accessor returns a copy.
type Tournament struct {
	mu  sync.RWMutex
	cfg Config

	pool Pool
	now  func() time.Time

	id         string
	generation uint64
	status     Status
	rounds     []Round
	active     int
	progress   map[int]race.Progress
}

// New creates an idle tournament over the given pool.
func New(cfg Config, pool Pool) *Tournament {
	return &Tournament{
		cfg:      cfg,
		pool:     pool,
		now:      time.Now,
		progress: map[int]race.Progress{},
	}
}

// Config returns the configuration the tournament was built with.
func (t *Tournament) Config() Config {
	return t.cfg
}

// Pool returns the competitor pool the schedule draws from.
func (t *Tournament) Pool() Pool {
	return t.pool
}

// CreateSchedule draws a fresh field for every configured distance. The pool
// is generated first when empty. A rejected call leaves both the
// tournament and the pool untouched.
func (t *Tournament) CreateSchedule() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkTransition(StatusScheduleReady); err != nil {
		return err
	}
	if err := t.cfg.validate(); err != nil {
		return err
	}

	if t.pool.Count() == 0 {
		t.pool.Generate()
	}
	if n := t.pool.Count(); n < t.cfg.MinCompetitors {
		return fmt.Errorf("%w: pool has %d, need at least %d", ErrInsufficientCompetitors, n, t.cfg.MinCompetitors)
	}

	rounds := make([]Round, 0, len(t.cfg.Distances))
	for i, d := range t.cfg.Distances {
		field, err := t.pool.PickUnique(t.cfg.RaceSize)
		if err != nil {
			return fmt.Errorf("drawing round %d: %w", i+1, err)
		}
		rounds = append(rounds, Round{
			Number:       i + 1,
			Distance:     d,
			Participants: field,
			Status:       RoundPending,
		})
	}

	t.id = uuid.NewString()
	t.generation++
	t.rounds = rounds
	t.active = 0
	t.status = StatusScheduleReady
	clear(t.progress)
	return nil
}

// StartRound moves the active round into progress and seeds zero progress
// for each participant.
func (t *Tournament) StartRound() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusScheduleReady {
		return &StateError{Op: "start round", Current: t.status, Required: StatusScheduleReady}
	}
	r, err := t.activeRound()
	if err != nil {
		return err
	}

	now := t.now()
	r.Status = RoundInProgress
	r.StartedAt = &now
	r.EndedAt = nil
	r.Results = nil

	clear(t.progress)
	for _, c := range r.Participants {
		t.progress[c.ID] = race.Progress{CompetitorID: c.ID}
	}
	t.status = StatusRaceInProgress
	return nil
}

// UpdateProgress records live progress for a participant of the running round.
func (t *Tournament) UpdateProgress(p race.Progress) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusRaceInProgress {
		return &StateError{Op: "update progress", Current: t.status, Required: StatusRaceInProgress}
	}
	prev, ok := t.progress[p.CompetitorID]
	if !ok {
		return fmt.Errorf("%w: competitor %d, round %d", ErrNotParticipant, p.CompetitorID, t.active+1)
	}
	if p.Progress < prev.Progress {
		return fmt.Errorf("%w: competitor %d from %.2f to %.2f", ErrProgressRegression, p.CompetitorID, prev.Progress, p.Progress)
	}
	t.progress[p.CompetitorID] = p
	return nil
}

// SetResults stores the finishing order on the running round.
func (t *Tournament) SetResults(results []race.Result) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusRaceInProgress {
		return &StateError{Op: "set results", Current: t.status, Required: StatusRaceInProgress}
	}
	r, err := t.activeRound()
	if err != nil {
		return err
	}
	r.Results = slices.Clone(results)
	return nil
}

// CompleteRound closes the running round. When it was the last pending
// round the tournament moves on to ALL_RACES_COMPLETED.
func (t *Tournament) CompleteRound() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusRaceInProgress {
		return &StateError{Op: "complete round", Current: t.status, Required: StatusRaceInProgress}
	}
	r, err := t.activeRound()
	if err != nil {
		return err
	}

	now := t.now()
	r.Status = RoundCompleted
	r.EndedAt = &now
	t.status = StatusRaceCompleted

	if t.allCompleted() {
		t.status = StatusAllRacesCompleted
	}
	return nil
}

// MoveToNextRound advances the active index after a completed round.
func (t *Tournament) MoveToNextRound() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusRaceCompleted {
		return &StateError{Op: "move to next round", Current: t.status, Required: StatusRaceCompleted}
	}
	if t.active+1 >= len(t.rounds) {
		return nil
	}
	if err := t.checkTransition(StatusScheduleReady); err != nil {
		return err
	}
	t.active++
	t.status = StatusScheduleReady
	clear(t.progress)
	return nil
}

// ResetRace discards the schedule and returns to IDLE from any state.
func (t *Tournament) ResetRace() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.id = ""
	t.generation++
	t.rounds = nil
	t.active = 0
	t.status = StatusIdle
	clear(t.progress)
}

func (t *Tournament) checkTransition(to Status) error {
	if !CanTransition(t.status, to) {
		return &TransitionError{From: t.status, To: to, Allowed: AllowedFrom(t.status)}
	}
	return nil
}

func (t *Tournament) activeRound() (*Round, error) {
	if t.active < 0 || t.active >= len(t.rounds) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrNoActiveRound, t.active, len(t.rounds))
	}
	return &t.rounds[t.active], nil
}

func (t *Tournament) allCompleted() bool {
	if len(t.rounds) == 0 {
		return false
	}
	for _, r := range t.rounds {
		if r.Status != RoundCompleted {
			return false
		}
	}
	return true
}
