package tournament

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abhisek/gallop/internal/chance"
	"github.com/abhisek/gallop/internal/race"
	"github.com/abhisek/gallop/internal/standings"
	"github.com/abhisek/gallop/internal/store"
)

// FlowOptions configures a Flow. Every field is optional.
type FlowOptions struct {
	// Source drives the race engine. Defaults to a randomly seeded source.
	Source chance.Source

	// Events receives the race log. Nil disables logging.
	Events store.EventRepo

	// Snapshots receives final standings. Nil disables snapshots.
	Snapshots store.SnapshotRepo

	// Warn receives failed persistence writes. Defaults to os.Stderr.
	Warn io.Writer
}

// Update is what a single Tick produced.
type Update struct {
	Progress []race.Progress

	// Results is set once, on the tick the round finishes.
	Results []race.Result
	Done    bool

	// Stopped reports that the round was discarded under the flow, for
	// example by a reset.
	Stopped bool
}

// Flow drives one race at a time through the tournament: it owns the
// engine, feeds progress into the state machine and hands finished results
// to the aggregator and the race log.
//
// A Flow is meant to be driven from a single goroutine.
type Flow struct {
	t         *Tournament
	agg       *standings.Aggregator
	src       chance.Source
	events    store.EventRepo
	snapshots store.SnapshotRepo
	warn      io.Writer

	engine     *race.Engine
	running    bool
	generation uint64
	roundIndex int
	lastFrame  time.Time
}

// NewFlow creates a flow over t that records results into agg.
func NewFlow(t *Tournament, agg *standings.Aggregator, opts FlowOptions) *Flow {
	src := opts.Source
	if src == nil {
		src = chance.New()
	}
	warn := opts.Warn
	if warn == nil {
		warn = os.Stderr
	}
	return &Flow{
		t:         t,
		agg:       agg,
		src:       src,
		events:    opts.Events,
		snapshots: opts.Snapshots,
		warn:      warn,
	}
}

func (f *Flow) Tournament() *Tournament { return f.t }

func (f *Flow) Standings() *standings.Aggregator { return f.agg }

// Running reports whether a race is underway.
func (f *Flow) Running() bool { return f.running }

// NewSchedule builds a fresh schedule and clears the standings of any
// previous tournament.
func (f *Flow) NewSchedule(ctx context.Context) error {
	f.Stop()
	if err := f.t.CreateSchedule(); err != nil {
		return err
	}
	f.agg.Clear()
	f.logLifecycle(ctx, store.ActionSchedule, Round{}, fmt.Sprintf("%d rounds", len(f.t.Rounds())))
	return nil
}

// Start begins the active round. Speeds are computed from the freshest
// registry data for each participant. The engine is built before the
// round is marked in progress, so a failure leaves the schedule ready.
func (f *Flow) Start(ctx context.Context) error {
	if s := f.t.Status(); s != StatusScheduleReady {
		return &StateError{Op: "start round", Current: s, Required: StatusScheduleReady}
	}
	r, ok := f.t.CurrentRound()
	if !ok {
		return ErrNoActiveRound
	}

	entrants := make([]race.Entrant, len(r.Participants))
	for i, c := range r.Participants {
		if fresh, err := f.t.pool.ByID(c.ID); err == nil {
			c = fresh
		}
		entrants[i] = race.Entrant{ID: c.ID, Condition: c.Condition}
	}
	engine, err := race.NewEngine(r.Number, r.Distance, entrants, f.t.cfg.Race, f.src)
	if err != nil {
		return fmt.Errorf("round %d: %w", r.Number, err)
	}

	if err := f.t.StartRound(); err != nil {
		return err
	}
	for _, p := range engine.Snapshot() {
		if err := f.t.UpdateProgress(p); err != nil {
			return err
		}
	}

	f.engine = engine
	f.running = true
	f.generation = f.t.Generation()
	f.roundIndex = f.t.ActiveIndex()
	f.lastFrame = time.Time{}

	f.logLifecycle(ctx, store.ActionStart, r, "")
	return nil
}

// Tick advances the running race to now. The first frame of a round
// always covers one nominal frame.
func (f *Flow) Tick(ctx context.Context, now time.Time) (Update, error) {
	if !f.running {
		return Update{}, nil
	}
	if f.t.Generation() != f.generation || f.t.ActiveIndex() != f.roundIndex || f.t.Status() != StatusRaceInProgress {
		f.Stop()
		return Update{Stopped: true}, nil
	}

	delta := f.t.cfg.Race.FrameMs
	if !f.lastFrame.IsZero() {
		delta = float64(now.Sub(f.lastFrame)) / float64(time.Millisecond)
	}
	f.lastFrame = now

	tick := f.engine.Advance(delta)
	for _, p := range tick.Progress {
		if err := f.t.UpdateProgress(p); err != nil {
			f.Stop()
			return Update{}, err
		}
	}

	upd := Update{Progress: tick.Progress, Results: tick.Results, Done: tick.Finished}
	if tick.Results != nil {
		if err := f.finish(ctx, tick.Results); err != nil {
			return upd, err
		}
	}
	return upd, nil
}

// Stop abandons the running race. Safe to call at any time.
func (f *Flow) Stop() {
	if f.engine != nil {
		f.engine.Stop()
	}
	f.running = false
}

// Pause forgets the last frame time so the next Tick after a gap covers a
// single nominal frame instead of the whole gap.
func (f *Flow) Pause() {
	f.lastFrame = time.Time{}
}

// Next moves to the following round.
func (f *Flow) Next(ctx context.Context) error {
	return f.t.MoveToNextRound()
}

// Reset discards the tournament and its standings.
func (f *Flow) Reset(ctx context.Context) {
	id := f.t.ID()
	f.Stop()
	f.t.ResetRace()
	f.agg.Clear()
	if id != "" {
		f.persist(ctx, store.TournamentEventData{
			TournamentID: id,
			Action:       store.ActionReset,
			Status:       StatusIdle.String(),
		})
	}
}

// RunToCompletion ticks the running race at a fixed step until it
// finishes, ctx is done or the tick limit is hit.
func (f *Flow) RunToCompletion(ctx context.Context, step time.Duration) ([]race.Result, error) {
	if !f.running {
		return nil, ErrNotRunning
	}

	now := time.Now()
	limit := f.t.cfg.TickLimit
	for i := 0; i < limit; i++ {
		if err := ctx.Err(); err != nil {
			f.Stop()
			return nil, err
		}
		now = now.Add(step)
		upd, err := f.Tick(ctx, now)
		if err != nil {
			return nil, err
		}
		if upd.Results != nil {
			return upd.Results, nil
		}
		if upd.Stopped {
			return nil, ErrRaceAborted
		}
	}

	f.Stop()
	return nil, fmt.Errorf("%w after %d ticks", ErrRaceStalled, limit)
}

func (f *Flow) finish(ctx context.Context, results []race.Result) error {
	f.running = false
	r, _ := f.t.CurrentRound()

	if err := f.t.SetResults(results); err != nil {
		return err
	}
	f.agg.Record(results)

	if f.t.cfg.ConditionEffects {
		ran := make([]int, len(results))
		for i, res := range results {
			ran[i] = res.CompetitorID
		}
		f.t.pool.ApplyRaceEffects(ran)
	}
	f.logResults(ctx, r, results)

	if err := f.t.CompleteRound(); err != nil {
		return err
	}
	f.logLifecycle(ctx, store.ActionComplete, r, "")

	if f.t.Status() == StatusAllRacesCompleted {
		champ, _ := f.agg.Champion()
		f.logLifecycle(ctx, store.ActionFinish, Round{}, champ.Name)
		f.saveStandings(ctx)
	}
	return nil
}

func (f *Flow) logLifecycle(ctx context.Context, action string, r Round, detail string) {
	f.persist(ctx, store.TournamentEventData{
		TournamentID: f.t.ID(),
		Action:       action,
		Round:        r.Number,
		Distance:     r.Distance,
		Status:       f.t.Status().String(),
		Detail:       detail,
	})
}

func (f *Flow) logResults(ctx context.Context, r Round, results []race.Result) {
	if f.events == nil {
		return
	}
	names := make(map[int]string, len(r.Participants))
	for _, c := range r.Participants {
		names[c.ID] = c.Name
	}
	data := make([]store.ResultEventData, len(results))
	for i, res := range results {
		data[i] = store.ResultEventData{
			TournamentID:   f.t.ID(),
			Round:          res.RoundNumber,
			Distance:       r.Distance,
			CompetitorID:   res.CompetitorID,
			CompetitorName: names[res.CompetitorID],
			Position:       res.Position,
			Points:         res.Points,
			CompletionMs:   res.CompletionMs,
			FinalSpeed:     res.FinalSpeed,
		}
	}
	if err := f.events.AppendResultEvents(ctx, data); err != nil {
		f.warnf("record results for round %d: %v", r.Number, err)
	}
}

func (f *Flow) persist(ctx context.Context, data store.TournamentEventData) {
	if f.events == nil {
		return
	}
	if err := f.events.AppendTournamentEvent(ctx, data); err != nil {
		f.warnf("record %s event: %v", data.Action, err)
	}
}

func (f *Flow) saveStandings(ctx context.Context) {
	if f.snapshots == nil {
		return
	}
	sorted := f.agg.Sorted()
	rankings := make([]store.RankingRecord, len(sorted))
	for i, r := range sorted {
		rankings[i] = store.RankingRecord{
			CompetitorID:    r.CompetitorID,
			Name:            r.Name,
			TotalPoints:     r.TotalPoints,
			Races:           r.RacesParticipated,
			BestPosition:    r.BestPosition,
			AveragePosition: r.AveragePosition,
		}
	}
	err := f.snapshots.Save(ctx, &store.Snapshot{
		TournamentID: f.t.ID(),
		Data:         store.SnapshotData{Version: 1, Rankings: rankings},
	})
	if err != nil {
		f.warnf("save standings: %v", err)
	}
}

// warnf reports a persistence failure. The race itself carries on.
func (f *Flow) warnf(format string, args ...any) {
	fmt.Fprintf(f.warn, "warning: "+format+"\n", args...)
}
