// Package race simulates a single round: it rolls speeds, advances
// progress tick by tick, and produces a tie-free finish order.
package race

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/abhisek/gallop/internal/chance"
)

// ErrInvalidField is returned when an engine is built with no entrants,
// duplicate ids, or a non-positive distance.
var ErrInvalidField = errors.New("invalid race field")

// Engine advances one round. It is not safe for concurrent use; the host
// drives it one tick at a time.
type Engine struct {
	cfg      Config
	src      chance.Source
	round    int
	distance int

	progress []Progress

	realMs   float64
	viewerMs float64

	buckets      map[int64]struct{}
	lastFinishMs float64
	finished     int

	stopped bool
	done    bool
	ticks   int
}

// NewEngine rolls speeds and variance profiles for every entrant and
// returns an engine with all competitors at the start line.
func NewEngine(round, distance int, entrants []Entrant, cfg Config, src chance.Source) (*Engine, error) {
	if len(entrants) == 0 {
		return nil, fmt.Errorf("%w: no entrants", ErrInvalidField)
	}
	if distance <= 0 {
		return nil, fmt.Errorf("%w: distance %d", ErrInvalidField, distance)
	}

	seen := make(map[int]bool, len(entrants))
	progress := make([]Progress, 0, len(entrants))
	for i, e := range entrants {
		if seen[e.ID] {
			return nil, fmt.Errorf("%w: duplicate competitor %d", ErrInvalidField, e.ID)
		}
		seen[e.ID] = true

		speed := cfg.Speed(e, distance, src)
		progress = append(progress, Progress{
			CompetitorID:     e.ID,
			Speed:            speed,
			ExpectedFinishMs: ExpectedFinishMs(speed, distance, i, src),
			Variance:         cfg.RollVariance(src),
		})
	}

	return &Engine{
		cfg:      cfg,
		src:      src,
		round:    round,
		distance: distance,
		progress: progress,
		buckets:  make(map[int64]struct{}),
	}, nil
}

// Round returns the round number the engine was built for.
func (e *Engine) Round() int { return e.round }

// Distance returns the race distance.
func (e *Engine) Distance() int { return e.distance }

// Ticks returns how many ticks have advanced the race.
func (e *Engine) Ticks() int { return e.ticks }

// Done reports whether every competitor has finished.
func (e *Engine) Done() bool { return e.done }

// Stopped reports whether Stop was called.
func (e *Engine) Stopped() bool { return e.stopped }

// Stop halts the engine. Later ticks do nothing and no results are
// emitted. Calling Stop more than once is harmless.
func (e *Engine) Stop() { e.stopped = true }

// Snapshot returns a copy of the current progress records in entrant order.
func (e *Engine) Snapshot() []Progress {
	return slices.Clone(e.progress)
}

// Advance moves the race forward by deltaMs of real time. Negative deltas
// are treated as zero.
func (e *Engine) Advance(deltaMs float64) Tick {
	if e.stopped {
		return Tick{}
	}
	if e.done {
		return Tick{Progress: e.Snapshot(), Finished: true}
	}

	deltaMs = math.Max(0, deltaMs)
	scaled := deltaMs * e.cfg.SpeedMultiplier
	e.realMs += deltaMs
	e.viewerMs += scaled
	e.ticks++

	type crossing struct {
		idx int
		at  float64 // fraction of the tick at which the line was crossed
	}
	var crossed []crossing

	for i := range e.progress {
		p := &e.progress[i]
		if p.Finished {
			continue
		}
		eff := p.Speed * e.cfg.DynamicFactor(p.Variance, p.Progress)
		inc := ProgressIncrement(eff, e.distance, scaled)
		next := math.Min(100, p.Progress+inc)
		if next >= 100 && inc > 0 {
			crossed = append(crossed, crossing{idx: i, at: (100 - p.Progress) / inc})
		}
		p.Progress = next
	}

	// Earlier crossings within the same tick finish first.
	sort.SliceStable(crossed, func(a, b int) bool { return crossed[a].at < crossed[b].at })
	for _, c := range crossed {
		e.finish(&e.progress[c.idx])
	}

	tick := Tick{Progress: e.Snapshot()}
	if e.finished == len(e.progress) {
		e.done = true
		tick.Finished = true
		tick.Results = e.results()
	}
	return tick
}

// finish records the raw and viewer finish time of p. The raw time is
// pushed forward until it lands in an unused bucket and is strictly after
// every earlier finisher.
func (e *Engine) finish(p *Progress) {
	t := e.realMs
	for e.taken(t) {
		step := chance.Between(e.src, e.cfg.BumpMinMs, e.cfg.BumpMaxMs)
		if step <= 0 {
			step = math.Max(1, e.cfg.BucketMs)
		}
		t += step
	}
	e.buckets[e.bucket(t)] = struct{}{}
	e.lastFinishMs = t
	e.finished++

	p.Finished = true
	p.Progress = 100
	p.RealFinishMs = t
	p.ViewerFinishMs = e.viewerMs
}

func (e *Engine) taken(t float64) bool {
	if e.finished > 0 && t <= e.lastFinishMs {
		return true
	}
	_, ok := e.buckets[e.bucket(t)]
	return ok
}

func (e *Engine) bucket(t float64) int64 {
	if e.cfg.BucketMs <= 0 {
		return int64(t)
	}
	return int64(math.Floor(t / e.cfg.BucketMs))
}

// results orders competitors by raw finish time and assigns positions.
func (e *Engine) results() []Result {
	order := slices.Clone(e.progress)
	sort.SliceStable(order, func(a, b int) bool { return order[a].RealFinishMs < order[b].RealFinishMs })

	out := make([]Result, len(order))
	for i, p := range order {
		completion := p.ViewerFinishMs
		if completion <= 0 {
			completion = p.RealFinishMs
		}
		out[i] = Result{
			RoundNumber:  e.round,
			CompetitorID: p.CompetitorID,
			Position:     i + 1,
			CompletionMs: completion,
			FinalSpeed:   p.Speed,
			Points:       e.cfg.Points(i+1, len(order)),
		}
	}
	return out
}
