// Package registry owns the competitor pool: generation, unique random
// selection, lookups, and condition changes between races.
package registry

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/abhisek/gallop/internal/chance"
)

const (
	MinCondition = 1
	MaxCondition = 100
)

// ErrInvalidArgument is returned when a selection asks for more
// competitors than the pool holds.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNotFound is returned by lookups for unknown ids.
var ErrNotFound = errors.New("competitor not found")

// Competitor is a single entrant in the pool.
type Competitor struct {
	ID        int
	Name      string
	Color     string
	Condition int
}

// Config tunes post-race condition changes.
type Config struct {
	FatigueMultiplier float64
	RestRecoveryMin   int
	RestRecoveryMax   int
}

// DefaultConfig returns the standard fatigue and recovery settings.
func DefaultConfig() Config {
	return Config{
		FatigueMultiplier: 0.95,
		RestRecoveryMin:   2,
		RestRecoveryMax:   6,
	}
}

// Registry holds the competitor pool and the most recent selection.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	cfg      Config
	src      chance.Source
	pool     []Competitor
	selected []int
}

// New creates an empty Registry.
func New(cfg Config, src chance.Source) *Registry {
	return &Registry{cfg: cfg, src: src}
}

// Generate replaces the pool with a freshly shuffled roster. Ids run
// 0..PoolSize-1 in shuffled order; conditions are rolled uniformly.
func (r *Registry) Generate() {
	r.mu.Lock()
	defer r.mu.Unlock()

	order := make([]int, len(stableNames))
	for i := range order {
		order[i] = i
	}
	chance.Shuffle(r.src, order)

	pool := make([]Competitor, len(order))
	for id, idx := range order {
		pool[id] = Competitor{
			ID:        id,
			Name:      stableNames[idx],
			Color:     stableColors[idx],
			Condition: chance.IntBetween(r.src, MinCondition, MaxCondition),
		}
	}
	r.pool = pool
	r.selected = nil
}

// PickUnique draws n distinct competitors at random and records them as
// the current selection. On error nothing changes.
func (r *Registry) PickUnique(n int) ([]Competitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n < 0 || n > len(r.pool) {
		return nil, fmt.Errorf("%w: cannot select %d competitors from pool of %d", ErrInvalidArgument, n, len(r.pool))
	}

	shuffled := slices.Clone(r.pool)
	chance.Shuffle(r.src, shuffled)
	picked := shuffled[:n:n]

	r.selected = make([]int, n)
	for i, c := range picked {
		r.selected[i] = c.ID
	}
	return picked, nil
}

// ByID returns the competitor with the given id.
func (r *Registry) ByID(id int) (Competitor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.index(id); i >= 0 {
		return r.pool[i], nil
	}
	return Competitor{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// All returns a copy of the pool.
func (r *Registry) All() []Competitor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.pool)
}

// Selected returns the competitors from the most recent PickUnique.
func (r *Registry) Selected() []Competitor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Competitor, 0, len(r.selected))
	for _, id := range r.selected {
		if i := r.index(id); i >= 0 {
			out = append(out, r.pool[i])
		}
	}
	return out
}

// Available returns the pool minus the current selection.
func (r *Registry) Available() []Competitor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Competitor, 0, len(r.pool))
	for _, c := range r.pool {
		if !slices.Contains(r.selected, c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the pool size.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pool)
}

// HasEnough reports whether the pool holds at least n competitors.
func (r *Registry) HasEnough(n int) bool {
	return r.Count() >= n
}

// UpdateCondition sets a competitor's condition, clamped to
// [MinCondition, MaxCondition]. Unknown ids are ignored.
func (r *Registry) UpdateCondition(id, condition int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.index(id); i >= 0 {
		r.pool[i].Condition = clampCondition(condition)
	}
}

// ApplyRaceEffects tires everyone who ran and lets everyone else recover.
func (r *Registry) ApplyRaceEffects(ran []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.pool {
		c := &r.pool[i]
		if slices.Contains(ran, c.ID) {
			c.Condition = Fatigue(c.Condition, r.cfg.FatigueMultiplier)
			continue
		}
		gain := chance.IntBetween(r.src, r.cfg.RestRecoveryMin, r.cfg.RestRecoveryMax)
		c.Condition = clampCondition(c.Condition + gain)
	}
}

// Reset re-rolls every condition and clears the selection.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.pool {
		r.pool[i].Condition = chance.IntBetween(r.src, MinCondition, MaxCondition)
	}
	r.selected = nil
}

// Clear empties the pool.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pool = nil
	r.selected = nil
}

// Fatigue returns the condition after a race: scaled down and floored,
// never below MinCondition.
func Fatigue(condition int, multiplier float64) int {
	return max(MinCondition, int(math.Floor(float64(condition)*multiplier)))
}

func (r *Registry) index(id int) int {
	return slices.IndexFunc(r.pool, func(c Competitor) bool { return c.ID == id })
}

func clampCondition(c int) int {
	return min(MaxCondition, max(MinCondition, c))
}
