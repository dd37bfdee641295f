package tournament

import (
	"fmt"

	"github.com/abhisek/gallop/internal/race"
)

// Config describes the shape of a tournament.
type Config struct {
	// Distances holds one entry per round, in running order.
	Distances []int

	// RaceSize is the number of competitors drawn for each round.
	RaceSize int

	// MinCompetitors is the smallest pool a schedule can be built from.
	MinCompetitors int

	// TickLimit caps RunToCompletion. A healthy race finishes in a small
	// fraction of it.
	TickLimit int

	// ConditionEffects applies fatigue and rest recovery to the pool after
	// every round.
	ConditionEffects bool

	Race race.Config
}

// DefaultConfig returns the six-round, ten-runner tournament.
func DefaultConfig() Config {
	return Config{
		Distances:        []int{1200, 1400, 1600, 1800, 2000, 2200},
		RaceSize:         10,
		MinCompetitors:   10,
		TickLimit:        100_000,
		ConditionEffects: true,
		Race:             race.DefaultConfig(),
	}
}

// Rounds returns the number of rounds in a schedule.
func (c Config) Rounds() int {
	return len(c.Distances)
}

func (c Config) validate() error {
	if len(c.Distances) == 0 {
		return fmt.Errorf("%w: no distances", ErrInvalidConfig)
	}
	for i, d := range c.Distances {
		if d <= 0 {
			return fmt.Errorf("%w: round %d distance %d", ErrInvalidConfig, i+1, d)
		}
	}
	if c.RaceSize < 1 {
		return fmt.Errorf("%w: race size %d", ErrInvalidConfig, c.RaceSize)
	}
	return nil
}
