// Package commentary produces a short recap of a finished round, from a
// language model when one is configured and from a template otherwise.
package commentary

import (
	"fmt"

	"github.com/abhisek/gallop/internal/race"
	"github.com/abhisek/gallop/internal/standings"
)

// Placing is one finisher as the commentator sees it.
type Placing struct {
	Name         string
	Position     int
	CompletionMs float64
	Points       int
}

// Input is everything a recap may mention.
type Input struct {
	Round    int
	Distance int
	Placings []Placing

	// Leader is the overall standings leader after this round. Empty
	// before any points are scored.
	Leader       string
	LeaderPoints int
	Final        bool
}

// Recap is the commentary for one round.
type Recap struct {
	Headline string
	Lines    []string

	// Generated is false for the built-in template.
	Generated bool

	// Err is the provider failure that forced the template, if any. Only
	// set on recaps delivered by ConsumeRecap.
	Err error
}

// NewInput resolves names for results and notes the current leader.
// Results must already be sorted by position.
func NewInput(round, distance int, results []race.Result, lookup standings.Lookup, agg *standings.Aggregator, final bool) Input {
	in := Input{Round: round, Distance: distance, Final: final}
	for _, r := range results {
		name := fmt.Sprintf("#%d", r.CompetitorID)
		if c, err := lookup.ByID(r.CompetitorID); err == nil {
			name = c.Name
		}
		in.Placings = append(in.Placings, Placing{
			Name:         name,
			Position:     r.Position,
			CompletionMs: r.CompletionMs,
			Points:       r.Points,
		})
	}
	if agg != nil {
		if champ, ok := agg.Champion(); ok {
			in.Leader = champ.Name
			in.LeaderPoints = champ.TotalPoints
		}
	}
	return in
}
