package race

import (
	"math"
	"strconv"

	"github.com/abhisek/gallop/internal/chance"
)

// Suitability scores how well distance suits a competitor, in
// [SuitabilityFloor, 1]. It depends only on the id and the distance.
func (c Config) Suitability(id, distance int) float64 {
	var hash int
	for _, r := range strconv.Itoa(id) {
		hash += int(r)
	}
	optimal := c.OptimalBase
	if c.OptimalRange > 0 {
		optimal += float64(hash % c.OptimalRange)
	}
	s := 1 - math.Abs(float64(distance)-optimal)/c.SuitabilitySpan
	return math.Max(c.SuitabilityFloor, s)
}

// Speed rolls the base speed of a competitor for one round.
func (c Config) Speed(e Entrant, distance int, src chance.Source) float64 {
	base := float64(e.Condition) / 100 * c.MaxBaseSpeed
	speed := base * c.Suitability(e.ID, distance) * chance.Between(src, c.RollMin, c.RollMax)
	if speed < c.FloorSpeed {
		speed = c.FloorSpeed + src.Float64()*c.FloorJitter
	}
	return speed
}

// ExpectedFinishMs estimates the finish time for display and tuning.
// index spreads competitors that would otherwise share an estimate.
func ExpectedFinishMs(speed float64, distance, index int, src chance.Source) float64 {
	t := float64(distance) / speed * 1000
	t += float64(index) * 10
	t += chance.Between(src, -50, 50)
	t += speed / 10 * (src.Float64() - 0.5)
	return t
}

// RollVariance samples a fresh variance profile.
func (c Config) RollVariance(src chance.Source) Variance {
	return Variance{
		StaminaDecay: chance.Between(src, c.StaminaDecayMin, c.StaminaDecayMax),
		SurgeAmp:     src.Float64() * c.SurgeAmpMax,
		Phase:        src.Float64() * 2 * math.Pi,
	}
}

// DynamicFactor scales base speed at the given progress (0..100).
func (c Config) DynamicFactor(v Variance, progress float64) float64 {
	p := math.Min(1, math.Max(0, progress/100))
	f := 1 - v.StaminaDecay*p + math.Sin(v.Phase+p*2*math.Pi)*v.SurgeAmp
	return math.Max(c.FactorFloor, f)
}

// ProgressIncrement converts a speed and a scaled time delta into progress
// points, where 100 is the finish line.
func ProgressIncrement(speed float64, distance int, scaledDeltaMs float64) float64 {
	if distance <= 0 {
		return 0
	}
	return speed / float64(distance) * 10 * scaledDeltaMs / 1000
}
