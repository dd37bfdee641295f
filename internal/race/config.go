package race

// Config holds the tuning constants of the simulation.
type Config struct {
	// MaxBaseSpeed is the base speed of a competitor in perfect condition.
	MaxBaseSpeed float64

	// Distance suitability: optimal distance is OptimalBase plus a stable
	// hash of the competitor id modulo OptimalRange. Suitability falls off
	// linearly over SuitabilitySpan and never drops below SuitabilityFloor.
	OptimalBase      float64
	OptimalRange     int
	SuitabilitySpan  float64
	SuitabilityFloor float64

	// RollMin and RollMax bound the per-round random speed multiplier.
	RollMin float64
	RollMax float64

	// FloorSpeed guarantees forward motion; FloorJitter is added on top
	// when the floor applies.
	FloorSpeed  float64
	FloorJitter float64

	// Variance profile bounds.
	StaminaDecayMin float64
	StaminaDecayMax float64
	SurgeAmpMax     float64
	FactorFloor     float64

	// SpeedMultiplier scales real elapsed time into viewer time.
	SpeedMultiplier float64

	// FrameMs is the delta used when no previous frame exists.
	FrameMs float64

	// Finish collision handling.
	BucketMs  float64
	BumpMinMs float64
	BumpMaxMs float64

	// PointsTable holds the points for positions 1..len. Positions past the
	// table but within the field get the last entry.
	PointsTable []int
}

// DefaultConfig returns the standard race tuning.
func DefaultConfig() Config {
	return Config{
		MaxBaseSpeed:     45,
		OptimalBase:      1200,
		OptimalRange:     1100,
		SuitabilitySpan:  2000,
		SuitabilityFloor: 0.7,
		RollMin:          0.85,
		RollMax:          1.15,
		FloorSpeed:       24,
		FloorJitter:      2,
		StaminaDecayMin:  0.05,
		StaminaDecayMax:  0.15,
		SurgeAmpMax:      0.06,
		FactorFloor:      0.85,
		SpeedMultiplier:  40,
		FrameMs:          1000.0 / 60,
		BucketMs:         10,
		BumpMinMs:        5,
		BumpMaxMs:        15,
		PointsTable:      []int{10, 8, 6, 5, 4, 3, 2, 1},
	}
}

// Points returns the points awarded for finishing at position in a field
// of fieldSize competitors. Positions outside 1..fieldSize score zero.
func (c Config) Points(position, fieldSize int) int {
	if position < 1 || position > fieldSize || len(c.PointsTable) == 0 {
		return 0
	}
	if position <= len(c.PointsTable) {
		return c.PointsTable[position-1]
	}
	return c.PointsTable[len(c.PointsTable)-1]
}
