package race

// Entrant is the static input for one competitor at round start.
type Entrant struct {
	ID        int
	Condition int
}

// Variance is the per-round fatigue and surge profile of a competitor.
type Variance struct {
	StaminaDecay float64
	SurgeAmp     float64
	Phase        float64
}

// Progress is the live simulation state of one competitor.
type Progress struct {
	CompetitorID     int
	Progress         float64 // 0..100
	Speed            float64
	Finished         bool
	RealFinishMs     float64 // raw finish time, used for ordering
	ViewerFinishMs   float64 // scaled finish time, display only
	ExpectedFinishMs float64
	Variance         Variance
}

// Result is one competitor's final placing in a round.
type Result struct {
	RoundNumber  int
	CompetitorID int
	Position     int
	CompletionMs float64
	FinalSpeed   float64
	Points       int
}

// Tick is the outcome of a single Advance call.
type Tick struct {
	Progress []Progress

	// Finished is true once every competitor has crossed the line.
	Finished bool

	// Results is set exactly once, on the tick where the last competitor
	// finishes.
	Results []Result
}
