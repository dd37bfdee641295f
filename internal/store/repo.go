package store

import (
	"context"
	"time"

	"entgo.io/ent/dialect"
)

const dialectName = dialect.SQLite

var nowUTC = func() time.Time { return time.Now().UTC() }

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Tournament lifecycle actions.
const (
	ActionSchedule = "schedule"
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionFinish   = "finish"
	ActionReset    = "reset"
)

// TournamentEventData captures one lifecycle change.
type TournamentEventData struct {
	TournamentID string
	Action       string
	Round        int
	Distance     int
	Status       string
	Detail       string
}

// TournamentEventRecord is a stored lifecycle event.
type TournamentEventRecord struct {
	ID           int       `sql:"id"`
	Sequence     int64     `sql:"sequence"`
	Timestamp    time.Time `sql:"timestamp"`
	TournamentID string    `sql:"tournament_id"`
	Action       string    `sql:"action"`
	Round        int       `sql:"round"`
	Distance     int       `sql:"distance"`
	Status       string    `sql:"status"`
	Detail       string    `sql:"detail"`
}

// ResultEventData captures one competitor's placing in a round.
type ResultEventData struct {
	TournamentID   string
	Round          int
	Distance       int
	CompetitorID   int
	CompetitorName string
	Position       int
	Points         int
	CompletionMs   float64
	FinalSpeed     float64
}

// ResultEventRecord is a stored placing.
type ResultEventRecord struct {
	ID             int       `sql:"id"`
	Sequence       int64     `sql:"sequence"`
	Timestamp      time.Time `sql:"timestamp"`
	TournamentID   string    `sql:"tournament_id"`
	Round          int       `sql:"round"`
	Distance       int       `sql:"distance"`
	CompetitorID   int       `sql:"competitor_id"`
	CompetitorName string    `sql:"competitor_name"`
	Position       int       `sql:"position"`
	Points         int       `sql:"points"`
	CompletionMs   float64   `sql:"completion_ms"`
	FinalSpeed     float64   `sql:"final_speed"`
}

// TournamentSummaryRecord condenses the lifecycle events of one tournament.
type TournamentSummaryRecord struct {
	TournamentID    string
	StartedAt       time.Time
	UpdatedAt       time.Time
	RoundsCompleted int
	Finished        bool
	Champion        string
	Reset           bool
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request.
type LLMEventRecord struct {
	ID           int       `sql:"id"`
	Sequence     int64     `sql:"sequence"`
	Timestamp    time.Time `sql:"timestamp"`
	Provider     string    `sql:"provider"`
	Model        string    `sql:"model"`
	Purpose      string    `sql:"purpose"`
	InputTokens  int       `sql:"input_tokens"`
	OutputTokens int       `sql:"output_tokens"`
	LatencyMs    int64     `sql:"latency_ms"`
	Success      bool      `sql:"success"`
	ErrorMessage string    `sql:"error_message"`
	RequestBody  string    `sql:"request_body"`
	ResponseBody string    `sql:"response_body"`
}

// LLMPurposeUsage aggregates LLM calls by purpose.
type LLMPurposeUsage struct {
	Purpose      string `sql:"purpose"`
	Calls        int    `sql:"calls"`
	InputTokens  int    `sql:"input_tokens"`
	OutputTokens int    `sql:"output_tokens"`
	AvgLatencyMs int64  `sql:"avg_latency_ms"`
}

// LLMModelUsage aggregates LLM calls by model.
type LLMModelUsage struct {
	Model        string `sql:"model"`
	Calls        int    `sql:"calls"`
	InputTokens  int    `sql:"input_tokens"`
	OutputTokens int    `sql:"output_tokens"`
}

// EventRepo provides append and query access to the race log.
type EventRepo interface {
	AppendTournamentEvent(ctx context.Context, data TournamentEventData) error
	AppendResultEvents(ctx context.Context, data []ResultEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	QueryTournamentEvents(ctx context.Context, opts QueryOpts) ([]TournamentEventRecord, error)

	// QueryResults returns the placings of one tournament ordered by round
	// and position.
	QueryResults(ctx context.Context, tournamentID string) ([]ResultEventRecord, error)

	// TournamentSummaries returns one entry per tournament, newest first.
	// opts.Limit caps the number of tournaments.
	TournamentSummaries(ctx context.Context, opts QueryOpts) ([]TournamentSummaryRecord, error)

	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns nil when no event has the given id.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// SnapshotData is the final standings of a tournament.
type SnapshotData struct {
	Version  int             `json:"version"`
	Rankings []RankingRecord `json:"rankings"`
}

// RankingRecord is one row of saved standings.
type RankingRecord struct {
	CompetitorID    int     `json:"competitor_id"`
	Name            string  `json:"name"`
	TotalPoints     int     `json:"total_points"`
	Races           int     `json:"races"`
	BestPosition    int     `json:"best_position"`
	AveragePosition float64 `json:"average_position"`
}

// Snapshot is a saved set of final standings.
type Snapshot struct {
	ID           int
	Sequence     int64
	Timestamp    time.Time
	TournamentID string
	Data         SnapshotData
}

// SnapshotRepo stores the final standings of finished tournaments.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// ForTournament returns the snapshot of one tournament, or nil.
	ForTournament(ctx context.Context, tournamentID string) (*Snapshot, error)
}
