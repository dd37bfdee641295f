package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// AppendResultEvents stores a round's placings. Each row gets its own
// sequence number; rows are appended in the order given.
func (r *eventRepo) AppendResultEvents(ctx context.Context, data []ResultEventData) error {
	for _, d := range data {
		err := r.insert(ctx, tableResultEvents,
			[]string{"tournament_id", "round", "distance", "competitor_id", "competitor_name", "position", "points", "completion_ms", "final_speed"},
			[]any{d.TournamentID, d.Round, d.Distance, d.CompetitorID, d.CompetitorName, d.Position, d.Points, d.CompletionMs, d.FinalSpeed},
		)
		if err != nil {
			return fmt.Errorf("save result event (round %d, competitor %d): %w", d.Round, d.CompetitorID, err)
		}
	}
	return nil
}

func (r *eventRepo) QueryResults(ctx context.Context, tournamentID string) ([]ResultEventRecord, error) {
	sel := entsql.Dialect(dialectName).
		Select("id", "sequence", "timestamp", "tournament_id", "round", "distance", "competitor_id",
			"competitor_name", "position", "points", "completion_ms", "final_speed").
		From(entsql.Table(tableResultEvents)).
		Where(entsql.EQ("tournament_id", tournamentID)).
		OrderBy("round", "position")

	var records []ResultEventRecord
	if err := query(ctx, r.drv, sel, &records); err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	return records, nil
}
