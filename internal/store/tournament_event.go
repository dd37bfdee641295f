package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendTournamentEvent(ctx context.Context, data TournamentEventData) error {
	err := r.insert(ctx, tableTournamentEvents,
		[]string{"tournament_id", "action", "round", "distance", "status", "detail"},
		[]any{data.TournamentID, data.Action, data.Round, data.Distance, data.Status, data.Detail},
	)
	if err != nil {
		return fmt.Errorf("save tournament event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryTournamentEvents(ctx context.Context, opts QueryOpts) ([]TournamentEventRecord, error) {
	sel := entsql.Dialect(dialectName).
		Select("id", "sequence", "timestamp", "tournament_id", "action", "round", "distance", "status", "detail").
		From(entsql.Table(tableTournamentEvents))

	var records []TournamentEventRecord
	if err := query(ctx, r.drv, window(sel, opts), &records); err != nil {
		return nil, fmt.Errorf("query tournament events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) TournamentSummaries(ctx context.Context, opts QueryOpts) ([]TournamentSummaryRecord, error) {
	events, err := r.QueryTournamentEvents(ctx, QueryOpts{After: opts.After, Before: opts.Before, From: opts.From, To: opts.To})
	if err != nil {
		return nil, err
	}

	// Events arrive newest first, so the first sighting of an id orders
	// tournaments by most recent activity.
	var order []string
	byID := map[string]*TournamentSummaryRecord{}
	for _, e := range events {
		sum, ok := byID[e.TournamentID]
		if !ok {
			sum = &TournamentSummaryRecord{TournamentID: e.TournamentID, UpdatedAt: e.Timestamp}
			byID[e.TournamentID] = sum
			order = append(order, e.TournamentID)
		}
		switch e.Action {
		case ActionSchedule:
			sum.StartedAt = e.Timestamp
		case ActionComplete:
			sum.RoundsCompleted++
		case ActionFinish:
			sum.Finished = true
			sum.Champion = e.Detail
		case ActionReset:
			sum.Reset = true
		}
	}

	if opts.Limit > 0 && len(order) > opts.Limit {
		order = order[:opts.Limit]
	}
	out := make([]TournamentSummaryRecord, len(order))
	for i, id := range order {
		out[i] = *byID[id]
	}
	return out, nil
}
