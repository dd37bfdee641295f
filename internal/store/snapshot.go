package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo on the entsql driver.
type snapshotRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

// snapshotRow mirrors the snapshots table. Data holds the raw JSON
// document; it is written as bytes so SQLite hands bytes back.
type snapshotRow struct {
	ID           int       `sql:"id"`
	Sequence     int64     `sql:"sequence"`
	Timestamp    time.Time `sql:"timestamp"`
	TournamentID string    `sql:"tournament_id"`
	Data         []byte    `sql:"data"`
}

// Save stores snap. A zero Sequence is replaced by the next global
// sequence number and a zero Timestamp by the current time.
func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	if snap.Sequence == 0 && r.seq != nil {
		if snap.Sequence, err = r.seq.Next(ctx); err != nil {
			return err
		}
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = nowUTC()
	}

	q, args := entsql.Dialect(dialectName).
		Insert(tableSnapshots).
		Columns("sequence", "timestamp", "tournament_id", "data").
		Values(snap.Sequence, snap.Timestamp.UTC(), snap.TournamentID, data).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// ForTournament returns the newest snapshot saved for tournamentID, or
// nil when the tournament never finished.
func (r *snapshotRepo) ForTournament(ctx context.Context, tournamentID string) (*Snapshot, error) {
	sel := entsql.Dialect(dialectName).
		Select("id", "sequence", "timestamp", "tournament_id", "data").
		From(entsql.Table(tableSnapshots)).
		Where(entsql.EQ("tournament_id", tournamentID)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1)

	var rows []snapshotRow
	if err := query(ctx, r.drv, sel, &rows); err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	snap := &Snapshot{
		ID:           row.ID,
		Sequence:     row.Sequence,
		Timestamp:    row.Timestamp,
		TournamentID: row.TournamentID,
	}
	if err := json.Unmarshal(row.Data, &snap.Data); err != nil {
		return nil, fmt.Errorf("decode snapshot %d: %w", row.ID, err)
	}
	return snap, nil
}
