package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/abhisek/gallop/ent/schema"
)

const (
	tableTournamentEvents = "tournament_events"
	tableResultEvents     = "result_events"
	tableLLMEvents        = "llm_request_events"
	tableSnapshots        = "snapshots"
)

// tables maps every persisted ent schema to its table name.
var tables = []struct {
	name   string
	schema ent.Interface
}{
	{tableTournamentEvents, schema.TournamentEvent{}},
	{tableResultEvents, schema.ResultEvent{}},
	{tableLLMEvents, schema.LLMRequestEvent{}},
	{tableSnapshots, schema.Snapshot{}},
}

// migrate creates missing tables and indexes with ent's migration engine.
func (s *Store) migrate(ctx context.Context) error {
	defs := make([]*entschema.Table, 0, len(tables))
	for _, t := range tables {
		def, err := tableDef(t.name, t.schema)
		if err != nil {
			return fmt.Errorf("table %s: %w", t.name, err)
		}
		defs = append(defs, def)
	}

	m, err := entschema.NewMigrate(s.drv, entschema.WithForeignKeys(false))
	if err != nil {
		return err
	}
	return m.Create(ctx, defs...)
}

// tableDef builds the migration table for an ent schema: an
// auto-increment id, then mixin fields, then the schema's own fields.
func tableDef(name string, sc ent.Interface) (*entschema.Table, error) {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range sc.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, sc.Fields()...)
	indexes = append(indexes, sc.Indexes()...)

	t := entschema.NewTable(name).
		AddPrimary(&entschema.Column{Name: "id", Type: field.TypeInt, Increment: true})
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("field %s: %w", d.Name, d.Err)
		}
		t.AddColumn(&entschema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
		})
	}

	seen := map[string]bool{}
	for _, idx := range indexes {
		d := idx.Descriptor()
		idxName := name + "_" + strings.Join(d.Fields, "_")
		if seen[idxName] {
			continue
		}
		seen[idxName] = true
		t.AddIndex(idxName, d.Unique, d.Fields)
	}
	return t, nil
}
