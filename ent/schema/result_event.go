package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ResultEvent records one competitor's placing in a finished round.
type ResultEvent struct {
	ent.Schema
}

func (ResultEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ResultEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("tournament_id"),
		field.Int("round"),
		field.Int("distance"),
		field.Int("competitor_id"),
		field.String("competitor_name"),
		field.Int("position"),
		field.Int("points"),
		field.Float("completion_ms").
			Comment("Display finish time in milliseconds"),
		field.Float("final_speed"),
	}
}

func (ResultEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("tournament_id", "round"),
		index.Fields("competitor_id"),
	}
}
