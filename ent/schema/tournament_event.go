package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// TournamentEvent records a lifecycle change of a tournament.
type TournamentEvent struct {
	ent.Schema
}

func (TournamentEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (TournamentEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("tournament_id").
			Comment("Schedule UUID shared by all events of one tournament"),
		field.String("action").
			Comment("schedule, start, complete, finish, reset"),
		field.Int("round").
			Default(0).
			Comment("1-based round number, 0 when not tied to a round"),
		field.Int("distance").
			Default(0).
			Comment("Round distance in meters"),
		field.String("status").
			Comment("Tournament status after the change"),
		field.String("detail").
			Default("").
			Comment("Free-form context, e.g. the champion's name"),
	}
}

func (TournamentEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("tournament_id"),
		index.Fields("action"),
	}
}
