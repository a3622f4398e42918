package player

import "context"

type Repository interface {
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
	Upsert(ctx context.Context, item Player) error
}
