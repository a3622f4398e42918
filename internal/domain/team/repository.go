package team

import "context"

type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByAbbr(ctx context.Context, abbr string) (Team, bool, error)
	Upsert(ctx context.Context, item Team) error
}
