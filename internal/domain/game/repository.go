package game

import (
	"context"
	"time"
)

// Repository exposes game persistence.
type Repository interface {
	// ListByWindow returns games whose stored start falls in [startUTC, endUTC).
	ListByWindow(ctx context.Context, startUTC, endUTC time.Time) ([]Game, error)
	Upsert(ctx context.Context, item Game) error
}
