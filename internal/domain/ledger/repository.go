package ledger

import "context"

// Repository exposes read access to the points ledger. Writes happen only
// through the settlement repository so the replace stays atomic.
type Repository interface {
	ListByReason(ctx context.Context, reason string) ([]Entry, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error)
}
