package user

import "context"

// Repository exposes user persistence. Balance writes happen only through
// the settlement repository so ledger and balance move together.
type Repository interface {
	Get(ctx context.Context, id string) (User, bool, error)
	ListByIDs(ctx context.Context, ids []string) ([]User, error)
}
