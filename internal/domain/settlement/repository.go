package settlement

import (
	"context"

	"github.com/nbanima/pickslate/internal/domain/ledger"
)

// Repository is the write side of settlement.
type Repository interface {
	// ReplaceSlateSettlement deletes every ledger row filed under reason,
	// writes the new balances, and inserts the new entries, all inside one
	// transaction so a failed rerun never leaves a half-replaced ledger.
	ReplaceSlateSettlement(ctx context.Context, reason string, balances []BalanceUpdate, entries []ledger.Entry) error
}
