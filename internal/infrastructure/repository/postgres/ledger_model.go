package postgres

import (
	"time"

	"github.com/nbanima/pickslate/internal/domain/ledger"
)

type ledgerTableModel struct {
	ID           int64     `db:"id"`
	UserID       string    `db:"user_id"`
	Delta        int       `db:"delta"`
	BalanceAfter int       `db:"balance_after"`
	Reason       string    `db:"reason"`
	CreatedAt    time.Time `db:"created_at"`
}

func ledgerEntryFromRow(row ledgerTableModel) ledger.Entry {
	return ledger.Entry{
		ID:           row.ID,
		UserID:       row.UserID,
		Delta:        row.Delta,
		BalanceAfter: row.BalanceAfter,
		Reason:       row.Reason,
		CreatedAt:    row.CreatedAt.UTC(),
	}
}
