package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nbanima/pickslate/internal/domain/ledger"
	"github.com/nbanima/pickslate/internal/domain/settlement"
	qb "github.com/nbanima/pickslate/internal/platform/querybuilder"
)

type SettlementRepository struct {
	db *sqlx.DB
}

func NewSettlementRepository(db *sqlx.DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

// ReplaceSlateSettlement runs the delete, balance updates, and inserts in
// one transaction. A rerun that fails midway rolls back to the previous
// settlement instead of leaving the ledger half-replaced.
func (r *SettlementRepository) ReplaceSlateSettlement(ctx context.Context, reason string, balances []settlement.BalanceUpdate, entries []ledger.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settlement replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("points_ledger").
		Where(qb.Eq("reason", reason)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete ledger by reason query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete prior ledger entries: %w", err)
	}

	for _, update := range balances {
		query, args, buildErr := qb.Update("users").
			Set("points_balance", update.NewBalance).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("id", update.UserID)).
			ToSQL()
		if buildErr != nil {
			return fmt.Errorf("build update balance query: %w", buildErr)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update balance for user %s: %w", update.UserID, err)
		}
	}

	for _, entry := range entries {
		query, args, buildErr := qb.InsertInto("points_ledger").
			Columns("user_id", "delta", "balance_after", "reason", "created_at").
			Values(entry.UserID, entry.Delta, entry.BalanceAfter, entry.Reason, entry.CreatedAt).
			ToSQL()
		if buildErr != nil {
			return fmt.Errorf("build insert ledger entry query: %w", buildErr)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert ledger entry for user %s: %w", entry.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settlement replace: %w", err)
	}
	return nil
}
