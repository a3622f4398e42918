package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nbanima/pickslate/internal/domain/ledger"
	qb "github.com/nbanima/pickslate/internal/platform/querybuilder"
)

type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) ListByReason(ctx context.Context, reason string) ([]ledger.Entry, error) {
	query, args, err := qb.Select("*").From("points_ledger").
		Where(qb.Eq("reason", reason)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list ledger by reason query: %w", err)
	}

	var rows []ledgerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select ledger entries by reason: %w", err)
	}

	out := make([]ledger.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, ledgerEntryFromRow(row))
	}
	return out, nil
}

func (r *LedgerRepository) ListByUser(ctx context.Context, userID string, limit int) ([]ledger.Entry, error) {
	builder := qb.Select("*").From("points_ledger").
		Where(qb.Eq("user_id", userID)).
		OrderBy("id DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list ledger by user query: %w", err)
	}

	var rows []ledgerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select ledger entries by user: %w", err)
	}

	out := make([]ledger.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, ledgerEntryFromRow(row))
	}
	return out, nil
}
