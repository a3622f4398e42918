package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nbanima/pickslate/internal/domain/game"
	qb "github.com/nbanima/pickslate/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) ListByWindow(ctx context.Context, startUTC, endUTC time.Time) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Gte("starts_at", startUTC), qb.Lt("starts_at", endUTC)).
		OrderBy("starts_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games by window query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by window: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out, nil
}

func (r *GameRepository) Upsert(ctx context.Context, item game.Game) error {
	query, args, err := qb.InsertModel("games", gameToRow(item),
		"ON CONFLICT (id) DO UPDATE SET season = EXCLUDED.season, status = EXCLUDED.status, starts_at = EXCLUDED.starts_at, home_team_id = EXCLUDED.home_team_id, away_team_id = EXCLUDED.away_team_id, home_team_abbr = EXCLUDED.home_team_abbr, away_team_abbr = EXCLUDED.away_team_abbr")
	if err != nil {
		return fmt.Errorf("build upsert game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert game: %w", err)
	}
	return nil
}
