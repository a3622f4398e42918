package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nbanima/pickslate/internal/domain/result"
	qb "github.com/nbanima/pickslate/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) ListTeamResultsByGames(ctx context.Context, gameIDs []string) ([]result.Team, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("*").From("results_teams").
		Where(qb.In("game_id", toAnySlice(gameIDs))).
		OrderBy("game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team results query: %w", err)
	}

	var rows []teamResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team results: %w", err)
	}

	out := make([]result.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamResultFromRow(row))
	}
	return out, nil
}

func (r *ResultRepository) ListPlayerResultsByGames(ctx context.Context, gameIDs []string) ([]result.Player, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("*").From("results_players").
		Where(qb.In("game_id", toAnySlice(gameIDs))).
		OrderBy("game_id", "category", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player results query: %w", err)
	}

	var rows []playerResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player results: %w", err)
	}

	out := make([]result.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerResultFromRow(row))
	}
	return out, nil
}

func (r *ResultRepository) ListHighlightResultsBySlate(ctx context.Context, slateDate string) ([]result.Highlight, error) {
	query, args, err := qb.Select("*").From("results_highlights").
		Where(qb.Eq("slate_date", slateDate)).
		OrderBy("rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list highlight results query: %w", err)
	}

	var rows []highlightResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select highlight results: %w", err)
	}

	out := make([]result.Highlight, 0, len(rows))
	for _, row := range rows {
		out = append(out, highlightResultFromRow(row))
	}
	return out, nil
}

func (r *ResultRepository) UpsertTeamResult(ctx context.Context, item result.Team) error {
	query, args, err := qb.InsertInto("results_teams").
		Columns("game_id", "winner_team_id", "settled_at").
		Values(item.GameID, item.WinnerTeamID, item.SettledAt).
		Suffix("ON CONFLICT (game_id) DO UPDATE SET winner_team_id = EXCLUDED.winner_team_id, settled_at = EXCLUDED.settled_at").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert team result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team result: %w", err)
	}
	return nil
}

func (r *ResultRepository) ReplacePlayerResults(ctx context.Context, gameID string, category string, items []result.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace player results: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("results_players").
		Where(qb.Eq("game_id", gameID), qb.Eq("category", category)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player results query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete player results: %w", err)
	}

	for _, item := range items {
		query, args, buildErr := qb.InsertInto("results_players").
			Columns("game_id", "category", "player_id", "player_provider_id", "player_display_name", "settled_at").
			Values(item.GameID, string(item.Category), item.Player.RawID, item.Player.ProviderID, item.Player.DisplayName, item.SettledAt).
			ToSQL()
		if buildErr != nil {
			return fmt.Errorf("build insert player result query: %w", buildErr)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert player result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace player results: %w", err)
	}
	return nil
}

func (r *ResultRepository) ReplaceHighlightResults(ctx context.Context, slateDate string, items []result.Highlight) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace highlight results: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("results_highlights").
		Where(qb.Eq("slate_date", slateDate)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete highlight results query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete highlight results: %w", err)
	}

	for _, item := range items {
		query, args, buildErr := qb.InsertInto("results_highlights").
			Columns("slate_date", "player_id", "player_provider_id", "player_display_name", "rank", "settled_at").
			Values(item.SlateDate, item.Player.RawID, item.Player.ProviderID, item.Player.DisplayName, item.Rank, item.SettledAt).
			ToSQL()
		if buildErr != nil {
			return fmt.Errorf("build insert highlight result query: %w", buildErr)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert highlight result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace highlight results: %w", err)
	}
	return nil
}
