package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nbanima/pickslate/internal/domain/pick"
	qb "github.com/nbanima/pickslate/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) ListTeamPicksBySlate(ctx context.Context, slateDate string) ([]pick.Team, error) {
	query, args, err := qb.Select("*").From("picks_teams").
		Where(qb.Eq("slate_date", slateDate)).
		OrderBy("user_id", "game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team picks query: %w", err)
	}

	var rows []teamPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team picks: %w", err)
	}

	out := make([]pick.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamPickFromRow(row))
	}
	return out, nil
}

func (r *PickRepository) ListPlayerPicksBySlate(ctx context.Context, slateDate string) ([]pick.Player, error) {
	query, args, err := qb.Select("*").From("picks_players").
		Where(qb.Eq("slate_date", slateDate)).
		OrderBy("user_id", "game_id", "category").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player picks query: %w", err)
	}

	var rows []playerPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player picks: %w", err)
	}

	out := make([]pick.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerPickFromRow(row))
	}
	return out, nil
}

func (r *PickRepository) ListHighlightPicksBySlate(ctx context.Context, slateDate string) ([]pick.Highlight, error) {
	query, args, err := qb.Select("*").From("picks_highlights").
		Where(qb.Eq("slate_date", slateDate)).
		OrderBy("user_id", "rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list highlight picks query: %w", err)
	}

	var rows []highlightPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select highlight picks: %w", err)
	}

	out := make([]pick.Highlight, 0, len(rows))
	for _, row := range rows {
		out = append(out, highlightPickFromRow(row))
	}
	return out, nil
}

func (r *PickRepository) GetBundleByUserAndSlate(ctx context.Context, userID, slateDate string) (pick.Bundle, error) {
	bundle := pick.Bundle{}

	teamQuery, teamArgs, err := qb.Select("*").From("picks_teams").
		Where(qb.Eq("user_id", userID), qb.Eq("slate_date", slateDate)).
		OrderBy("game_id").
		ToSQL()
	if err != nil {
		return pick.Bundle{}, fmt.Errorf("build get team picks query: %w", err)
	}
	var teamRows []teamPickTableModel
	if err := r.db.SelectContext(ctx, &teamRows, teamQuery, teamArgs...); err != nil {
		return pick.Bundle{}, fmt.Errorf("select team picks for bundle: %w", err)
	}
	for _, row := range teamRows {
		bundle.Teams = append(bundle.Teams, teamPickFromRow(row))
	}

	playerQuery, playerArgs, err := qb.Select("*").From("picks_players").
		Where(qb.Eq("user_id", userID), qb.Eq("slate_date", slateDate)).
		OrderBy("game_id", "category").
		ToSQL()
	if err != nil {
		return pick.Bundle{}, fmt.Errorf("build get player picks query: %w", err)
	}
	var playerRows []playerPickTableModel
	if err := r.db.SelectContext(ctx, &playerRows, playerQuery, playerArgs...); err != nil {
		return pick.Bundle{}, fmt.Errorf("select player picks for bundle: %w", err)
	}
	for _, row := range playerRows {
		bundle.Players = append(bundle.Players, playerPickFromRow(row))
	}

	highlightQuery, highlightArgs, err := qb.Select("*").From("picks_highlights").
		Where(qb.Eq("user_id", userID), qb.Eq("slate_date", slateDate)).
		OrderBy("rank").
		ToSQL()
	if err != nil {
		return pick.Bundle{}, fmt.Errorf("build get highlight picks query: %w", err)
	}
	var highlightRows []highlightPickTableModel
	if err := r.db.SelectContext(ctx, &highlightRows, highlightQuery, highlightArgs...); err != nil {
		return pick.Bundle{}, fmt.Errorf("select highlight picks for bundle: %w", err)
	}
	for _, row := range highlightRows {
		bundle.Highlights = append(bundle.Highlights, highlightPickFromRow(row))
	}

	return bundle, nil
}

func (r *PickRepository) ReplaceTeamPicks(ctx context.Context, userID, slateDate string, picks []pick.Team) error {
	return r.replace(ctx, "picks_teams", userID, slateDate, func(tx *sqlx.Tx) error {
		for _, item := range picks {
			query, args, err := qb.InsertModel("picks_teams", teamPickToRow(item), "")
			if err != nil {
				return fmt.Errorf("build insert team pick query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert team pick: %w", err)
			}
		}
		return nil
	})
}

func (r *PickRepository) ReplacePlayerPicks(ctx context.Context, userID, slateDate string, picks []pick.Player) error {
	return r.replace(ctx, "picks_players", userID, slateDate, func(tx *sqlx.Tx) error {
		for _, item := range picks {
			query, args, err := qb.InsertModel("picks_players", playerPickToRow(item), "")
			if err != nil {
				return fmt.Errorf("build insert player pick query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert player pick: %w", err)
			}
		}
		return nil
	})
}

func (r *PickRepository) ReplaceHighlightPicks(ctx context.Context, userID, slateDate string, picks []pick.Highlight) error {
	return r.replace(ctx, "picks_highlights", userID, slateDate, func(tx *sqlx.Tx) error {
		for _, item := range picks {
			query, args, err := qb.InsertModel("picks_highlights", highlightPickToRow(item), "")
			if err != nil {
				return fmt.Errorf("build insert highlight pick query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert highlight pick: %w", err)
			}
		}
		return nil
	})
}

// replace deletes the (user, slate) rows and inserts the new set inside one
// transaction so a failed save never leaves a partial sheet.
func (r *PickRepository) replace(ctx context.Context, table, userID, slateDate string, insert func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", table, err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery, deleteArgs, err := qb.DeleteFrom(table).
		Where(qb.Eq("user_id", userID), qb.Eq("slate_date", slateDate)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete %s query: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}

	if err := insert(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace %s: %w", table, err)
	}
	return nil
}
