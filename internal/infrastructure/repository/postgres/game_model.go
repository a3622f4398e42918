package postgres

import (
	"time"

	"github.com/nbanima/pickslate/internal/domain/game"
)

type gameTableModel struct {
	ID             string    `db:"id"`
	Provider       string    `db:"provider"`
	ProviderGameID string    `db:"provider_game_id"`
	Season         string    `db:"season"`
	Status         string    `db:"status"`
	StartsAt       time.Time `db:"starts_at"`
	HomeTeamID     string    `db:"home_team_id"`
	AwayTeamID     string    `db:"away_team_id"`
	HomeTeamAbbr   string    `db:"home_team_abbr"`
	AwayTeamAbbr   string    `db:"away_team_abbr"`
}

func gameFromRow(row gameTableModel) game.Game {
	return game.Game{
		ID:             row.ID,
		Provider:       row.Provider,
		ProviderGameID: row.ProviderGameID,
		Season:         row.Season,
		Status:         row.Status,
		StartsAt:       row.StartsAt.UTC(),
		HomeTeamID:     row.HomeTeamID,
		AwayTeamID:     row.AwayTeamID,
		HomeTeamAbbr:   row.HomeTeamAbbr,
		AwayTeamAbbr:   row.AwayTeamAbbr,
	}
}

func gameToRow(item game.Game) gameTableModel {
	return gameTableModel{
		ID:             item.ID,
		Provider:       item.Provider,
		ProviderGameID: item.ProviderGameID,
		Season:         item.Season,
		Status:         item.Status,
		StartsAt:       item.StartsAt.UTC(),
		HomeTeamID:     item.HomeTeamID,
		AwayTeamID:     item.AwayTeamID,
		HomeTeamAbbr:   item.HomeTeamAbbr,
		AwayTeamAbbr:   item.AwayTeamAbbr,
	}
}
