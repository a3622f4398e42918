package postgres

import (
	"time"

	"github.com/nbanima/pickslate/internal/domain/identity"
	"github.com/nbanima/pickslate/internal/domain/pick"
	"github.com/nbanima/pickslate/internal/domain/result"
)

type teamResultTableModel struct {
	GameID       string    `db:"game_id"`
	WinnerTeamID string    `db:"winner_team_id"`
	SettledAt    time.Time `db:"settled_at"`
}

func teamResultFromRow(row teamResultTableModel) result.Team {
	return result.Team{
		GameID:       row.GameID,
		WinnerTeamID: row.WinnerTeamID,
		SettledAt:    row.SettledAt,
	}
}

type playerResultTableModel struct {
	ID                int64     `db:"id"`
	GameID            string    `db:"game_id"`
	Category          string    `db:"category"`
	PlayerID          string    `db:"player_id"`
	PlayerProviderID  string    `db:"player_provider_id"`
	PlayerDisplayName string    `db:"player_display_name"`
	SettledAt         time.Time `db:"settled_at"`
}

func playerResultFromRow(row playerResultTableModel) result.Player {
	return result.Player{
		GameID:   row.GameID,
		Category: pick.Category(row.Category),
		Player: identity.PlayerReference{
			RawID:       row.PlayerID,
			ProviderID:  row.PlayerProviderID,
			DisplayName: row.PlayerDisplayName,
		},
		SettledAt: row.SettledAt,
	}
}

type highlightResultTableModel struct {
	ID                int64     `db:"id"`
	SlateDate         string    `db:"slate_date"`
	PlayerID          string    `db:"player_id"`
	PlayerProviderID  string    `db:"player_provider_id"`
	PlayerDisplayName string    `db:"player_display_name"`
	Rank              int       `db:"rank"`
	SettledAt         time.Time `db:"settled_at"`
}

func highlightResultFromRow(row highlightResultTableModel) result.Highlight {
	return result.Highlight{
		SlateDate: row.SlateDate,
		Player: identity.PlayerReference{
			RawID:       row.PlayerID,
			ProviderID:  row.PlayerProviderID,
			DisplayName: row.PlayerDisplayName,
		},
		Rank:      row.Rank,
		SettledAt: row.SettledAt,
	}
}
