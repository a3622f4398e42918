package postgres

import (
	"time"

	"github.com/nbanima/pickslate/internal/domain/identity"
	"github.com/nbanima/pickslate/internal/domain/pick"
)

type teamPickTableModel struct {
	UserID         string    `db:"user_id"`
	SlateDate      string    `db:"slate_date"`
	GameID         string    `db:"game_id"`
	SelectedTeamID string    `db:"selected_team_id"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func teamPickFromRow(row teamPickTableModel) pick.Team {
	return pick.Team{
		UserID:         row.UserID,
		SlateDate:      row.SlateDate,
		GameID:         row.GameID,
		SelectedTeamID: row.SelectedTeamID,
		UpdatedAt:      row.UpdatedAt,
	}
}

func teamPickToRow(item pick.Team) teamPickTableModel {
	return teamPickTableModel{
		UserID:         item.UserID,
		SlateDate:      item.SlateDate,
		GameID:         item.GameID,
		SelectedTeamID: item.SelectedTeamID,
		UpdatedAt:      item.UpdatedAt,
	}
}

type playerPickTableModel struct {
	UserID            string    `db:"user_id"`
	SlateDate         string    `db:"slate_date"`
	GameID            string    `db:"game_id"`
	Category          string    `db:"category"`
	PlayerID          string    `db:"player_id"`
	PlayerProviderID  string    `db:"player_provider_id"`
	PlayerDisplayName string    `db:"player_display_name"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func playerPickFromRow(row playerPickTableModel) pick.Player {
	return pick.Player{
		UserID:    row.UserID,
		SlateDate: row.SlateDate,
		GameID:    row.GameID,
		Category:  pick.Category(row.Category),
		Player: identity.PlayerReference{
			RawID:       row.PlayerID,
			ProviderID:  row.PlayerProviderID,
			DisplayName: row.PlayerDisplayName,
		},
		UpdatedAt: row.UpdatedAt,
	}
}

func playerPickToRow(item pick.Player) playerPickTableModel {
	return playerPickTableModel{
		UserID:            item.UserID,
		SlateDate:         item.SlateDate,
		GameID:            item.GameID,
		Category:          string(item.Category),
		PlayerID:          item.Player.RawID,
		PlayerProviderID:  item.Player.ProviderID,
		PlayerDisplayName: item.Player.DisplayName,
		UpdatedAt:         item.UpdatedAt,
	}
}

type highlightPickTableModel struct {
	UserID            string    `db:"user_id"`
	SlateDate         string    `db:"slate_date"`
	PlayerID          string    `db:"player_id"`
	PlayerProviderID  string    `db:"player_provider_id"`
	PlayerDisplayName string    `db:"player_display_name"`
	Rank              int       `db:"rank"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func highlightPickFromRow(row highlightPickTableModel) pick.Highlight {
	return pick.Highlight{
		UserID:    row.UserID,
		SlateDate: row.SlateDate,
		Player: identity.PlayerReference{
			RawID:       row.PlayerID,
			ProviderID:  row.PlayerProviderID,
			DisplayName: row.PlayerDisplayName,
		},
		Rank:      row.Rank,
		UpdatedAt: row.UpdatedAt,
	}
}

func highlightPickToRow(item pick.Highlight) highlightPickTableModel {
	return highlightPickTableModel{
		UserID:            item.UserID,
		SlateDate:         item.SlateDate,
		PlayerID:          item.Player.RawID,
		PlayerProviderID:  item.Player.ProviderID,
		PlayerDisplayName: item.Player.DisplayName,
		Rank:              item.Rank,
		UpdatedAt:         item.UpdatedAt,
	}
}
