package postgres

import (
	"time"

	"github.com/nbanima/pickslate/internal/domain/player"
)

type playerTableModel struct {
	ID               string    `db:"id"`
	Provider         string    `db:"provider"`
	ProviderPlayerID string    `db:"provider_player_id"`
	FirstName        string    `db:"first_name"`
	LastName         string    `db:"last_name"`
	TeamID           string    `db:"team_id"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:               row.ID,
		Provider:         row.Provider,
		ProviderPlayerID: row.ProviderPlayerID,
		FirstName:        row.FirstName,
		LastName:         row.LastName,
		TeamID:           row.TeamID,
		UpdatedAt:        row.UpdatedAt.UTC(),
	}
}

func playerToRow(item player.Player) playerTableModel {
	return playerTableModel{
		ID:               item.ID,
		Provider:         item.Provider,
		ProviderPlayerID: item.ProviderPlayerID,
		FirstName:        item.FirstName,
		LastName:         item.LastName,
		TeamID:           item.TeamID,
		UpdatedAt:        item.UpdatedAt,
	}
}
