package postgres

import (
	"time"

	"github.com/nbanima/pickslate/internal/domain/team"
)

type teamTableModel struct {
	ID             string    `db:"id"`
	Provider       string    `db:"provider"`
	ProviderTeamID string    `db:"provider_team_id"`
	Abbr           string    `db:"abbr"`
	Name           string    `db:"name"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:             row.ID,
		Provider:       row.Provider,
		ProviderTeamID: row.ProviderTeamID,
		Abbr:           row.Abbr,
		Name:           row.Name,
		UpdatedAt:      row.UpdatedAt.UTC(),
	}
}

func teamToRow(item team.Team) teamTableModel {
	return teamTableModel{
		ID:             item.ID,
		Provider:       item.Provider,
		ProviderTeamID: item.ProviderTeamID,
		Abbr:           item.Abbr,
		Name:           item.Name,
		UpdatedAt:      item.UpdatedAt,
	}
}
