package usecase

import (
	"context"
	"time"
)

// ProviderTeam is a franchise row from an external NBA data provider.
type ProviderTeam struct {
	ProviderTeamID string
	Abbr           string
	Name           string
}

// ProviderPlayer is a roster row from an external NBA data provider.
type ProviderPlayer struct {
	ProviderPlayerID string
	FirstName        string
	LastName         string
	TeamProviderID   string
}

// ProviderGame is a scheduled game row from an external NBA data provider.
// StartsAt may be the midnight-UTC sentinel when the feed only knows the
// calendar date.
type ProviderGame struct {
	ProviderGameID string
	Season         string
	Status         string
	StartsAt       time.Time
	HomeTeamAbbr   string
	AwayTeamAbbr   string
}

// SportsDataProvider is the ingestion boundary to an external NBA API.
type SportsDataProvider interface {
	ListTeams(ctx context.Context) ([]ProviderTeam, error)
	ListActivePlayers(ctx context.Context, teamProviderID string) ([]ProviderPlayer, error)
	ListGamesByDate(ctx context.Context, slateDate string) ([]ProviderGame, error)
}
