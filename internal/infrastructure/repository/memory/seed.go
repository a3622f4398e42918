package memory

import (
	"time"

	"github.com/nbanima/pickslate/internal/domain/game"
	"github.com/nbanima/pickslate/internal/domain/player"
	"github.com/nbanima/pickslate/internal/domain/team"
	"github.com/nbanima/pickslate/internal/domain/user"
)

// Seed data backs the memory-mode server so the API is usable without a
// database or a provider key.

func SeedUsers() []user.User {
	return []user.User{
		{ID: "usr-demo-admin", Email: "admin@pickslate.dev", Role: user.RoleAdmin, PointsBalance: 0},
		{ID: "usr-demo-1", Email: "one@pickslate.dev", Role: "member", PointsBalance: 0},
		{ID: "usr-demo-2", Email: "two@pickslate.dev", Role: "member", PointsBalance: 0},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "local:team:nyk", Provider: "local", ProviderTeamID: "nyk", Abbr: "NYK", Name: "New York Knicks"},
		{ID: "local:team:bos", Provider: "local", ProviderTeamID: "bos", Abbr: "BOS", Name: "Boston Celtics"},
		{ID: "local:team:lal", Provider: "local", ProviderTeamID: "lal", Abbr: "LAL", Name: "Los Angeles Lakers"},
		{ID: "local:team:den", Provider: "local", ProviderTeamID: "den", Abbr: "DEN", Name: "Denver Nuggets"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "local:player:brunson", Provider: "local", ProviderPlayerID: "brunson", FirstName: "Jalen", LastName: "Brunson", TeamID: "local:team:nyk"},
		{ID: "local:player:tatum", Provider: "local", ProviderPlayerID: "tatum", FirstName: "Jayson", LastName: "Tatum", TeamID: "local:team:bos"},
		{ID: "local:player:james", Provider: "local", ProviderPlayerID: "james", FirstName: "LeBron", LastName: "James", TeamID: "local:team:lal"},
		{ID: "local:player:jokic", Provider: "local", ProviderPlayerID: "jokic", FirstName: "Nikola", LastName: "Jokic", TeamID: "local:team:den"},
	}
}

// SeedGames schedules two games on the given slate date, both at 7pm
// Eastern expressed in UTC.
func SeedGames(slateStartUTC time.Time) []game.Game {
	tipoff := slateStartUTC.Add(19 * time.Hour)
	return []game.Game{
		{
			ID:             "local:game:nyk-bos",
			Provider:       "local",
			ProviderGameID: "nyk-bos",
			Season:         "2025-26",
			Status:         "scheduled",
			StartsAt:       tipoff,
			HomeTeamID:     "local:team:nyk",
			AwayTeamID:     "local:team:bos",
			HomeTeamAbbr:   "NYK",
			AwayTeamAbbr:   "BOS",
		},
		{
			ID:             "local:game:lal-den",
			Provider:       "local",
			ProviderGameID: "lal-den",
			Season:         "2025-26",
			Status:         "scheduled",
			StartsAt:       tipoff.Add(30 * time.Minute),
			HomeTeamID:     "local:team:lal",
			AwayTeamID:     "local:team:den",
			HomeTeamAbbr:   "LAL",
			AwayTeamAbbr:   "DEN",
		},
	}
}
