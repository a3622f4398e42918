package game

import "time"

// Game is one scheduled NBA game. StartsAt is the stored start instant in
// UTC; some provider feeds only know the calendar date and store the
// midnight-UTC sentinel, which the lock window treats specially.
type Game struct {
	ID             string
	Provider       string
	ProviderGameID string
	Season         string
	Status         string
	StartsAt       time.Time
	HomeTeamID     string
	AwayTeamID     string
	HomeTeamAbbr   string
	AwayTeamAbbr   string
}
