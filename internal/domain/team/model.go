package team

import "time"

// Team is one NBA franchise known to the contest.
type Team struct {
	ID             string
	Provider       string
	ProviderTeamID string
	Abbr           string
	Name           string
	UpdatedAt      time.Time
}
