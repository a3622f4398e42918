package balldontlie

import (
	"fmt"
	"strings"
	"time"
)

// listMeta carries balldontlie's cursor pagination block. NextCursor is nil
// on the final page.
type listMeta struct {
	NextCursor *int64 `json:"next_cursor"`
	PerPage    int    `json:"per_page"`
}

type teamRow struct {
	ID           int64  `json:"id"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	City         string `json:"city"`
	Name         string `json:"name"`
	FullName     string `json:"full_name"`
	Abbreviation string `json:"abbreviation"`
}

type teamsEnvelope struct {
	Data []teamRow `json:"data"`
	Meta listMeta  `json:"meta"`
}

type playerRow struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Position  string  `json:"position"`
	Team      teamRow `json:"team"`
}

type playersEnvelope struct {
	Data []playerRow `json:"data"`
	Meta listMeta    `json:"meta"`
}

type gameRow struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Datetime    string  `json:"datetime"`
	Season      int     `json:"season"`
	Status      string  `json:"status"`
	Postseason  bool    `json:"postseason"`
	HomeTeam    teamRow `json:"home_team"`
	VisitorTeam teamRow `json:"visitor_team"`
}

type gamesEnvelope struct {
	Data []gameRow `json:"data"`
	Meta listMeta  `json:"meta"`
}

// parseGameStart picks the best start time the row offers. The datetime field
// holds the real tipoff when the provider knows it; otherwise only the game
// date is available and the row collapses to midnight UTC.
func parseGameStart(row gameRow) (time.Time, error) {
	if raw := strings.TrimSpace(row.Datetime); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse datetime %q: %w", raw, err)
		}
		return parsed.UTC(), nil
	}

	raw := strings.TrimSpace(row.Date)
	if raw == "" {
		return time.Time{}, fmt.Errorf("game row has neither datetime nor date")
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return parsed.UTC(), nil
}
