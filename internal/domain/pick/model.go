package pick

import (
	"time"

	"github.com/nbanima/pickslate/internal/domain/identity"
)

// Category is a statistical player-pick category.
type Category string

const (
	CategoryTopScorer  Category = "top_scorer"
	CategoryTopAssist  Category = "top_assist"
	CategoryTopRebound Category = "top_rebound"
)

// IsValidCategory reports whether value names a known category.
func IsValidCategory(value string) bool {
	switch Category(value) {
	case CategoryTopScorer, CategoryTopAssist, CategoryTopRebound:
		return true
	}
	return false
}

// HighlightRankMin and HighlightRankMax bound highlight pick ranks.
const (
	HighlightRankMin = 1
	HighlightRankMax = 10
)

// Team is one user's winning-team pick for a game. Unique per
// (user, slate, game).
type Team struct {
	UserID         string
	SlateDate      string
	GameID         string
	SelectedTeamID string
	UpdatedAt      time.Time
}

// Player is one user's category pick for a game. Unique per
// (user, slate, game, category).
type Player struct {
	UserID    string
	SlateDate string
	GameID    string
	Category  Category
	Player    identity.PlayerReference
	UpdatedAt time.Time
}

// Highlight is one user's ranked highlight pick. Unique per
// (user, slate, rank).
type Highlight struct {
	UserID    string
	SlateDate string
	Player    identity.PlayerReference
	Rank      int
	UpdatedAt time.Time
}

// Bundle groups all of one user's picks for a slate.
type Bundle struct {
	Teams      []Team
	Players    []Player
	Highlights []Highlight
}
