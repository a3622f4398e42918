package result

import (
	"time"

	"github.com/nbanima/pickslate/internal/domain/identity"
	"github.com/nbanima/pickslate/internal/domain/pick"
)

// Team declares the winning team of a game. One row per game.
type Team struct {
	GameID       string
	WinnerTeamID string
	SettledAt    time.Time
}

// Player declares a category winner for a game. Zero or more rows per
// (game, category): statistical ties produce one row per tied player.
type Player struct {
	GameID    string
	Category  pick.Category
	Player    identity.PlayerReference
	SettledAt time.Time
}

// Highlight declares a ranked highlight winner for a slate.
type Highlight struct {
	SlateDate string
	Player    identity.PlayerReference
	Rank      int
	SettledAt time.Time
}
