package scoring

import (
	"github.com/nbanima/pickslate/internal/domain/pick"
	"github.com/nbanima/pickslate/internal/domain/result"
)

const (
	TeamHitPoints   = 30
	PlayerHitPoints = 50
)

// HighlightRankPoints maps rank-1..rank-10 to their point values. Ranks past
// the table are worth nothing.
var HighlightRankPoints = [...]int{100, 90, 80, 70, 60, 50, 40, 30, 20, 10}

type multiplierTier struct {
	threshold  int
	multiplier int
}

// Evaluated top-down; first threshold the hit count reaches wins.
var multiplierTiers = []multiplierTier{
	{threshold: 10, multiplier: 3},
	{threshold: 5, multiplier: 2},
	{threshold: 0, multiplier: 1},
}

// Input carries one user's picks and the slate's declared results.
type Input struct {
	TeamPicks        []pick.Team
	TeamResults      []result.Team
	PlayerPicks      []pick.Player
	PlayerResults    []result.Player
	HighlightPicks   []pick.Highlight
	HighlightResults []result.Highlight
}

// Hits counts matched picks per kind.
type Hits struct {
	Teams      int
	Players    int
	Highlights int
	Total      int
}

// Score is the computed outcome for one user's slate.
type Score struct {
	BasePoints  int
	TotalPoints int
	Multiplier  int
	Hits        Hits
}
