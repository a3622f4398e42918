package scoring

import (
	"github.com/nbanima/pickslate/internal/domain/identity"
)

// ComputeDailyScore scores one user's picks against the slate's results.
// Pure: no I/O, no clock, no error conditions; empty inputs yield zeros.
func ComputeDailyScore(input Input) Score {
	teamHits := countTeamHits(input)
	playerHits := countPlayerHits(input)
	highlightHits, highlightPoints := countHighlightHits(input)

	basePoints := teamHits*TeamHitPoints + playerHits*PlayerHitPoints + highlightPoints
	totalHits := teamHits + playerHits + highlightHits
	multiplier := determineMultiplier(totalHits)

	return Score{
		BasePoints:  basePoints,
		TotalPoints: basePoints * multiplier,
		Multiplier:  multiplier,
		Hits: Hits{
			Teams:      teamHits,
			Players:    playerHits,
			Highlights: highlightHits,
			Total:      totalHits,
		},
	}
}

// Team winners match on exact ids: game and team ids come from the same
// internal games table on both sides.
func countTeamHits(input Input) int {
	winnerByGame := make(map[string]string, len(input.TeamResults))
	for _, item := range input.TeamResults {
		winnerByGame[item.GameID] = item.WinnerTeamID
	}

	hits := 0
	for _, item := range input.TeamPicks {
		if item.SelectedTeamID != "" && winnerByGame[item.GameID] == item.SelectedTeamID {
			hits++
		}
	}
	return hits
}

// Player winners match under identity resolution. The winner set per
// (game, category) is a union of identities, so duplicate result rows for
// the same real player collapse while genuine ties stay individually
// hittable.
func countPlayerHits(input Input) int {
	winnersByKey := make(map[string]identity.Set)
	for _, item := range input.PlayerResults {
		key := item.GameID + ":" + string(item.Category)
		set, ok := winnersByKey[key]
		if !ok {
			set = make(identity.Set)
			winnersByKey[key] = set
		}
		set.Add(identity.IdentitySet(item.Player))
	}

	hits := 0
	for _, item := range input.PlayerPicks {
		winners, ok := winnersByKey[item.GameID+":"+string(item.Category)]
		if !ok {
			continue
		}
		if identity.IdentitySet(item.Player).Intersects(winners) {
			hits++
		}
	}
	return hits
}

// Highlight winners map identities to rank points. When the same identity
// shows up at multiple ranks (re-ranked, or duplicated across providers)
// the maximum value wins, and a pick matching several of its own identities
// takes the best of those. Identities ranked past the points table still
// enter the map at zero: matching one is a hit that counts toward the
// multiplier even though it pays nothing.
func countHighlightHits(input Input) (int, int) {
	pointsByIdentity := make(map[string]int)
	for _, item := range input.HighlightResults {
		points := rankPoints(item.Rank)
		for key := range identity.IdentitySet(item.Player) {
			if existing, ok := pointsByIdentity[key]; !ok || points > existing {
				pointsByIdentity[key] = points
			}
		}
	}

	hits := 0
	total := 0
	for _, item := range input.HighlightPicks {
		best := -1
		for key := range identity.IdentitySet(item.Player) {
			if points, ok := pointsByIdentity[key]; ok && points > best {
				best = points
			}
		}
		if best >= 0 {
			hits++
			total += best
		}
	}
	return hits, total
}

func rankPoints(rank int) int {
	index := rank - 1
	if index < 0 || index >= len(HighlightRankPoints) {
		return 0
	}
	return HighlightRankPoints[index]
}

func determineMultiplier(totalHits int) int {
	for _, tier := range multiplierTiers {
		if totalHits >= tier.threshold {
			return tier.multiplier
		}
	}
	return 1
}
