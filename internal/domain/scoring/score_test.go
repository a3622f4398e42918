package scoring

import (
	"testing"

	"github.com/nbanima/pickslate/internal/domain/identity"
	"github.com/nbanima/pickslate/internal/domain/pick"
	"github.com/nbanima/pickslate/internal/domain/result"
)

func playerRef(rawID, name string) identity.PlayerReference {
	return identity.PlayerReference{RawID: rawID, DisplayName: name}
}

func TestComputeDailyScoreEmptyInput(t *testing.T) {
	score := ComputeDailyScore(Input{})
	if score.BasePoints != 0 || score.TotalPoints != 0 || score.Hits.Total != 0 {
		t.Fatalf("expected zero score, got %+v", score)
	}
	if score.Multiplier != 1 {
		t.Fatalf("expected multiplier 1, got %d", score.Multiplier)
	}
}

func TestComputeDailyScoreTeamAndPlayerHit(t *testing.T) {
	// One correct team pick and one correct player pick, where the player
	// category was tied: 30 + 50 = 80 at x1.
	input := Input{
		TeamPicks:   []pick.Team{{GameID: "g1", SelectedTeamID: "teamA"}},
		TeamResults: []result.Team{{GameID: "g1", WinnerTeamID: "teamA"}},
		PlayerPicks: []pick.Player{
			{GameID: "g1", Category: pick.CategoryTopScorer, Player: playerRef("playerX", "Player X")},
		},
		PlayerResults: []result.Player{
			{GameID: "g1", Category: pick.CategoryTopScorer, Player: playerRef("playerX", "Player X")},
			{GameID: "g1", Category: pick.CategoryTopScorer, Player: playerRef("playerY", "Player Y")},
		},
	}

	score := ComputeDailyScore(input)
	if score.BasePoints != 80 {
		t.Fatalf("expected base 80, got %d", score.BasePoints)
	}
	if score.Hits.Total != 2 {
		t.Fatalf("expected 2 hits, got %d", score.Hits.Total)
	}
	if score.Multiplier != 1 || score.TotalPoints != 80 {
		t.Fatalf("expected total 80 at x1, got %d at x%d", score.TotalPoints, score.Multiplier)
	}
}

func TestComputeDailyScoreCrossProviderPlayerHit(t *testing.T) {
	input := Input{
		PlayerPicks: []pick.Player{
			{
				GameID:   "g1",
				Category: pick.CategoryTopScorer,
				Player:   identity.PlayerReference{RawID: "local-rosters:brunson", DisplayName: "Jalen Brunson"},
			},
		},
		PlayerResults: []result.Player{
			{
				GameID:   "g1",
				Category: pick.CategoryTopScorer,
				Player:   identity.PlayerReference{RawID: "balldontlie-123", DisplayName: "Jalen Brunson"},
			},
		},
	}

	score := ComputeDailyScore(input)
	if score.Hits.Players != 1 {
		t.Fatalf("expected cross-provider hit, got %+v", score.Hits)
	}
}

func TestComputeDailyScoreDuplicateWinnerRowsCountOnce(t *testing.T) {
	// Two result rows for the same real player under different providers:
	// the pick still yields exactly one hit.
	input := Input{
		PlayerPicks: []pick.Player{
			{GameID: "g1", Category: pick.CategoryTopRebound, Player: playerRef("p-1", "Nikola Jokic")},
		},
		PlayerResults: []result.Player{
			{GameID: "g1", Category: pick.CategoryTopRebound, Player: playerRef("p-1", "Nikola Jokic")},
			{GameID: "g1", Category: pick.CategoryTopRebound, Player: playerRef("bdl-999", "Nikola Jokic")},
		},
	}

	score := ComputeDailyScore(input)
	if score.Hits.Players != 1 {
		t.Fatalf("expected 1 player hit, got %d", score.Hits.Players)
	}
	if score.BasePoints != PlayerHitPoints {
		t.Fatalf("expected %d base points, got %d", PlayerHitPoints, score.BasePoints)
	}
}

func TestComputeDailyScoreTiedWinnersHitIndependently(t *testing.T) {
	results := []result.Player{
		{GameID: "g1", Category: pick.CategoryTopScorer, Player: playerRef("playerX", "Player X")},
		{GameID: "g1", Category: pick.CategoryTopScorer, Player: playerRef("playerY", "Player Y")},
	}

	for _, picked := range []string{"playerX", "playerY"} {
		score := ComputeDailyScore(Input{
			PlayerPicks: []pick.Player{
				{GameID: "g1", Category: pick.CategoryTopScorer, Player: playerRef(picked, "")},
			},
			PlayerResults: results,
		})
		if score.Hits.Players != 1 {
			t.Fatalf("expected pick %s to hit the tie, got %+v", picked, score.Hits)
		}
	}
}

func TestComputeDailyScoreHighlightRankPoints(t *testing.T) {
	tests := []struct {
		name       string
		rank       int
		wantPoints int
	}{
		{name: "rank one", rank: 1, wantPoints: 100},
		{name: "rank ten", rank: 10, wantPoints: 10},
		{name: "rank beyond table", rank: 11, wantPoints: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score := ComputeDailyScore(Input{
				HighlightPicks: []pick.Highlight{
					{Player: playerRef("h-1", "Ant Edwards"), Rank: 1},
				},
				HighlightResults: []result.Highlight{
					{Player: playerRef("h-1", "Ant Edwards"), Rank: tc.rank},
				},
			})
			if score.BasePoints != tc.wantPoints {
				t.Fatalf("expected %d points, got %d", tc.wantPoints, score.BasePoints)
			}
			// A match past the points table pays nothing but is still a hit.
			if score.Hits.Highlights != 1 {
				t.Fatalf("expected 1 highlight hit, got %d", score.Hits.Highlights)
			}
		})
	}
}

func TestComputeDailyScoreZeroPointHighlightHitCountsTowardMultiplier(t *testing.T) {
	// Four team hits plus a zero-point highlight hit (winner ranked past
	// the table) reach five total hits, so the x2 tier applies to the base.
	teamPicks := make([]pick.Team, 0, 4)
	teamResults := make([]result.Team, 0, 4)
	for _, gameID := range []string{"g1", "g2", "g3", "g4"} {
		teamPicks = append(teamPicks, pick.Team{GameID: gameID, SelectedTeamID: "t-" + gameID})
		teamResults = append(teamResults, result.Team{GameID: gameID, WinnerTeamID: "t-" + gameID})
	}

	score := ComputeDailyScore(Input{
		TeamPicks:   teamPicks,
		TeamResults: teamResults,
		HighlightPicks: []pick.Highlight{
			{Player: playerRef("h-1", "Ant Edwards"), Rank: 1},
		},
		HighlightResults: []result.Highlight{
			{Player: playerRef("h-1", "Ant Edwards"), Rank: 11},
		},
	})

	if score.Hits.Highlights != 1 || score.Hits.Total != 5 {
		t.Fatalf("expected 5 hits incl. zero-point highlight, got %+v", score.Hits)
	}
	if score.BasePoints != 120 {
		t.Fatalf("expected base 120, got %d", score.BasePoints)
	}
	if score.Multiplier != 2 || score.TotalPoints != 240 {
		t.Fatalf("expected total 240 at x2, got %d at x%d", score.TotalPoints, score.Multiplier)
	}
}

func TestComputeDailyScoreHighlightDuplicateRanksKeepMax(t *testing.T) {
	// Same identity appears at rank 3 and rank 1 (re-ranked across
	// providers): the pick scores the max value once.
	score := ComputeDailyScore(Input{
		HighlightPicks: []pick.Highlight{
			{Player: playerRef("h-1", "Ant Edwards"), Rank: 2},
		},
		HighlightResults: []result.Highlight{
			{Player: playerRef("h-1", ""), Rank: 3},
			{Player: playerRef("bdl-55", "Ant Edwards"), Rank: 1},
		},
	})
	if score.Hits.Highlights != 1 {
		t.Fatalf("expected 1 highlight hit, got %d", score.Hits.Highlights)
	}
	if score.BasePoints != 100 {
		t.Fatalf("expected max rank points 100, got %d", score.BasePoints)
	}
}

func TestDetermineMultiplierBoundaries(t *testing.T) {
	tests := []struct {
		totalHits int
		want      int
	}{
		{totalHits: 0, want: 1},
		{totalHits: 4, want: 1},
		{totalHits: 5, want: 2},
		{totalHits: 9, want: 2},
		{totalHits: 10, want: 3},
		{totalHits: 15, want: 3},
	}
	for _, tc := range tests {
		if got := determineMultiplier(tc.totalHits); got != tc.want {
			t.Fatalf("multiplier(%d) = %d, expected %d", tc.totalHits, got, tc.want)
		}
	}
}

func TestComputeDailyScoreMultiplierApplied(t *testing.T) {
	// Five team hits reach the x2 tier.
	picks := make([]pick.Team, 0, 5)
	results := make([]result.Team, 0, 5)
	for _, gameID := range []string{"g1", "g2", "g3", "g4", "g5"} {
		picks = append(picks, pick.Team{GameID: gameID, SelectedTeamID: "t-" + gameID})
		results = append(results, result.Team{GameID: gameID, WinnerTeamID: "t-" + gameID})
	}

	score := ComputeDailyScore(Input{TeamPicks: picks, TeamResults: results})
	if score.BasePoints != 150 {
		t.Fatalf("expected base 150, got %d", score.BasePoints)
	}
	if score.Multiplier != 2 || score.TotalPoints != 300 {
		t.Fatalf("expected total 300 at x2, got %d at x%d", score.TotalPoints, score.Multiplier)
	}
}
