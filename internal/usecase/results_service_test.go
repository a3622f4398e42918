package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/nbanima/pickslate/internal/domain/game"
	"github.com/nbanima/pickslate/internal/infrastructure/repository/memory"
)

func newResultsFixture(t *testing.T) (*ResultsService, *settlementFixture) {
	t.Helper()

	f := newSettlementFixture(t)
	gameRepo := memory.NewGameRepository([]game.Game{{
		ID:             "g1",
		Provider:       "local",
		ProviderGameID: "g1",
		Status:         "final",
		StartsAt:       time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		HomeTeamAbbr:   "NYK",
		AwayTeamAbbr:   "BOS",
	}})

	svc := NewResultsService(f.resultRepo, gameRepo, f.svc, nil)
	svc.now = f.svc.now
	return svc, f
}

func TestResultsService_SaveTeamResult_Resettles(t *testing.T) {
	svc, f := newResultsFixture(t)
	f.seedPicks(t)

	out, err := svc.SaveTeamResult(t.Context(), settleSlate, TeamResultInput{
		GameID:       "g1",
		WinnerTeamID: "NYK",
	})
	if err != nil {
		t.Fatalf("save team result failed: %v", err)
	}

	if got := out.Settlements["u1"].Delta; got != 30 {
		t.Fatalf("expected u1 delta 30 after resettle, got %d", got)
	}
	if got := f.balance(t, "u1"); got != 130 {
		t.Fatalf("resettle did not move u1 balance: %d", got)
	}
}

func TestResultsService_SavePlayerResults_RejectsUnknownCategory(t *testing.T) {
	svc, _ := newResultsFixture(t)

	_, err := svc.SavePlayerResults(t.Context(), settleSlate, PlayerResultsInput{
		GameID:   "g1",
		Category: "top_block",
		Players:  []PlayerRefInput{{PlayerID: "local:player:brunson"}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestResultsService_SaveHighlightResults_Resettles(t *testing.T) {
	svc, f := newResultsFixture(t)

	err := f.pickRepo.ReplaceHighlightPicks(t.Context(), "u1", settleSlate, nil)
	if err != nil {
		t.Fatalf("seed empty highlight picks: %v", err)
	}
	f.seedPicks(t)

	out, saveErr := svc.SaveHighlightResults(t.Context(), settleSlate, []HighlightResultInput{
		{Player: PlayerRefInput{PlayerID: "local:player:brunson"}, Rank: 1},
	})
	if saveErr != nil {
		t.Fatalf("save highlight results failed: %v", saveErr)
	}
	if out.Date != settleSlate {
		t.Fatalf("unexpected settlement date: %s", out.Date)
	}
}

func TestResultsService_GetWinners(t *testing.T) {
	svc, f := newResultsFixture(t)
	f.seedResults(t, "NYK", brunson())

	winners, err := svc.GetWinners(t.Context(), settleSlate)
	if err != nil {
		t.Fatalf("get winners failed: %v", err)
	}
	if len(winners.Teams) != 1 || winners.Teams[0].WinnerTeamID != "NYK" {
		t.Fatalf("unexpected team winners: %+v", winners.Teams)
	}
	if len(winners.Players) != 1 {
		t.Fatalf("unexpected player winners: %+v", winners.Players)
	}
}
