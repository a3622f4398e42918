package usecase

import (
	"testing"
	"time"

	"github.com/nbanima/pickslate/internal/domain/identity"
	"github.com/nbanima/pickslate/internal/domain/ledger"
	"github.com/nbanima/pickslate/internal/domain/pick"
	"github.com/nbanima/pickslate/internal/domain/result"
	"github.com/nbanima/pickslate/internal/domain/user"
	"github.com/nbanima/pickslate/internal/infrastructure/repository/memory"
)

const settleSlate = "2024-01-15"

type settlementFixture struct {
	svc        *SettlementService
	pickRepo   *memory.PickRepository
	resultRepo *memory.ResultRepository
	ledgerRepo *memory.LedgerRepository
	userRepo   *memory.UserRepository
}

func newSettlementFixture(t *testing.T) *settlementFixture {
	t.Helper()

	userRepo := memory.NewUserRepository([]user.User{
		{ID: "u1", Email: "one@test.dev", Role: "member", PointsBalance: 100},
		{ID: "u2", Email: "two@test.dev", Role: "member", PointsBalance: 40},
	})
	pickRepo := memory.NewPickRepository()
	resultRepo := memory.NewResultRepository()
	ledgerRepo := memory.NewLedgerRepository()
	settlementRepo := memory.NewSettlementRepository(userRepo, ledgerRepo)

	svc := NewSettlementService(pickRepo, resultRepo, ledgerRepo, userRepo, settlementRepo, nil)
	svc.now = func() time.Time { return time.Date(2024, 1, 16, 6, 0, 0, 0, time.UTC) }

	return &settlementFixture{
		svc:        svc,
		pickRepo:   pickRepo,
		resultRepo: resultRepo,
		ledgerRepo: ledgerRepo,
		userRepo:   userRepo,
	}
}

func brunson() identity.PlayerReference {
	return identity.PlayerReference{RawID: "local:player:brunson", DisplayName: "Jalen Brunson"}
}

func tatum() identity.PlayerReference {
	return identity.PlayerReference{RawID: "local:player:tatum", DisplayName: "Jayson Tatum"}
}

func (f *settlementFixture) seedPicks(t *testing.T) {
	t.Helper()
	ctx := t.Context()

	err := f.pickRepo.ReplaceTeamPicks(ctx, "u1", settleSlate, []pick.Team{
		{UserID: "u1", SlateDate: settleSlate, GameID: "g1", SelectedTeamID: "NYK"},
	})
	if err != nil {
		t.Fatalf("seed u1 team picks: %v", err)
	}
	err = f.pickRepo.ReplacePlayerPicks(ctx, "u1", settleSlate, []pick.Player{
		{UserID: "u1", SlateDate: settleSlate, GameID: "g1", Category: pick.CategoryTopScorer, Player: brunson()},
	})
	if err != nil {
		t.Fatalf("seed u1 player picks: %v", err)
	}
	err = f.pickRepo.ReplaceTeamPicks(ctx, "u2", settleSlate, []pick.Team{
		{UserID: "u2", SlateDate: settleSlate, GameID: "g1", SelectedTeamID: "BOS"},
	})
	if err != nil {
		t.Fatalf("seed u2 team picks: %v", err)
	}
}

func (f *settlementFixture) seedResults(t *testing.T, winner string, topScorer identity.PlayerReference) {
	t.Helper()
	ctx := t.Context()

	if err := f.resultRepo.UpsertTeamResult(ctx, result.Team{GameID: "g1", WinnerTeamID: winner}); err != nil {
		t.Fatalf("seed team result: %v", err)
	}
	err := f.resultRepo.ReplacePlayerResults(ctx, "g1", string(pick.CategoryTopScorer), []result.Player{
		{GameID: "g1", Category: pick.CategoryTopScorer, Player: topScorer},
	})
	if err != nil {
		t.Fatalf("seed player results: %v", err)
	}
}

func (f *settlementFixture) balance(t *testing.T, userID string) int {
	t.Helper()

	stored, found, err := f.userRepo.Get(t.Context(), userID)
	if err != nil || !found {
		t.Fatalf("load user %s: found=%v err=%v", userID, found, err)
	}
	return stored.PointsBalance
}

func (f *settlementFixture) ledgerRows(t *testing.T) []ledger.Entry {
	t.Helper()

	rows, err := f.ledgerRepo.ListByReason(t.Context(), ledger.SettlementReason(settleSlate))
	if err != nil {
		t.Fatalf("list ledger rows: %v", err)
	}
	return rows
}

func TestSettlementService_Settle_FirstRun(t *testing.T) {
	f := newSettlementFixture(t)
	f.seedPicks(t)
	f.seedResults(t, "NYK", brunson())

	out, err := f.svc.Settle(t.Context(), settleSlate)
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	if out.Date != settleSlate {
		t.Fatalf("unexpected date: %s", out.Date)
	}
	if out.Processed != 1 {
		t.Fatalf("expected 1 ledger row written, got %d", out.Processed)
	}

	u1, ok := out.Settlements["u1"]
	if !ok {
		t.Fatal("u1 missing from settlements")
	}
	if u1.Delta != 80 || u1.BasePoints != 80 || u1.Multiplier != 1 {
		t.Fatalf("unexpected u1 outcome: %+v", u1)
	}
	if u1.Hits.Teams != 1 || u1.Hits.Players != 1 || u1.Hits.Total != 2 {
		t.Fatalf("unexpected u1 hits: %+v", u1.Hits)
	}

	u2, ok := out.Settlements["u2"]
	if !ok {
		t.Fatal("u2 missing from settlements")
	}
	if u2.Delta != 0 {
		t.Fatalf("expected zero delta for u2, got %d", u2.Delta)
	}

	if got := f.balance(t, "u1"); got != 180 {
		t.Fatalf("unexpected u1 balance: %d", got)
	}
	if got := f.balance(t, "u2"); got != 40 {
		t.Fatalf("unexpected u2 balance: %d", got)
	}

	rows := f.ledgerRows(t)
	if len(rows) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(rows))
	}
	if rows[0].UserID != "u1" || rows[0].Delta != 80 || rows[0].BalanceAfter != 180 {
		t.Fatalf("unexpected ledger row: %+v", rows[0])
	}
}

func TestSettlementService_Settle_RerunIsIdempotent(t *testing.T) {
	f := newSettlementFixture(t)
	f.seedPicks(t)
	f.seedResults(t, "NYK", brunson())

	for i := 0; i < 3; i++ {
		if _, err := f.svc.Settle(t.Context(), settleSlate); err != nil {
			t.Fatalf("settle run %d failed: %v", i+1, err)
		}
	}

	if got := f.balance(t, "u1"); got != 180 {
		t.Fatalf("balance drifted across reruns: %d", got)
	}
	if rows := f.ledgerRows(t); len(rows) != 1 {
		t.Fatalf("ledger rows duplicated across reruns: %d", len(rows))
	}
}

func TestSettlementService_Settle_ResultCorrectionConverges(t *testing.T) {
	f := newSettlementFixture(t)
	f.seedPicks(t)
	f.seedResults(t, "NYK", brunson())

	if _, err := f.svc.Settle(t.Context(), settleSlate); err != nil {
		t.Fatalf("first settle failed: %v", err)
	}

	// Operator flips the game to BOS and names a different top scorer; the
	// rerun must land on the balances a single correct run would produce.
	f.seedResults(t, "BOS", tatum())

	out, err := f.svc.Settle(t.Context(), settleSlate)
	if err != nil {
		t.Fatalf("corrective settle failed: %v", err)
	}

	if got := out.Settlements["u1"].Delta; got != 0 {
		t.Fatalf("expected u1 delta 0 after correction, got %d", got)
	}
	if got := out.Settlements["u2"].Delta; got != 30 {
		t.Fatalf("expected u2 delta 30 after correction, got %d", got)
	}

	if got := f.balance(t, "u1"); got != 100 {
		t.Fatalf("u1 balance not restored: %d", got)
	}
	if got := f.balance(t, "u2"); got != 70 {
		t.Fatalf("u2 balance not corrected: %d", got)
	}

	rows := f.ledgerRows(t)
	if len(rows) != 1 {
		t.Fatalf("expected 1 ledger row after correction, got %d", len(rows))
	}
	if rows[0].UserID != "u2" || rows[0].Delta != 30 || rows[0].BalanceAfter != 70 {
		t.Fatalf("unexpected corrected ledger row: %+v", rows[0])
	}
}

func TestSettlementService_Settle_ZeroDeltaLeavesNoLedgerRow(t *testing.T) {
	f := newSettlementFixture(t)
	f.seedPicks(t)
	// No results at all: everyone scores zero.

	out, err := f.svc.Settle(t.Context(), settleSlate)
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	if out.Processed != 0 {
		t.Fatalf("expected no ledger rows, got %d", out.Processed)
	}
	if len(out.Settlements) != 2 {
		t.Fatalf("expected both users reported, got %d", len(out.Settlements))
	}
	if rows := f.ledgerRows(t); len(rows) != 0 {
		t.Fatalf("unexpected ledger rows: %d", len(rows))
	}
	if got := f.balance(t, "u1"); got != 100 {
		t.Fatalf("u1 balance moved without a delta: %d", got)
	}
}

func TestSettlementService_Settle_UnknownUserIsReportedButNotPaid(t *testing.T) {
	f := newSettlementFixture(t)
	f.seedResults(t, "NYK", brunson())

	err := f.pickRepo.ReplaceTeamPicks(t.Context(), "ghost", settleSlate, []pick.Team{
		{UserID: "ghost", SlateDate: settleSlate, GameID: "g1", SelectedTeamID: "NYK"},
	})
	if err != nil {
		t.Fatalf("seed ghost picks: %v", err)
	}

	out, settleErr := f.svc.Settle(t.Context(), settleSlate)
	if settleErr != nil {
		t.Fatalf("settle failed: %v", settleErr)
	}

	ghost, ok := out.Settlements["ghost"]
	if !ok {
		t.Fatal("ghost outcome missing")
	}
	if ghost.Delta != 30 {
		t.Fatalf("unexpected ghost delta: %d", ghost.Delta)
	}
	if rows := f.ledgerRows(t); len(rows) != 0 {
		t.Fatalf("ledger row written for unknown user: %d", len(rows))
	}
}

func TestSettlementService_Settle_RejectsBadDate(t *testing.T) {
	f := newSettlementFixture(t)

	if _, err := f.svc.Settle(t.Context(), "01/15/2024"); err == nil {
		t.Fatal("expected error for malformed slate date")
	}
}
