package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/nbanima/pickslate/internal/domain/game"
	"github.com/nbanima/pickslate/internal/infrastructure/repository/memory"
)

// 2024-01-15 is an EST date: the slate window is 05:00Z to 05:00Z the next
// day, and a 7pm Eastern tipoff is midnight UTC on the 16th.
const lockSlate = "2024-01-15"

func eveningGame(id string, startsAt time.Time) game.Game {
	return game.Game{
		ID:             id,
		Provider:       "local",
		ProviderGameID: id,
		Season:         "2023-24",
		Status:         "scheduled",
		StartsAt:       startsAt,
		HomeTeamAbbr:   "NYK",
		AwayTeamAbbr:   "BOS",
	}
}

func TestLockWindowService_Status_OpenThenLockedAroundBuffer(t *testing.T) {
	tipoff := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	gameRepo := memory.NewGameRepository([]game.Game{eveningGame("g1", tipoff)})
	svc := NewLockWindowService(gameRepo, DefaultLockBufferMinutes)

	wantLocksAt := time.Date(2024, 1, 15, 23, 55, 0, 0, time.UTC)

	svc.now = func() time.Time { return time.Date(2024, 1, 15, 23, 54, 0, 0, time.UTC) }
	status, err := svc.Status(t.Context(), lockSlate)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.State != LockWindowOpen {
		t.Fatalf("expected open one minute before the buffer, got %s", status.State)
	}
	if status.LocksAt == nil || !status.LocksAt.Equal(wantLocksAt) {
		t.Fatalf("unexpected locksAt: %v", status.LocksAt)
	}

	svc.now = func() time.Time { return time.Date(2024, 1, 15, 23, 56, 0, 0, time.UTC) }
	status, err = svc.Status(t.Context(), lockSlate)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.State != LockWindowLocked {
		t.Fatalf("expected locked one minute past the buffer, got %s", status.State)
	}
}

func TestLockWindowService_Status_EarliestGameAnchorsTheWindow(t *testing.T) {
	gameRepo := memory.NewGameRepository([]game.Game{
		eveningGame("late", time.Date(2024, 1, 16, 2, 30, 0, 0, time.UTC)),
		eveningGame("early", time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)),
	})
	svc := NewLockWindowService(gameRepo, DefaultLockBufferMinutes)
	svc.now = func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }

	status, err := svc.Status(t.Context(), lockSlate)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	want := time.Date(2024, 1, 15, 23, 55, 0, 0, time.UTC)
	if status.LocksAt == nil || !status.LocksAt.Equal(want) {
		t.Fatalf("expected earliest game to anchor locksAt, got %v", status.LocksAt)
	}
}

func TestLockWindowService_Status_MidnightSentinelMeansEndOfDay(t *testing.T) {
	// A date-only feed row stores midnight UTC, which is 7pm Eastern the
	// previous evening. Taken literally the slate would lock before it began.
	sentinel := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	gameRepo := memory.NewGameRepository([]game.Game{eveningGame("g1", sentinel)})
	svc := NewLockWindowService(gameRepo, DefaultLockBufferMinutes)
	svc.now = func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }

	status, err := svc.Status(t.Context(), lockSlate)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.State != LockWindowOpen {
		t.Fatalf("sentinel start locked the slate mid-day: %s", status.State)
	}

	// 23:59 Eastern is 04:59Z the next day; the buffer backs off to 04:54Z.
	want := time.Date(2024, 1, 16, 4, 54, 0, 0, time.UTC)
	if status.LocksAt == nil || !status.LocksAt.Equal(want) {
		t.Fatalf("unexpected sentinel locksAt: %v", status.LocksAt)
	}
}

func TestLockWindowService_Status_PreviousEveningGameIsIgnored(t *testing.T) {
	// 04:00Z on the 15th is 11pm Eastern on the 14th: previous slate.
	gameRepo := memory.NewGameRepository([]game.Game{
		eveningGame("prev", time.Date(2024, 1, 15, 4, 0, 0, 0, time.UTC)),
		eveningGame("tonight", time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)),
	})
	svc := NewLockWindowService(gameRepo, DefaultLockBufferMinutes)
	svc.now = func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }

	status, err := svc.Status(t.Context(), lockSlate)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	want := time.Date(2024, 1, 15, 23, 55, 0, 0, time.UTC)
	if status.LocksAt == nil || !status.LocksAt.Equal(want) {
		t.Fatalf("previous evening game leaked into the window: %v", status.LocksAt)
	}
}

func TestLockWindowService_Status_NoGamesStaysOpen(t *testing.T) {
	svc := NewLockWindowService(memory.NewGameRepository(nil), DefaultLockBufferMinutes)
	svc.now = func() time.Time { return time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC) }

	status, err := svc.Status(t.Context(), lockSlate)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.State != LockWindowOpen || status.LocksAt != nil {
		t.Fatalf("expected open without a lock time, got %+v", status)
	}
}

func TestLockWindowService_EnsureOpen_ReturnsTypedError(t *testing.T) {
	tipoff := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	gameRepo := memory.NewGameRepository([]game.Game{eveningGame("g1", tipoff)})
	svc := NewLockWindowService(gameRepo, DefaultLockBufferMinutes)
	svc.now = func() time.Time { return time.Date(2024, 1, 16, 1, 0, 0, 0, time.UTC) }

	err := svc.EnsureOpen(t.Context(), lockSlate)
	if !errors.Is(err, ErrLockWindowClosed) {
		t.Fatalf("expected ErrLockWindowClosed, got %v", err)
	}
}
