package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nbanima/pickslate/internal/domain/game"
	"github.com/nbanima/pickslate/internal/domain/slate"
)

// DefaultLockBufferMinutes is how long before the slate's first game picks
// stop being editable.
const DefaultLockBufferMinutes = 5

// LockWindowState is one-way per slate: once the window closes it never
// reopens, because the first game's start only moves into the past.
type LockWindowState string

const (
	LockWindowOpen   LockWindowState = "open"
	LockWindowLocked LockWindowState = "locked"
)

// LockWindowStatus describes the window for a slate. LocksAt is nil when no
// games are scheduled and the window stays open indefinitely.
type LockWindowStatus struct {
	SlateDate string
	State     LockWindowState
	LocksAt   *time.Time
}

// LockWindowService decides whether pick mutation is still permitted for a
// slate. Admin bypass is enforced by callers, not here.
type LockWindowService struct {
	gameRepo game.Repository
	buffer   time.Duration
	now      func() time.Time
}

func NewLockWindowService(gameRepo game.Repository, bufferMinutes int) *LockWindowService {
	if bufferMinutes <= 0 {
		bufferMinutes = DefaultLockBufferMinutes
	}
	return &LockWindowService{
		gameRepo: gameRepo,
		buffer:   time.Duration(bufferMinutes) * time.Minute,
		now:      time.Now,
	}
}

// Status computes the lock window for a slate from its scheduled games.
func (s *LockWindowService) Status(ctx context.Context, slateDate string) (LockWindowStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LockWindowService.Status")
	defer span.End()

	if err := slate.Validate(slateDate); err != nil {
		return LockWindowStatus{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	startUTC, endUTC, err := slate.Bounds(slateDate)
	if err != nil {
		return LockWindowStatus{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sentinel, err := slate.MidnightUTC(slateDate)
	if err != nil {
		return LockWindowStatus{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Date-only feed rows sit at midnight UTC, before the Eastern window
	// opens, so the query starts at the sentinel. Anything else earlier than
	// the window belongs to the previous slate and is dropped.
	queryStart := startUTC
	if sentinel.Before(queryStart) {
		queryStart = sentinel
	}
	fetched, err := s.gameRepo.ListByWindow(ctx, queryStart, endUTC)
	if err != nil {
		return LockWindowStatus{}, fmt.Errorf("list games for lock window: %w", err)
	}

	games := make([]game.Game, 0, len(fetched))
	for _, item := range fetched {
		if item.StartsAt.Before(startUTC) && !item.StartsAt.Equal(sentinel) {
			continue
		}
		games = append(games, item)
	}
	if len(games) == 0 {
		return LockWindowStatus{SlateDate: slateDate, State: LockWindowOpen}, nil
	}

	earliest, err := earliestEffectiveStart(slateDate, games)
	if err != nil {
		return LockWindowStatus{}, err
	}

	locksAt := earliest.Add(-s.buffer)
	state := LockWindowOpen
	if s.now().After(locksAt) {
		state = LockWindowLocked
	}
	return LockWindowStatus{SlateDate: slateDate, State: state, LocksAt: &locksAt}, nil
}

// EnsureOpen gates a pick mutation. Every pick write goes through this
// before touching the store.
func (s *LockWindowService) EnsureOpen(ctx context.Context, slateDate string) error {
	status, err := s.Status(ctx, slateDate)
	if err != nil {
		return err
	}
	if status.State == LockWindowLocked {
		return fmt.Errorf("%w: slate %s locked at %s", ErrLockWindowClosed, slateDate, status.LocksAt.UTC().Format(time.RFC3339))
	}
	return nil
}

func earliestEffectiveStart(slateDate string, games []game.Game) (time.Time, error) {
	sentinel, err := slate.MidnightUTC(slateDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var earliest time.Time
	for _, item := range games {
		if item.StartsAt.IsZero() {
			continue
		}

		effective := item.StartsAt
		if effective.Equal(sentinel) {
			// Date-only feed rows store midnight UTC. Taken literally that
			// would lock the slate the evening before; treat it as the last
			// Eastern minute of the day instead.
			endOfDay, eodErr := slate.EndOfDayEastern(slateDate)
			if eodErr != nil {
				return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, eodErr)
			}
			effective = endOfDay
		}

		if earliest.IsZero() || effective.Before(earliest) {
			earliest = effective
		}
	}

	if earliest.IsZero() {
		// Nothing usable to anchor on; keep the window open.
		far, farErr := slate.EndOfDayEastern(slateDate)
		if farErr != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, farErr)
		}
		return far, nil
	}
	return earliest, nil
}
