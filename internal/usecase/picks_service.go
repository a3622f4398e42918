package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nbanima/pickslate/internal/domain/identity"
	"github.com/nbanima/pickslate/internal/domain/pick"
	"github.com/nbanima/pickslate/internal/domain/slate"
	"github.com/nbanima/pickslate/internal/platform/logging"
)

// PlayerRefInput names a player by whatever identifiers the caller has.
type PlayerRefInput struct {
	PlayerID    string
	ProviderID  string
	DisplayName string
}

func (in PlayerRefInput) toReference() identity.PlayerReference {
	return identity.PlayerReference{
		RawID:       in.PlayerID,
		ProviderID:  in.ProviderID,
		DisplayName: in.DisplayName,
	}
}

type TeamPickInput struct {
	GameID string
	TeamID string
}

type PlayerPickInput struct {
	GameID   string
	Category string
	Player   PlayerRefInput
}

type HighlightPickInput struct {
	Player PlayerRefInput
	Rank   int
}

// SavePicksInput is one user's complete pick sheet for a slate. Saving
// replaces whatever was stored before, per kind.
type SavePicksInput struct {
	UserID     string
	SlateDate  string
	Teams      []TeamPickInput
	Players    []PlayerPickInput
	Highlights []HighlightPickInput
}

// PicksService owns pick mutation and retrieval. Every mutation passes the
// lock window gate first; admins bypass via the BypassLockWindow flag set
// by the HTTP layer after its own role check.
type PicksService struct {
	pickRepo   pick.Repository
	lockWindow *LockWindowService
	logger     *logging.Logger
	now        func() time.Time
}

func NewPicksService(pickRepo pick.Repository, lockWindow *LockWindowService, logger *logging.Logger) *PicksService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PicksService{
		pickRepo:   pickRepo,
		lockWindow: lockWindow,
		logger:     logger,
		now:        time.Now,
	}
}

// SavePicks validates and stores a user's pick sheet. bypassLockWindow is
// reserved for privileged callers.
func (s *PicksService) SavePicks(ctx context.Context, input SavePicksInput, bypassLockWindow bool) (pick.Bundle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PicksService.SavePicks")
	defer span.End()

	if input.UserID == "" {
		return pick.Bundle{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if err := slate.Validate(input.SlateDate); err != nil {
		return pick.Bundle{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validatePickSheet(input); err != nil {
		return pick.Bundle{}, err
	}

	if !bypassLockWindow {
		if err := s.lockWindow.EnsureOpen(ctx, input.SlateDate); err != nil {
			return pick.Bundle{}, err
		}
	}

	now := s.now().UTC()
	bundle := buildBundle(input, now)

	if err := s.pickRepo.ReplaceTeamPicks(ctx, input.UserID, input.SlateDate, bundle.Teams); err != nil {
		return pick.Bundle{}, fmt.Errorf("replace team picks: %w", err)
	}
	if err := s.pickRepo.ReplacePlayerPicks(ctx, input.UserID, input.SlateDate, bundle.Players); err != nil {
		return pick.Bundle{}, fmt.Errorf("replace player picks: %w", err)
	}
	if err := s.pickRepo.ReplaceHighlightPicks(ctx, input.UserID, input.SlateDate, bundle.Highlights); err != nil {
		return pick.Bundle{}, fmt.Errorf("replace highlight picks: %w", err)
	}

	s.logger.InfoContext(ctx, "picks saved",
		"user_id", input.UserID,
		"slate_date", input.SlateDate,
		"teams", len(bundle.Teams),
		"players", len(bundle.Players),
		"highlights", len(bundle.Highlights),
	)
	return bundle, nil
}

// GetPicks returns one user's pick sheet for a slate.
func (s *PicksService) GetPicks(ctx context.Context, userID, slateDate string) (pick.Bundle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PicksService.GetPicks")
	defer span.End()

	if userID == "" {
		return pick.Bundle{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if err := slate.Validate(slateDate); err != nil {
		return pick.Bundle{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bundle, err := s.pickRepo.GetBundleByUserAndSlate(ctx, userID, slateDate)
	if err != nil {
		return pick.Bundle{}, fmt.Errorf("get picks: %w", err)
	}
	return bundle, nil
}

func validatePickSheet(input SavePicksInput) error {
	seenGames := make(map[string]struct{}, len(input.Teams))
	for _, item := range input.Teams {
		if item.GameID == "" || item.TeamID == "" {
			return fmt.Errorf("%w: team picks need game id and team id", ErrInvalidInput)
		}
		if _, dup := seenGames[item.GameID]; dup {
			return fmt.Errorf("%w: duplicate team pick for game %s", ErrInvalidInput, item.GameID)
		}
		seenGames[item.GameID] = struct{}{}
	}

	seenSlots := make(map[string]struct{}, len(input.Players))
	for _, item := range input.Players {
		if item.GameID == "" {
			return fmt.Errorf("%w: player picks need a game id", ErrInvalidInput)
		}
		if !pick.IsValidCategory(item.Category) {
			return fmt.Errorf("%w: unknown pick category %q", ErrInvalidInput, item.Category)
		}
		if item.Player.PlayerID == "" && item.Player.DisplayName == "" {
			return fmt.Errorf("%w: player picks need a player reference", ErrInvalidInput)
		}
		key := item.GameID + ":" + item.Category
		if _, dup := seenSlots[key]; dup {
			return fmt.Errorf("%w: duplicate player pick for game %s category %s", ErrInvalidInput, item.GameID, item.Category)
		}
		seenSlots[key] = struct{}{}
	}

	seenRanks := make(map[int]struct{}, len(input.Highlights))
	for _, item := range input.Highlights {
		if item.Rank < pick.HighlightRankMin || item.Rank > pick.HighlightRankMax {
			return fmt.Errorf("%w: highlight rank %d out of range", ErrInvalidInput, item.Rank)
		}
		if item.Player.PlayerID == "" && item.Player.DisplayName == "" {
			return fmt.Errorf("%w: highlight picks need a player reference", ErrInvalidInput)
		}
		if _, dup := seenRanks[item.Rank]; dup {
			return fmt.Errorf("%w: duplicate highlight rank %d", ErrInvalidInput, item.Rank)
		}
		seenRanks[item.Rank] = struct{}{}
	}

	return nil
}

func buildBundle(input SavePicksInput, now time.Time) pick.Bundle {
	bundle := pick.Bundle{
		Teams:      make([]pick.Team, 0, len(input.Teams)),
		Players:    make([]pick.Player, 0, len(input.Players)),
		Highlights: make([]pick.Highlight, 0, len(input.Highlights)),
	}

	for _, item := range input.Teams {
		bundle.Teams = append(bundle.Teams, pick.Team{
			UserID:         input.UserID,
			SlateDate:      input.SlateDate,
			GameID:         item.GameID,
			SelectedTeamID: item.TeamID,
			UpdatedAt:      now,
		})
	}
	for _, item := range input.Players {
		bundle.Players = append(bundle.Players, pick.Player{
			UserID:    input.UserID,
			SlateDate: input.SlateDate,
			GameID:    item.GameID,
			Category:  pick.Category(item.Category),
			Player:    item.Player.toReference(),
			UpdatedAt: now,
		})
	}
	for _, item := range input.Highlights {
		bundle.Highlights = append(bundle.Highlights, pick.Highlight{
			UserID:    input.UserID,
			SlateDate: input.SlateDate,
			Player:    item.Player.toReference(),
			Rank:      item.Rank,
			UpdatedAt: now,
		})
	}
	return bundle
}
