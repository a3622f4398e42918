package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nbanima/pickslate/internal/domain/game"
	"github.com/nbanima/pickslate/internal/domain/pick"
	"github.com/nbanima/pickslate/internal/domain/result"
	"github.com/nbanima/pickslate/internal/domain/settlement"
	"github.com/nbanima/pickslate/internal/domain/slate"
	"github.com/nbanima/pickslate/internal/platform/logging"
)

type TeamResultInput struct {
	GameID       string
	WinnerTeamID string
}

type PlayerResultsInput struct {
	GameID   string
	Category string
	Players  []PlayerRefInput
}

type HighlightResultInput struct {
	Player PlayerRefInput
	Rank   int
}

// Winners is the resolved result sheet for a slate.
type Winners struct {
	SlateDate  string
	Teams      []result.Team
	Players    []result.Player
	Highlights []result.Highlight
}

// ResultsService owns operator result entry. Every write resettles the
// slate so the ledger and balances track the corrected results.
type ResultsService struct {
	resultRepo result.Repository
	gameRepo   game.Repository
	settlement *SettlementService
	logger     *logging.Logger
	now        func() time.Time
}

func NewResultsService(
	resultRepo result.Repository,
	gameRepo game.Repository,
	settlementService *SettlementService,
	logger *logging.Logger,
) *ResultsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultsService{
		resultRepo: resultRepo,
		gameRepo:   gameRepo,
		settlement: settlementService,
		logger:     logger,
		now:        time.Now,
	}
}

// SaveTeamResult records a game's winner and resettles the slate.
func (s *ResultsService) SaveTeamResult(ctx context.Context, slateDate string, input TeamResultInput) (settlement.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsService.SaveTeamResult")
	defer span.End()

	if err := slate.Validate(slateDate); err != nil {
		return settlement.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.GameID == "" || input.WinnerTeamID == "" {
		return settlement.Result{}, fmt.Errorf("%w: team results need game id and winner team id", ErrInvalidInput)
	}

	item := result.Team{
		GameID:       input.GameID,
		WinnerTeamID: input.WinnerTeamID,
		SettledAt:    s.now().UTC(),
	}
	if err := s.resultRepo.UpsertTeamResult(ctx, item); err != nil {
		return settlement.Result{}, fmt.Errorf("upsert team result: %w", err)
	}

	return s.resettle(ctx, slateDate)
}

// SavePlayerResults replaces the winner rows for one (game, category) and
// resettles the slate. Multiple rows mean a statistical tie.
func (s *ResultsService) SavePlayerResults(ctx context.Context, slateDate string, input PlayerResultsInput) (settlement.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsService.SavePlayerResults")
	defer span.End()

	if err := slate.Validate(slateDate); err != nil {
		return settlement.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.GameID == "" {
		return settlement.Result{}, fmt.Errorf("%w: player results need a game id", ErrInvalidInput)
	}
	if !pick.IsValidCategory(input.Category) {
		return settlement.Result{}, fmt.Errorf("%w: unknown result category %q", ErrInvalidInput, input.Category)
	}

	now := s.now().UTC()
	items := make([]result.Player, 0, len(input.Players))
	for _, ref := range input.Players {
		if ref.PlayerID == "" && ref.DisplayName == "" {
			return settlement.Result{}, fmt.Errorf("%w: player results need a player reference", ErrInvalidInput)
		}
		items = append(items, result.Player{
			GameID:    input.GameID,
			Category:  pick.Category(input.Category),
			Player:    ref.toReference(),
			SettledAt: now,
		})
	}

	if err := s.resultRepo.ReplacePlayerResults(ctx, input.GameID, input.Category, items); err != nil {
		return settlement.Result{}, fmt.Errorf("replace player results: %w", err)
	}

	return s.resettle(ctx, slateDate)
}

// SaveHighlightResults replaces the slate's highlight ranking and resettles.
func (s *ResultsService) SaveHighlightResults(ctx context.Context, slateDate string, inputs []HighlightResultInput) (settlement.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsService.SaveHighlightResults")
	defer span.End()

	if err := slate.Validate(slateDate); err != nil {
		return settlement.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	items := make([]result.Highlight, 0, len(inputs))
	for _, input := range inputs {
		if input.Rank < pick.HighlightRankMin || input.Rank > pick.HighlightRankMax {
			return settlement.Result{}, fmt.Errorf("%w: highlight rank %d out of range", ErrInvalidInput, input.Rank)
		}
		if input.Player.PlayerID == "" && input.Player.DisplayName == "" {
			return settlement.Result{}, fmt.Errorf("%w: highlight results need a player reference", ErrInvalidInput)
		}
		items = append(items, result.Highlight{
			SlateDate: slateDate,
			Player:    input.Player.toReference(),
			Rank:      input.Rank,
			SettledAt: now,
		})
	}

	if err := s.resultRepo.ReplaceHighlightResults(ctx, slateDate, items); err != nil {
		return settlement.Result{}, fmt.Errorf("replace highlight results: %w", err)
	}

	return s.resettle(ctx, slateDate)
}

// GetWinners returns the declared winners for a slate, resolved through the
// slate's game window.
func (s *ResultsService) GetWinners(ctx context.Context, slateDate string) (Winners, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsService.GetWinners")
	defer span.End()

	if err := slate.Validate(slateDate); err != nil {
		return Winners{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	startUTC, endUTC, err := slate.Bounds(slateDate)
	if err != nil {
		return Winners{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	games, err := s.gameRepo.ListByWindow(ctx, startUTC, endUTC)
	if err != nil {
		return Winners{}, fmt.Errorf("list games for winners: %w", err)
	}

	out := Winners{SlateDate: slateDate}
	if len(games) > 0 {
		gameIDs := make([]string, 0, len(games))
		for _, item := range games {
			gameIDs = append(gameIDs, item.ID)
		}

		out.Teams, err = s.resultRepo.ListTeamResultsByGames(ctx, gameIDs)
		if err != nil {
			return Winners{}, fmt.Errorf("list team winners: %w", err)
		}
		out.Players, err = s.resultRepo.ListPlayerResultsByGames(ctx, gameIDs)
		if err != nil {
			return Winners{}, fmt.Errorf("list player winners: %w", err)
		}
	}

	out.Highlights, err = s.resultRepo.ListHighlightResultsBySlate(ctx, slateDate)
	if err != nil {
		return Winners{}, fmt.Errorf("list highlight winners: %w", err)
	}
	return out, nil
}

func (s *ResultsService) resettle(ctx context.Context, slateDate string) (settlement.Result, error) {
	out, err := s.settlement.Settle(ctx, slateDate)
	if err != nil {
		return settlement.Result{}, fmt.Errorf("resettle slate %s after result change: %w", slateDate, err)
	}
	return out, nil
}
