package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/nbanima/pickslate/internal/domain/ledger"
	"github.com/nbanima/pickslate/internal/domain/pick"
	"github.com/nbanima/pickslate/internal/domain/result"
	"github.com/nbanima/pickslate/internal/domain/scoring"
	"github.com/nbanima/pickslate/internal/domain/settlement"
	"github.com/nbanima/pickslate/internal/domain/slate"
	"github.com/nbanima/pickslate/internal/domain/user"
	"github.com/nbanima/pickslate/internal/platform/logging"
	"github.com/nbanima/pickslate/internal/platform/resilience"
)

// SettlementService reconciles a slate's picks and results into the points
// ledger and user balances. Settle is safe to rerun: every run recomputes
// from source data and fully supersedes the slate's prior ledger entries.
type SettlementService struct {
	pickRepo       pick.Repository
	resultRepo     result.Repository
	ledgerRepo     ledger.Repository
	userRepo       user.Repository
	settlementRepo settlement.Repository
	logger         *logging.Logger
	now            func() time.Time

	// Two concurrent settles of one slate would both read the prior ledger
	// before either replaces it and the loser's subtraction would be lost,
	// so runs are single-flighted per slate date.
	settleFlight resilience.SingleFlight
}

func NewSettlementService(
	pickRepo pick.Repository,
	resultRepo result.Repository,
	ledgerRepo ledger.Repository,
	userRepo user.Repository,
	settlementRepo settlement.Repository,
	logger *logging.Logger,
) *SettlementService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SettlementService{
		pickRepo:       pickRepo,
		resultRepo:     resultRepo,
		ledgerRepo:     ledgerRepo,
		userRepo:       userRepo,
		settlementRepo: settlementRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// Settle recomputes every affected user's score for the slate and rewrites
// the ledger and balances to match.
func (s *SettlementService) Settle(ctx context.Context, slateDate string) (settlement.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.Settle")
	defer span.End()

	if err := slate.Validate(slateDate); err != nil {
		return settlement.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	value, err, shared := s.settleFlight.Do("settle:"+slateDate, func() (any, error) {
		return s.settleOnce(ctx, slateDate)
	})
	if err != nil {
		return settlement.Result{}, err
	}
	if shared {
		s.logger.InfoContext(ctx, "settlement run coalesced with in-flight run", "slate_date", slateDate)
	}
	out, ok := value.(settlement.Result)
	if !ok {
		return settlement.Result{}, fmt.Errorf("unexpected settlement result type %T", value)
	}
	return out, nil
}

type slateContext struct {
	teamPicks        []pick.Team
	playerPicks      []pick.Player
	highlightPicks   []pick.Highlight
	previousEntries  []ledger.Entry
	teamResults      []result.Team
	playerResults    []result.Player
	highlightResults []result.Highlight
}

func (s *SettlementService) settleOnce(ctx context.Context, slateDate string) (settlement.Result, error) {
	reason := ledger.SettlementReason(slateDate)

	loaded, err := s.loadSlateContext(ctx, slateDate, reason)
	if err != nil {
		return settlement.Result{}, err
	}

	previousDelta := make(map[string]int)
	for _, entry := range loaded.previousEntries {
		previousDelta[entry.UserID] += entry.Delta
	}

	userIDs := affectedUserIDs(loaded)
	if len(userIDs) == 0 {
		s.logger.InfoContext(ctx, "nothing to settle", "slate_date", slateDate)
		return settlement.Result{Date: slateDate, Settlements: map[string]settlement.UserOutcome{}}, nil
	}

	users, err := s.userRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return settlement.Result{}, fmt.Errorf("load users for settlement: %w", err)
	}
	userByID := make(map[string]user.User, len(users))
	for _, item := range users {
		userByID[item.ID] = item
	}

	teamPicksByUser := groupBy(loaded.teamPicks, func(p pick.Team) string { return p.UserID })
	playerPicksByUser := groupBy(loaded.playerPicks, func(p pick.Player) string { return p.UserID })
	highlightPicksByUser := groupBy(loaded.highlightPicks, func(p pick.Highlight) string { return p.UserID })

	createdAt := s.now().UTC()
	outcomes := make(map[string]settlement.UserOutcome, len(userIDs))
	balances := make([]settlement.BalanceUpdate, 0, len(userIDs))
	entries := make([]ledger.Entry, 0, len(userIDs))

	for _, userID := range userIDs {
		score := scoring.ComputeDailyScore(scoring.Input{
			TeamPicks:        teamPicksByUser[userID],
			TeamResults:      loaded.teamResults,
			PlayerPicks:      playerPicksByUser[userID],
			PlayerResults:    loaded.playerResults,
			HighlightPicks:   highlightPicksByUser[userID],
			HighlightResults: loaded.highlightResults,
		})

		newDelta := score.TotalPoints
		outcomes[userID] = settlement.UserOutcome{
			Delta:      newDelta,
			BasePoints: score.BasePoints,
			Multiplier: score.Multiplier,
			Hits:       score.Hits,
		}

		stored, known := userByID[userID]
		if !known {
			// Picks or ledger rows for a user that no longer exists; the
			// recompute is still reported but there is no balance to move.
			s.logger.WarnContext(ctx, "settlement skipped unknown user", "user_id", userID, "slate_date", slateDate)
			continue
		}

		newBalance := stored.PointsBalance - previousDelta[userID] + newDelta
		balances = append(balances, settlement.BalanceUpdate{UserID: userID, NewBalance: newBalance})

		// The ledger is a positive-reward audit trail: zero and negative
		// deltas correct the balance above but leave no row.
		if newDelta > 0 {
			entries = append(entries, ledger.Entry{
				UserID:       userID,
				Delta:        newDelta,
				BalanceAfter: newBalance,
				Reason:       reason,
				CreatedAt:    createdAt,
			})
		}
	}

	if err := s.settlementRepo.ReplaceSlateSettlement(ctx, reason, balances, entries); err != nil {
		return settlement.Result{}, fmt.Errorf("replace slate settlement %s: %w", slateDate, err)
	}

	s.logger.InfoContext(ctx, "slate settled",
		"slate_date", slateDate,
		"users", len(userIDs),
		"ledger_rows", len(entries),
	)

	return settlement.Result{
		Date:        slateDate,
		Processed:   len(entries),
		Settlements: outcomes,
	}, nil
}

// loadSlateContext gathers picks, prior ledger entries, and results. Reads
// within each wave are independent and run concurrently, but scoring never
// starts until every read has finished.
func (s *SettlementService) loadSlateContext(ctx context.Context, slateDate, reason string) (slateContext, error) {
	var loaded slateContext

	picksPool := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	picksPool.Go(func(ctx context.Context) error {
		items, err := s.pickRepo.ListTeamPicksBySlate(ctx, slateDate)
		if err != nil {
			return fmt.Errorf("list team picks: %w", err)
		}
		loaded.teamPicks = items
		return nil
	})
	picksPool.Go(func(ctx context.Context) error {
		items, err := s.pickRepo.ListPlayerPicksBySlate(ctx, slateDate)
		if err != nil {
			return fmt.Errorf("list player picks: %w", err)
		}
		loaded.playerPicks = items
		return nil
	})
	picksPool.Go(func(ctx context.Context) error {
		items, err := s.pickRepo.ListHighlightPicksBySlate(ctx, slateDate)
		if err != nil {
			return fmt.Errorf("list highlight picks: %w", err)
		}
		loaded.highlightPicks = items
		return nil
	})
	picksPool.Go(func(ctx context.Context) error {
		items, err := s.ledgerRepo.ListByReason(ctx, reason)
		if err != nil {
			return fmt.Errorf("list prior ledger entries: %w", err)
		}
		loaded.previousEntries = items
		return nil
	})
	if err := picksPool.Wait(); err != nil {
		return slateContext{}, err
	}

	gameIDs := pickGameIDs(loaded.teamPicks, loaded.playerPicks)

	resultsPool := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	resultsPool.Go(func(ctx context.Context) error {
		if len(gameIDs) == 0 {
			return nil
		}
		items, err := s.resultRepo.ListTeamResultsByGames(ctx, gameIDs)
		if err != nil {
			return fmt.Errorf("list team results: %w", err)
		}
		loaded.teamResults = items
		return nil
	})
	resultsPool.Go(func(ctx context.Context) error {
		if len(gameIDs) == 0 {
			return nil
		}
		items, err := s.resultRepo.ListPlayerResultsByGames(ctx, gameIDs)
		if err != nil {
			return fmt.Errorf("list player results: %w", err)
		}
		loaded.playerResults = items
		return nil
	})
	resultsPool.Go(func(ctx context.Context) error {
		items, err := s.resultRepo.ListHighlightResultsBySlate(ctx, slateDate)
		if err != nil {
			return fmt.Errorf("list highlight results: %w", err)
		}
		loaded.highlightResults = items
		return nil
	})
	if err := resultsPool.Wait(); err != nil {
		return slateContext{}, err
	}

	return loaded, nil
}

func affectedUserIDs(loaded slateContext) []string {
	seen := make(map[string]struct{})
	for _, item := range loaded.teamPicks {
		seen[item.UserID] = struct{}{}
	}
	for _, item := range loaded.playerPicks {
		seen[item.UserID] = struct{}{}
	}
	for _, item := range loaded.highlightPicks {
		seen[item.UserID] = struct{}{}
	}
	for _, item := range loaded.previousEntries {
		seen[item.UserID] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func pickGameIDs(teamPicks []pick.Team, playerPicks []pick.Player) []string {
	seen := make(map[string]struct{})
	for _, item := range teamPicks {
		if item.GameID != "" {
			seen[item.GameID] = struct{}{}
		}
	}
	for _, item := range playerPicks {
		if item.GameID != "" {
			seen[item.GameID] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func groupBy[T any](items []T, key func(T) string) map[string][]T {
	out := make(map[string][]T)
	for _, item := range items {
		out[key(item)] = append(out[key(item)], item)
	}
	return out
}
