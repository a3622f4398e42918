package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/nbanima/pickslate/internal/domain/game"
	"github.com/nbanima/pickslate/internal/domain/player"
	"github.com/nbanima/pickslate/internal/domain/slate"
	"github.com/nbanima/pickslate/internal/domain/team"
	"github.com/nbanima/pickslate/internal/platform/cache"
	"github.com/nbanima/pickslate/internal/platform/logging"
)

const (
	defaultSyncWorkers   = 4
	providerName         = "balldontlie"
	teamCacheKeyPrefix   = "team:abbr:"
	playerCacheKeyPrefix = "player:provider:"
)

// RosterSyncService pulls teams, rosters, and a slate's game schedule from
// the external provider into local tables. Lookups that the original data
// path memoized in process-global maps go through an injected TTL cache so
// a long-lived process neither grows without bound nor serves stale ids
// forever.
type RosterSyncService struct {
	provider   SportsDataProvider
	teamRepo   team.Repository
	playerRepo player.Repository
	gameRepo   game.Repository
	lookups    *cache.Store
	logger     *logging.Logger
	workers    int
	now        func() time.Time
}

func NewRosterSyncService(
	provider SportsDataProvider,
	teamRepo team.Repository,
	playerRepo player.Repository,
	gameRepo game.Repository,
	lookups *cache.Store,
	logger *logging.Logger,
) *RosterSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterSyncService{
		provider:   provider,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		lookups:    lookups,
		logger:     logger,
		workers:    defaultSyncWorkers,
		now:        time.Now,
	}
}

// RosterSyncSummary reports what one sync run touched.
type RosterSyncSummary struct {
	Teams   int
	Players int
	Games   int
}

// SyncRosters upserts every team and its active roster. Per-team roster
// fetches fan out over a bounded worker pool; the provider rate limit is
// the real ceiling, not goroutine count.
func (s *RosterSyncService) SyncRosters(ctx context.Context) (RosterSyncSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterSyncService.SyncRosters")
	defer span.End()

	if s.provider == nil {
		return RosterSyncSummary{}, fmt.Errorf("%w: sports data provider is not configured", ErrDependencyUnavailable)
	}

	teams, err := s.provider.ListTeams(ctx)
	if err != nil {
		return RosterSyncSummary{}, fmt.Errorf("list provider teams: %w", err)
	}

	now := s.now().UTC()
	summary := RosterSyncSummary{}
	for _, item := range teams {
		localTeam := team.Team{
			ID:             providerName + ":team:" + item.ProviderTeamID,
			Provider:       providerName,
			ProviderTeamID: item.ProviderTeamID,
			Abbr:           item.Abbr,
			Name:           item.Name,
			UpdatedAt:      now,
		}
		if err := s.teamRepo.Upsert(ctx, localTeam); err != nil {
			return summary, fmt.Errorf("upsert team %s: %w", item.Abbr, err)
		}
		s.lookups.Set(ctx, teamCacheKeyPrefix+item.Abbr, localTeam.ID)
		summary.Teams++
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return summary, fmt.Errorf("create roster sync pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		players  int
	)
	for _, item := range teams {
		providerTeamID := item.ProviderTeamID
		teamID := providerName + ":team:" + providerTeamID

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			count, syncErr := s.syncTeamRoster(ctx, providerTeamID, teamID, now)
			mu.Lock()
			defer mu.Unlock()
			if syncErr != nil && firstErr == nil {
				firstErr = syncErr
				return
			}
			players += count
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("submit roster sync for team %s: %w", providerTeamID, submitErr)
			}
			mu.Unlock()
		}
	}
	wg.Wait()

	if firstErr != nil {
		return summary, firstErr
	}
	summary.Players = players

	s.logger.InfoContext(ctx, "rosters synced", "teams", summary.Teams, "players", summary.Players)
	return summary, nil
}

// SyncGames upserts the provider's schedule for one slate date.
func (s *RosterSyncService) SyncGames(ctx context.Context, slateDate string) (RosterSyncSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterSyncService.SyncGames")
	defer span.End()

	if s.provider == nil {
		return RosterSyncSummary{}, fmt.Errorf("%w: sports data provider is not configured", ErrDependencyUnavailable)
	}
	if err := slate.Validate(slateDate); err != nil {
		return RosterSyncSummary{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	games, err := s.provider.ListGamesByDate(ctx, slateDate)
	if err != nil {
		return RosterSyncSummary{}, fmt.Errorf("list provider games for %s: %w", slateDate, err)
	}

	summary := RosterSyncSummary{}
	for _, item := range games {
		homeID, homeErr := s.resolveTeamIDByAbbr(ctx, item.HomeTeamAbbr)
		if homeErr != nil {
			return summary, homeErr
		}
		awayID, awayErr := s.resolveTeamIDByAbbr(ctx, item.AwayTeamAbbr)
		if awayErr != nil {
			return summary, awayErr
		}

		localGame := game.Game{
			ID:             providerName + ":game:" + item.ProviderGameID,
			Provider:       providerName,
			ProviderGameID: item.ProviderGameID,
			Season:         item.Season,
			Status:         item.Status,
			StartsAt:       item.StartsAt,
			HomeTeamID:     homeID,
			AwayTeamID:     awayID,
			HomeTeamAbbr:   item.HomeTeamAbbr,
			AwayTeamAbbr:   item.AwayTeamAbbr,
		}
		if err := s.gameRepo.Upsert(ctx, localGame); err != nil {
			return summary, fmt.Errorf("upsert game %s: %w", item.ProviderGameID, err)
		}
		summary.Games++
	}

	s.logger.InfoContext(ctx, "games synced", "slate_date", slateDate, "games", summary.Games)
	return summary, nil
}

func (s *RosterSyncService) syncTeamRoster(ctx context.Context, providerTeamID, teamID string, now time.Time) (int, error) {
	roster, err := s.provider.ListActivePlayers(ctx, providerTeamID)
	if err != nil {
		return 0, fmt.Errorf("list roster for team %s: %w", providerTeamID, err)
	}

	for _, item := range roster {
		localPlayer := player.Player{
			ID:               providerName + ":player:" + item.ProviderPlayerID,
			Provider:         providerName,
			ProviderPlayerID: item.ProviderPlayerID,
			FirstName:        item.FirstName,
			LastName:         item.LastName,
			TeamID:           teamID,
			UpdatedAt:        now,
		}
		if err := s.playerRepo.Upsert(ctx, localPlayer); err != nil {
			return 0, fmt.Errorf("upsert player %s: %w", item.ProviderPlayerID, err)
		}
		s.lookups.Set(ctx, playerCacheKeyPrefix+item.ProviderPlayerID, localPlayer.ID)
	}
	return len(roster), nil
}

func (s *RosterSyncService) resolveTeamIDByAbbr(ctx context.Context, abbr string) (string, error) {
	if abbr == "" {
		return "", fmt.Errorf("%w: game row is missing a team abbreviation", ErrInvalidInput)
	}

	value, err := s.lookups.GetOrLoad(ctx, teamCacheKeyPrefix+abbr, func(ctx context.Context) (any, error) {
		stored, found, lookupErr := s.teamRepo.GetByAbbr(ctx, abbr)
		if lookupErr != nil {
			return nil, fmt.Errorf("lookup team by abbr %s: %w", abbr, lookupErr)
		}
		if !found {
			return nil, fmt.Errorf("%w: team %s is not synced", ErrNotFound, abbr)
		}
		return stored.ID, nil
	})
	if err != nil {
		return "", err
	}

	id, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("unexpected team lookup cache value %T", value)
	}
	return id, nil
}
