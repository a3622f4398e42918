package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/nbanima/pickslate/external/balldontlie"
	"github.com/nbanima/pickslate/internal/config"
	"github.com/nbanima/pickslate/internal/domain/game"
	"github.com/nbanima/pickslate/internal/domain/ledger"
	"github.com/nbanima/pickslate/internal/domain/pick"
	"github.com/nbanima/pickslate/internal/domain/player"
	"github.com/nbanima/pickslate/internal/domain/result"
	"github.com/nbanima/pickslate/internal/domain/settlement"
	"github.com/nbanima/pickslate/internal/domain/slate"
	"github.com/nbanima/pickslate/internal/domain/team"
	"github.com/nbanima/pickslate/internal/domain/user"
	"github.com/nbanima/pickslate/internal/infrastructure/account/authgate"
	"github.com/nbanima/pickslate/internal/infrastructure/repository/memory"
	"github.com/nbanima/pickslate/internal/infrastructure/repository/postgres"
	"github.com/nbanima/pickslate/internal/interfaces/httpapi"
	"github.com/nbanima/pickslate/internal/platform/cache"
	"github.com/nbanima/pickslate/internal/platform/logging"
	"github.com/nbanima/pickslate/internal/platform/resilience"
	"github.com/nbanima/pickslate/internal/usecase"
)

type repositories struct {
	picks       pick.Repository
	results     result.Repository
	games       game.Repository
	users       user.Repository
	ledger      ledger.Repository
	settlements settlement.Repository
	teams       team.Repository
	players     player.Repository
}

// NewHTTPServer wires repositories, services, and the HTTP router. The
// returned cleanup closes whatever the backend opened.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	cleanup := func(context.Context) error { return nil }

	var repos repositories
	if useMemoryBackend(cfg.DBURL) {
		memRepos, err := newMemoryRepositories()
		if err != nil {
			return nil, nil, err
		}
		repos = memRepos
		logger.Info("storage backend ready", "backend", "memory")
	} else {
		db, err := openDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		repos = newPostgresRepositories(db)
		cleanup = func(context.Context) error { return db.Close() }
		logger.Info("storage backend ready", "backend", "postgres", "db_name", dbNameFromURL(cfg.DBURL))
	}

	lookups := cache.NewStore(cfg.CacheTTL)

	var provider usecase.SportsDataProvider
	if cfg.BalldontlieEnabled {
		provider = balldontlie.NewClient(balldontlie.ClientConfig{
			BaseURL:    cfg.BalldontlieBaseURL,
			APIKey:     cfg.BalldontlieAPIKey,
			Timeout:    cfg.BalldontlieTimeout,
			MaxRetries: cfg.BalldontlieMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.BalldontlieCircuitEnabled,
				FailureThreshold: cfg.BalldontlieCircuitFailureCount,
				OpenTimeout:      cfg.BalldontlieCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.BalldontlieCircuitHalfOpenMaxReq,
			},
		})
	}

	lockWindowSvc := usecase.NewLockWindowService(repos.games, cfg.LockBufferMinutes)
	picksSvc := usecase.NewPicksService(repos.picks, lockWindowSvc, logger)
	settlementSvc := usecase.NewSettlementService(repos.picks, repos.results, repos.ledger, repos.users, repos.settlements, logger)
	resultsSvc := usecase.NewResultsService(repos.results, repos.games, settlementSvc, logger)
	ledgerSvc := usecase.NewLedgerService(repos.ledger, repos.users)
	rosterSyncSvc := usecase.NewRosterSyncService(provider, repos.teams, repos.players, repos.games, lookups, logger)

	var principals *cache.Store
	if cfg.CacheEnabled {
		principals = cache.NewStore(cfg.CacheTTL)
	}
	verifier := authgate.NewClient(
		&http.Client{Timeout: cfg.AuthTimeout},
		cfg.AuthBaseURL,
		cfg.AuthIntrospectPath,
		principals,
		logger,
	)

	handler := httpapi.NewHandler(picksSvc, resultsSvc, settlementSvc, lockWindowSvc, ledgerSvc, rosterSyncSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup(context.Background())
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

// useMemoryBackend reports whether the server should run on seeded in-memory
// repositories. DB_URL=memory (or empty) keeps local development free of a
// database.
func useMemoryBackend(dbURL string) bool {
	trimmed := strings.TrimSpace(dbURL)
	return trimmed == "" || strings.EqualFold(trimmed, "memory")
}

func newMemoryRepositories() (repositories, error) {
	today, err := slate.ToSlateID(time.Now())
	if err != nil {
		return repositories{}, fmt.Errorf("resolve today's slate: %w", err)
	}
	startUTC, _, err := slate.Bounds(today)
	if err != nil {
		return repositories{}, fmt.Errorf("resolve slate bounds: %w", err)
	}

	userRepo := memory.NewUserRepository(memory.SeedUsers())
	ledgerRepo := memory.NewLedgerRepository()

	return repositories{
		picks:       memory.NewPickRepository(),
		results:     memory.NewResultRepository(),
		games:       memory.NewGameRepository(memory.SeedGames(startUTC)),
		users:       userRepo,
		ledger:      ledgerRepo,
		settlements: memory.NewSettlementRepository(userRepo, ledgerRepo),
		teams:       memory.NewTeamRepository(memory.SeedTeams()),
		players:     memory.NewPlayerRepository(memory.SeedPlayers()),
	}, nil
}

func newPostgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		picks:       postgres.NewPickRepository(db),
		results:     postgres.NewResultRepository(db),
		games:       postgres.NewGameRepository(db),
		users:       postgres.NewUserRepository(db),
		ledger:      postgres.NewLedgerRepository(db),
		settlements: postgres.NewSettlementRepository(db),
		teams:       postgres.NewTeamRepository(db),
		players:     postgres.NewPlayerRepository(db),
	}
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
