package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Nicolasff12/PrediccionFutbol/external/besoccer"
	"github.com/Nicolasff12/PrediccionFutbol/external/gemini"
	"github.com/Nicolasff12/PrediccionFutbol/internal/config"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/league"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/match"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/prediction"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/team"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/user"
	cachedrepo "github.com/Nicolasff12/PrediccionFutbol/internal/infrastructure/repository/cache"
	"github.com/Nicolasff12/PrediccionFutbol/internal/infrastructure/repository/memory"
	"github.com/Nicolasff12/PrediccionFutbol/internal/infrastructure/repository/postgres"
	"github.com/Nicolasff12/PrediccionFutbol/internal/interfaces/httpapi"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/cache"
	idgen "github.com/Nicolasff12/PrediccionFutbol/internal/platform/id"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/logging"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/resilience"
	"github.com/Nicolasff12/PrediccionFutbol/internal/usecase"
)

const dbConnectTimeout = 10 * time.Second

type repositories struct {
	leagues     league.Repository
	teams       team.Repository
	matches     match.Repository
	predictions prediction.Repository
	users       user.Repository
}

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	appLogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(appLogger)

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
		repos.leagues = cachedrepo.NewLeagueRepository(repos.leagues, store)
		repos.teams = cachedrepo.NewTeamRepository(repos.teams, store)
		repos.matches = cachedrepo.NewMatchRepository(repos.matches, store)
	}

	provider := buildProvider(cfg, appLogger)
	model := buildModel(cfg, appLogger)

	matchSvc := usecase.NewMatchService(repos.matches, repos.teams, repos.leagues, appLogger)
	statsSvc := usecase.NewStatsService(repos.teams, repos.leagues, repos.matches, provider, store, appLogger)
	predictionSvc := usecase.NewPredictionService(
		repos.matches,
		repos.teams,
		repos.leagues,
		repos.predictions,
		repos.users,
		statsSvc,
		model,
		idgen.NewRandomGenerator(),
		appLogger,
	)
	syncSvc := usecase.NewSyncService(
		provider,
		repos.leagues,
		repos.teams,
		repos.matches,
		idgen.NewRandomGenerator(),
		cfg.SyncHorizon,
		appLogger,
	)
	dashboardSvc := usecase.NewDashboardService(repos.leagues, matchSvc, statsSvc, appLogger)

	handler := httpapi.NewHandler(dashboardSvc, matchSvc, statsSvc, predictionSvc, syncSvc, repos.leagues, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// NewSyncService wires the repositories and provider for the standalone
// sync worker. The football data API must be enabled; there is nothing to
// sync from otherwise.
func NewSyncService(cfg config.Config, logger *slog.Logger) (*usecase.SyncService, error) {
	appLogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(appLogger)

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	provider := buildProvider(cfg, appLogger)
	if provider == nil {
		return nil, fmt.Errorf("besoccer must be enabled to run a sync")
	}

	return usecase.NewSyncService(
		provider,
		repos.leagues,
		repos.teams,
		repos.matches,
		idgen.NewRandomGenerator(),
		cfg.SyncHorizon,
		appLogger,
	), nil
}

// buildRepositories connects to Postgres when DB_URL names one, seeding an
// empty database with the demo dataset. DB_URL "memory" (or empty) swaps in
// the seeded in-memory repositories so the service runs without a database.
func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, error) {
	dbURL := strings.TrimSpace(cfg.DBURL)
	if dbURL == "" || strings.EqualFold(dbURL, "memory") {
		logger.Info("using in-memory repositories")
		now := time.Now().UTC()
		return repositories{
			leagues:     memory.NewLeagueRepository(memory.SeedLeagues()),
			teams:       memory.NewTeamRepository(memory.SeedTeams()),
			matches:     memory.NewMatchRepository(memory.SeedMatches(now)),
			predictions: memory.NewPredictionRepository(nil),
			users:       memory.NewUserRepository(memory.SeedUsers()),
		}, nil
	}

	db, err := sqlx.Connect("postgres", normalizeDBURL(dbURL, cfg.DBDisablePreparedBinary))
	if err != nil {
		return repositories{}, fmt.Errorf("connect postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbConnectTimeout)
	defer cancel()
	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		return repositories{}, fmt.Errorf("seed database: %w", err)
	}

	logger.Info("connected to postgres", "database", dbNameFromURL(dbURL))

	return repositories{
		leagues:     postgres.NewLeagueRepository(db),
		teams:       postgres.NewTeamRepository(db),
		matches:     postgres.NewMatchRepository(db),
		predictions: postgres.NewPredictionRepository(db),
		users:       postgres.NewUserRepository(db),
	}, nil
}

// buildProvider returns nil when the football data API is disabled; the
// services then work from stored data only.
func buildProvider(cfg config.Config, logger *logging.Logger) usecase.SportDataProvider {
	if !cfg.BesoccerEnabled {
		return nil
	}

	return besoccer.NewClient(besoccer.ClientConfig{
		BaseURL: cfg.BesoccerBaseURL,
		Token:   cfg.BesoccerToken,
		Timeout: cfg.BesoccerTimeout,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.BesoccerCircuitEnabled,
			FailureThreshold: cfg.BesoccerCircuitFailureCount,
			OpenTimeout:      cfg.BesoccerCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.BesoccerCircuitHalfOpenMaxReq,
		},
	})
}

// buildModel returns nil when the generative API is disabled; predictions
// then fall back to the canned forecast.
func buildModel(cfg config.Config, logger *logging.Logger) usecase.GenerativeModel {
	if !cfg.GeminiEnabled {
		return nil
	}

	return gemini.NewClient(gemini.ClientConfig{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiTimeout,
		Logger:  logger,
	})
}
