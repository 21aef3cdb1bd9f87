package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/cricstack/fantasy-core/external/cricketdata"
	"github.com/cricstack/fantasy-core/internal/config"
	"github.com/cricstack/fantasy-core/internal/domain/country"
	"github.com/cricstack/fantasy-core/internal/domain/fantasy"
	"github.com/cricstack/fantasy-core/internal/domain/match"
	"github.com/cricstack/fantasy-core/internal/domain/performance"
	"github.com/cricstack/fantasy-core/internal/domain/player"
	"github.com/cricstack/fantasy-core/internal/domain/series"
	"github.com/cricstack/fantasy-core/internal/domain/team"
	"github.com/cricstack/fantasy-core/internal/infrastructure/repository/memory"
	"github.com/cricstack/fantasy-core/internal/infrastructure/repository/postgres"
	"github.com/cricstack/fantasy-core/internal/interfaces/httpapi"
	"github.com/cricstack/fantasy-core/internal/platform/logging"
	"github.com/cricstack/fantasy-core/internal/platform/resilience"
	"github.com/cricstack/fantasy-core/internal/scheduler"
	"github.com/cricstack/fantasy-core/internal/usecase"
)

type repositories struct {
	countries    country.Repository
	series       series.Repository
	teams        team.Repository
	players      player.Repository
	matches      match.Repository
	performances performance.Repository
	points       fantasy.Repository
}

// App holds the wired application graph.
type App struct {
	Config     config.Config
	Logger     *logging.Logger
	Sync       *usecase.SyncService
	Scoring    *usecase.ScoringService
	Scheduler  *scheduler.Scheduler
	HTTPServer *http.Server

	db *sqlx.DB
}

// New wires the full dependency graph. The store backend is selected by
// DB_URL: postgres when set, the in-memory backend otherwise.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, db, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	provider := cricketdata.NewClient(cricketdata.ClientConfig{
		BaseURL:           cfg.ProviderBaseURL,
		Token:             cfg.ProviderToken,
		Timeout:           cfg.ProviderTimeout,
		RequestsPerSecond: cfg.ProviderRequestsPerSecond,
		Logger:            logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ProviderCircuitEnabled,
			FailureThreshold: cfg.ProviderCircuitFailureCount,
			OpenTimeout:      cfg.ProviderCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ProviderCircuitHalfOpenMax,
		},
	})

	resolver := usecase.NewResolverService(repos.countries, repos.series, repos.teams, repos.players, repos.matches, logger)
	syncSvc := usecase.NewSyncService(provider, resolver, logger)
	scoringSvc := usecase.NewScoringService(repos.matches, repos.performances, repos.points, repos.players, logger)
	leaderboardSvc := usecase.NewLeaderboardService(repos.points, repos.players, repos.matches)

	sched, err := scheduler.New(syncSvc, scoringSvc, scheduler.Limits{
		Players: cfg.SyncPlayersLimit,
		Matches: cfg.SyncMatchesLimit,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("build scheduler: %w", err)
	}

	handler := httpapi.NewHandler(syncSvc, scoringSvc, leaderboardSvc, repos.performances, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		Config:     cfg,
		Logger:     logger,
		Sync:       syncSvc,
		Scoring:    scoringSvc,
		Scheduler:  sched,
		HTTPServer: server,
		db:         db,
	}, nil
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	if cfg.DBURL == "" {
		logger.Info("using in-memory store backend")
		return repositories{
			countries:    memory.NewCountryRepository(),
			series:       memory.NewSeriesRepository(),
			teams:        memory.NewTeamRepository(),
			players:      memory.NewPlayerRepository(),
			matches:      memory.NewMatchRepository(),
			performances: memory.NewPerformanceRepository(),
			points:       memory.NewFantasyRepository(),
		}, nil, nil
	}

	db, err := postgres.Connect(ctx, cfg.DBURL)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("connect store backend: %w", err)
	}

	logger.Info("using postgres store backend")
	return repositories{
		countries:    postgres.NewCountryRepository(db),
		series:       postgres.NewSeriesRepository(db),
		teams:        postgres.NewTeamRepository(db),
		players:      postgres.NewPlayerRepository(db),
		matches:      postgres.NewMatchRepository(db),
		performances: postgres.NewPerformanceRepository(db),
		points:       postgres.NewFantasyRepository(db),
	}, db, nil
}
