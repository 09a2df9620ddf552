package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/kaduregel/matchday/internal/balance"
	"github.com/kaduregel/matchday/internal/config"
	"github.com/kaduregel/matchday/internal/domain/matchday"
	"github.com/kaduregel/matchday/internal/domain/player"
	"github.com/kaduregel/matchday/internal/domain/ranking"
	"github.com/kaduregel/matchday/internal/infrastructure/repository/cache"
	"github.com/kaduregel/matchday/internal/infrastructure/repository/memory"
	"github.com/kaduregel/matchday/internal/infrastructure/repository/postgres"
	"github.com/kaduregel/matchday/internal/infrastructure/telegram"
	"github.com/kaduregel/matchday/internal/interfaces/httpapi"
	basecache "github.com/kaduregel/matchday/internal/platform/cache"
	"github.com/kaduregel/matchday/internal/platform/logging"
	"github.com/kaduregel/matchday/internal/platform/resilience"
	"github.com/kaduregel/matchday/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

// Server bundles the HTTP server with the resources it owns.
type Server struct {
	HTTP     *http.Server
	matchday *usecase.MatchdayService
	db       *sqlx.DB
}

// Close drains in-flight team generation runs and releases the DB pool.
func (s *Server) Close() error {
	if s.matchday != nil {
		s.matchday.Close()
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func NewServer(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		playerRepo   player.Repository
		matchdayRepo matchday.Repository
		rankingRepo  ranking.Repository
		db           *sqlx.DB
	)

	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		connected, err := openDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		db = connected
		playerRepo = postgres.NewPlayerRepository(db)
		matchdayRepo = postgres.NewMatchdayRepository(db)
		rankingRepo = postgres.NewRankingRepository(db)
	default:
		memPlayerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
		memRankingRepo := memory.NewRankingRepository()
		for _, rankerID := range memory.SeedRankers() {
			_ = memRankingRepo.InsertRanker(context.Background(), rankerID)
		}
		playerRepo = memPlayerRepo
		matchdayRepo = memory.NewMatchdayRepository()
		rankingRepo = memRankingRepo
	}

	if cfg.CacheEnabled {
		playerRepo = cache.NewPlayerRepository(playerRepo, basecache.NewStore(cfg.CacheTTL))
	}

	var delivery usecase.Delivery
	if cfg.TelegramEnabled {
		client, err := telegram.NewClient(telegram.ClientConfig{
			BaseURL: cfg.TelegramBaseURL,
			Token:   cfg.TelegramToken,
			ChatID:  cfg.TelegramChatID,
			Timeout: cfg.TelegramTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.TelegramCircuitEnabled,
				FailureThreshold: cfg.TelegramCircuitFailureCount,
				OpenTimeout:      cfg.TelegramCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.TelegramCircuitHalfOpenMaxReq,
			},
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("create telegram client: %w", err)
		}
		delivery = client
	}

	generator := balance.NewGenerator(&balance.BacktrackingSolver{MaxNodes: cfg.SolverMaxNodes})

	matchdaySvc, err := usecase.NewMatchdayService(
		matchdayRepo,
		playerRepo,
		rankingRepo,
		generator,
		delivery,
		usecase.MatchdayServiceConfig{
			TeamCount: cfg.TeamCount,
			Workers:   cfg.GenerationWorkers,
		},
		logging.Default(),
	)
	if err != nil {
		return nil, fmt.Errorf("create matchday service: %w", err)
	}
	rankingSvc := usecase.NewRankingService(playerRepo, rankingRepo, logging.Default())
	playerSvc := usecase.NewPlayerService(playerRepo, rankingRepo, logging.Default())

	handler := httpapi.NewHandler(matchdaySvc, rankingSvc, playerSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &Server{HTTP: server, matchday: matchdaySvc, db: db}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
