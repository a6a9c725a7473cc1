package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/propwatch/nhl-hitrate/external/nhl"
	"github.com/propwatch/nhl-hitrate/internal/config"
	"github.com/propwatch/nhl-hitrate/internal/domain/watchlist"
	"github.com/propwatch/nhl-hitrate/internal/infrastructure/repository/memory"
	"github.com/propwatch/nhl-hitrate/internal/infrastructure/repository/postgres"
	"github.com/propwatch/nhl-hitrate/internal/interfaces/httpapi"
	"github.com/propwatch/nhl-hitrate/internal/platform/cache"
	idgen "github.com/propwatch/nhl-hitrate/internal/platform/id"
	"github.com/propwatch/nhl-hitrate/internal/platform/logging"
	"github.com/propwatch/nhl-hitrate/internal/platform/resilience"
	"github.com/propwatch/nhl-hitrate/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	platformLogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(platformLogger)

	provider := nhl.NewClient(nhl.ClientConfig{
		BaseURL:    cfg.NHLBaseURL,
		Timeout:    cfg.NHLTimeout,
		MaxRetries: cfg.NHLMaxRetries,
		Logger:     platformLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NHLCircuitEnabled,
			FailureThreshold: cfg.NHLCircuitFailureCount,
			OpenTimeout:      cfg.NHLCircuitOpenTimeout,
			ProbeLimit:       cfg.NHLCircuitProbeLimit,
		},
	})

	var watchlistRepo watchlist.Repository = memory.NewWatchlistRepository()
	if cfg.DBURL != "" {
		db, err := openDB(cfg.DBURL)
		if err != nil {
			return nil, err
		}
		watchlistRepo = postgres.NewWatchlistRepository(db)
		logger.Info("watchlist repository", "kind", "postgres", "db_name", dbNameFromURL(cfg.DBURL))
	} else {
		logger.Info("watchlist repository", "kind", "memory")
	}

	rosterCache := cache.NewStore(cfg.RosterCacheTTL)

	rosterSvc := usecase.NewRosterService(provider, rosterCache, platformLogger, cfg.RosterWorkerCount)
	analysisSvc := usecase.NewAnalysisService(provider, platformLogger, cfg.AnalysisDefaultWindow, cfg.AnalysisMaxWindow)
	watchlistSvc := usecase.NewWatchlistService(
		watchlistRepo,
		analysisSvc,
		provider,
		idgen.NewRandomGenerator(),
		platformLogger,
	)

	handler := httpapi.NewHandler(rosterSvc, analysisSvc, watchlistSvc, logger)
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

	return server, nil
}
