package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/player-scout/external/playerapi"
	"github.com/riskibarqy/player-scout/internal/config"
	"github.com/riskibarqy/player-scout/internal/domain/player"
	cacherepo "github.com/riskibarqy/player-scout/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/player-scout/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/player-scout/internal/interfaces/web"
	"github.com/riskibarqy/player-scout/internal/platform/cache"
	"github.com/riskibarqy/player-scout/internal/platform/logging"
	"github.com/riskibarqy/player-scout/internal/platform/metrics"
	"github.com/riskibarqy/player-scout/internal/platform/resilience"
	"github.com/riskibarqy/player-scout/internal/platform/session"
	"github.com/riskibarqy/player-scout/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if len(cfg.LoginUsers) == 0 {
		return nil, fmt.Errorf("LOGIN_USERS must define at least one username:password pair")
	}

	var recorder *metrics.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.New()
	}

	source := newPlayerSource(cfg, logger, recorder)
	store := cache.NewSnapshotStore[player.Player](cfg.PlayerCacheTTL,
		cache.WithRefreshHook[player.Player](func(items int, took time.Duration) {
			logger.Info("player snapshot refreshed", "players", items, "took_ms", took.Milliseconds())
			recorder.ObserveSnapshotRefresh(items, took)
		}),
	)
	cachedSource := cacherepo.NewPlayerSource(source, store)

	searchOpts := []usecase.PlayerSearchOption{}
	if recorder != nil {
		searchOpts = append(searchOpts, usecase.WithSearchObserver(recorder))
	}
	playerSvc := usecase.NewPlayerSearchService(cachedSource, logger, searchOpts...)

	sessions, err := session.NewManager(session.Config{
		Secret: cfg.SessionSecret,
		TTL:    cfg.SessionTTL,
		Secure: cfg.SessionCookieSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("build session manager: %w", err)
	}

	renderer, err := web.NewRenderer(time.Now)
	if err != nil {
		return nil, fmt.Errorf("build renderer: %w", err)
	}

	handler, err := web.NewHandler(web.HandlerConfig{
		Players:       playerSvc,
		Sessions:      sessions,
		Credentials:   session.Credentials(cfg.LoginUsers),
		Renderer:      renderer,
		Logger:        logger,
		SecureCookies: cfg.SessionCookieSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}

	routerCfg := web.RouterConfig{
		Sessions:           sessions,
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	if recorder != nil {
		routerCfg.Metrics = recorder.Handler()
	}
	router := web.NewRouter(handler, routerCfg)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	logger.Info("http server configured",
		"addr", cfg.HTTPAddr,
		"player_source", cfg.PlayerSource,
		"cache_ttl", cfg.PlayerCacheTTL.String(),
		"metrics_enabled", cfg.MetricsEnabled,
	)

	return server, nil
}

func newPlayerSource(cfg config.Config, logger *logging.Logger, recorder *metrics.Recorder) player.Source {
	if cfg.PlayerSource == config.PlayerSourceMemory {
		return memory.NewPlayerSource(memory.SeedPlayers(), memory.SeedStats())
	}

	clientCfg := playerapi.ClientConfig{
		BaseURL:        cfg.PlayerAPIBaseURL,
		PageSize:       cfg.PlayerAPIPageSize,
		ListTimeout:    cfg.PlayerAPIListTimeout,
		ProfileTimeout: cfg.PlayerAPIProfileTimeout,
		StatsTimeout:   cfg.PlayerAPIStatsTimeout,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.PlayerAPICircuitEnabled,
			FailureThreshold: cfg.PlayerAPICircuitFailures,
			OpenTimeout:      cfg.PlayerAPICircuitOpenTime,
			HalfOpenMaxReq:   cfg.PlayerAPICircuitHalfOpen,
		},
	}
	if recorder != nil {
		clientCfg.Metrics = recorder
	}
	return playerapi.NewClient(clientCfg)
}
