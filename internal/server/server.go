package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"pwhl-schedule-service/internal/app/schedule"
	"pwhl-schedule-service/internal/cache"
	"pwhl-schedule-service/internal/config"
	httpserver "pwhl-schedule-service/internal/http"
	"pwhl-schedule-service/internal/http/handlers"
	"pwhl-schedule-service/internal/logging"
	"pwhl-schedule-service/internal/metrics"
	"pwhl-schedule-service/internal/poller"
	"pwhl-schedule-service/internal/seasons"
	"pwhl-schedule-service/internal/snapshots"
)

var metricsSetup = metrics.Setup

// Server owns the service wiring and lifecycle: provider, cache, poller,
// and the HTTP surface.
type Server struct {
	cfg         config.Config
	logger      *slog.Logger
	metrics     *metrics.Recorder
	scheduleSvc *schedule.Service
	snapStore   snapshots.Store
	httpServer  httpServer
	poller      Poller
	metricsStop func(context.Context) error
	version     string
}

// New constructs a server with default provider, cache, and poller wiring.
func New(cfg config.Config, logger *slog.Logger, version string) *Server {
	recorder, metricsHandler, metricsShutdown := buildMetrics(cfg, logger)

	provider := newProviderFactory(logger, recorder).build(cfg)
	snapStore := buildSnapshotStore(cfg, logger)

	scheduleCache := cache.New(cache.Options{
		Provider:  provider,
		TTL:       cfg.CacheTTL,
		Logger:    logger,
		Metrics:   recorder,
		Snapshots: snapStore,
	})
	warmFromSnapshots(scheduleCache, snapStore, logger)

	scheduleSvc := schedule.NewService(scheduleCache, logger)
	plr := poller.New(scheduleCache, logger, recorder, cfg.PollInterval, cfg.PollSeasonDelay)
	httpSrv := buildHTTPServer(cfg, scheduleSvc, logger, recorder, metricsHandler, plr, version)

	return &Server{
		cfg:         cfg,
		logger:      logger,
		metrics:     recorder,
		scheduleSvc: scheduleSvc,
		snapStore:   snapStore,
		httpServer:  httpSrv,
		poller:      plr,
		metricsStop: metricsShutdown,
		version:     version,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *schedule.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:         cfg,
		logger:      logger,
		scheduleSvc: svc,
		httpServer:  httpSrv,
		poller:      plr,
	}
}

// warmFromSnapshots pre-populates the cache from whatever snapshots exist.
// Old snapshots are admitted as stale entries, which keeps the first
// request fast while the poller refreshes behind it.
func warmFromSnapshots(c *cache.Cache, store snapshots.Store, logger *slog.Logger) {
	if store == nil {
		return
	}
	for _, season := range seasons.List() {
		snap, err := store.Load(season.ID)
		if err != nil {
			if err != snapshots.ErrNotFound {
				logging.Warn(logger, "snapshot load failed",
					slog.Int(logging.FieldSeason, season.ID),
					"error", err,
				)
			}
			continue
		}
		c.Warm(season.ID, snap.Games, snap.RefreshedAt)
		logging.Info(logger, "cache warmed from snapshot",
			slog.Int(logging.FieldSeason, season.ID),
			slog.Int(logging.FieldCount, len(snap.Games)),
		)
	}
}

func buildHTTPServer(cfg config.Config, svc *schedule.Service, logger *slog.Logger, recorder *metrics.Recorder, metricsHandler http.Handler, plr Poller, version string) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(svc, logger, version, statusFn)
	admin := handlers.NewAdminHandler(svc, cfg.AdminToken, logger)

	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	router := httpserver.NewRouter(handler, admin, httpserver.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		AdminToken:  cfg.AdminToken,
		Metrics:     metricsHandler,
	}, logger, recorder)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	// The Redis snapshot backend holds a connection worth releasing.
	if closer, ok := s.snapStore.(io.Closer); ok {
		if err := closer.Close(); err != nil && s.logger != nil {
			s.logger.Warn("snapshot store close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, http.Handler, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "error", err)
		}
		return metrics.NewRecorder(), nil, nil
	}
	return rec, handler, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
