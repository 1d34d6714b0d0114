package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"scout-engine/internal/config"
	"scout-engine/internal/engine"
	httpserver "scout-engine/internal/http"
	"scout-engine/internal/logging"
	"scout-engine/internal/metrics"
	"scout-engine/internal/poller"
	"scout-engine/internal/providers"
	"scout-engine/internal/session"
)

var metricsSetup = metrics.Setup

// defaultGameID keeps local runs working without configuration.
const defaultGameID = "local-game"

type Server struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *metrics.Recorder

	provider providers.DataProvider
	engine   *engine.Engine
	gateway  *session.Gateway

	router        http.Handler
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error

	gatewayStop context.CancelFunc
	gatewayDone chan struct{}
}

// New constructs a server with default provider and session wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithProvider(cfg, logger, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	if provider == nil {
		provider = buildProvider(cfg, logger)
	}

	gameID := cfg.GameID
	if gameID == "" {
		gameID = defaultGameID
	}

	gateway := session.NewGateway(buildSessionStore(cfg, logger), logger, recorder, cfg.AutosaveInterval, cfg.SnapshotMaxAge)
	eng := buildEngine(cfg, gameID, provider, gateway, logger, recorder)

	plr := poller.New(provider, eng, logger, recorder, gameID, cfg.PollInterval)
	router, httpSrv := buildHTTPServer(cfg, eng, gateway, provider, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		provider:      provider,
		engine:        eng,
		gateway:       gateway,
		router:        router,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// buildEngine seeds the roster from pre-game baselines, then replays any
// persisted session for the same game. A stale or missing snapshot starts
// fresh.
func buildEngine(cfg config.Config, gameID string, provider providers.DataProvider, gateway *session.Gateway, logger *slog.Logger, recorder *metrics.Recorder) *engine.Engine {
	ctx, cancel := context.WithTimeout(context.Background(), bootFetchTimeout)
	defer cancel()

	baselines, err := provider.FetchBaselines(ctx, gameID)
	if err != nil {
		logging.Warn(logger, "baseline fetch failed, starting with empty roster",
			logging.FieldGameID, gameID, "err", err)
	}

	eng := engine.New(gameID, baselines,
		engine.WithLogger(logger),
		engine.WithMetrics(recorder),
		engine.WithCaptureRate(cfg.CaptureRate),
	)

	snap, err := gateway.Restore(ctx, gameID)
	switch {
	case err == nil:
		eng.Restore(snap)
	case errors.Is(err, session.ErrNotFound):
	case errors.Is(err, session.ErrStale):
		logging.Info(logger, "persisted session too old, starting fresh", logging.FieldGameID, gameID)
	default:
		logging.Warn(logger, "session restore failed, starting fresh",
			logging.FieldGameID, gameID, "err", err)
	}

	return eng
}

func buildHTTPServer(cfg config.Config, eng *engine.Engine, gateway *session.Gateway, provider providers.DataProvider, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) (http.Handler, httpServer) {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := httpserver.NewHandler(eng, gateway, provider, logger, statusFn)
	ws := httpserver.NewObservationSocket(eng, logger)
	router := httpserver.NewRouter(handler, ws, logger, recorder)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return router, netHTTPServer{srv: srv}
}

// Run starts monitoring, the autosave gateway, the poller, and the HTTP
// server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.engine.Start()
	s.startGateway()
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startGateway() {
	gwCtx, cancel := context.WithCancel(context.Background())
	s.gatewayStop = cancel
	s.gatewayDone = make(chan struct{})
	go func() {
		defer close(s.gatewayDone)
		s.gateway.Run(gwCtx, s.engine)
	}()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	// Stop ingestion before the gateway's final save so the persisted
	// snapshot is the session's last word.
	s.engine.Stop()
	if s.gatewayStop != nil {
		s.gatewayStop()
		select {
		case <-s.gatewayDone:
		case <-shutdownCtx.Done():
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
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
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
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
	return s.router
}

// Engine exposes the engine (useful for tests).
func (s *Server) Engine() *engine.Engine {
	return s.engine
}
