package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"scout-engine/internal/config"
	"scout-engine/internal/logging"
	"scout-engine/internal/server"
)

const (
	appName    = "scout-engine"
	appVersion = "dev"
)

func main() {
	// SKIP_SERVER_RUN short-circuits startup so the test binary never binds.
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: appName,
		Version: appVersion,
	})
	logger.Info("starting scout engine",
		logging.FieldGameID, cfg.GameID,
		"port", cfg.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.New(cfg, logger).Run(ctx, stop)
}
