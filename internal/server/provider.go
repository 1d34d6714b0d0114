package server

import (
	"context"
	"log/slog"

	"scout-engine/internal/config"
	"scout-engine/internal/poller"
	"scout-engine/internal/providers"
	"scout-engine/internal/providers/fixture"
	"scout-engine/internal/providers/statsfeed"
)

// Poller defines the minimal poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case "fixture", "":
		return fixture.New()
	case "statsfeed":
		return statsfeed.NewClient(statsfeed.Config{
			BaseURL: cfg.Statsfeed.BaseURL,
			APIKey:  cfg.Statsfeed.APIKey,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}

func buildProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	name := cfg.Provider
	if name == "" {
		name = "fixture"
	}
	base := selectProvider(cfg, logger)
	logged := providers.NewLoggingProvider(base, logger, name)
	return providers.NewRetryingProvider(logged, logger, 0, 0)
}
