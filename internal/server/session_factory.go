package server

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"scout-engine/internal/config"
	"scout-engine/internal/session"
)

func buildSessionStore(cfg config.Config, logger *slog.Logger) session.Store {
	switch cfg.Session.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Session.RedisAddr,
			DB:   cfg.Session.RedisDB,
		})
		return session.NewRedisStore(client)
	case "fs", "":
		return session.NewFSStore(cfg.Session.Path)
	default:
		if logger != nil {
			logger.Warn("unknown session backend, falling back to fs", slog.String("backend", cfg.Session.Backend))
		}
		return session.NewFSStore(cfg.Session.Path)
	}
}
