package providers

import (
	"context"
	"log/slog"
	"time"

	"scout-engine/internal/domain"
)

// loggingProvider wraps a DataProvider and logs every fetch with its outcome.
type loggingProvider struct {
	inner  DataProvider
	logger *slog.Logger
	name   string
	now    func() time.Time
}

// NewLoggingProvider decorates a provider with debug/error logging.
func NewLoggingProvider(inner DataProvider, logger *slog.Logger, name string) DataProvider {
	if name == "" {
		name = "provider"
	}
	return &loggingProvider{inner: inner, logger: logger, name: name, now: time.Now}
}

func (l *loggingProvider) FetchPlayByPlay(ctx context.Context, gameID string) (domain.PlayByPlaySnapshot, error) {
	start := l.now()
	snap, err := l.inner.FetchPlayByPlay(ctx, gameID)
	if err != nil {
		logWithProvider(ctx, l.logger, slog.LevelError, l.name, "play-by-play fetch failed",
			slog.String("game_id", gameID), slog.Any("err", err))
		return domain.PlayByPlaySnapshot{}, err
	}
	logWithProvider(ctx, l.logger, slog.LevelDebug, l.name, "play-by-play fetched",
		slog.String("game_id", gameID),
		slog.Int("players", len(snap.Players)),
		slog.Int64("duration_ms", l.now().Sub(start).Milliseconds()))
	return snap, nil
}

func (l *loggingProvider) FetchBaselines(ctx context.Context, gameID string) ([]domain.PlayerBaseline, error) {
	start := l.now()
	baselines, err := l.inner.FetchBaselines(ctx, gameID)
	if err != nil {
		logWithProvider(ctx, l.logger, slog.LevelError, l.name, "baseline fetch failed",
			slog.String("game_id", gameID), slog.Any("err", err))
		return nil, err
	}
	logWithProvider(ctx, l.logger, slog.LevelDebug, l.name, "baselines fetched",
		slog.String("game_id", gameID),
		slog.Int("players", len(baselines)),
		slog.Int64("duration_ms", l.now().Sub(start).Milliseconds()))
	return baselines, nil
}

// logWithProvider emits a log entry if logger is non-nil and always includes provider name.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider string, msg string, args ...any) {
	if logger == nil {
		return
	}
	args = append(args, slog.String("provider", provider))
	logger.Log(ctx, level, msg, args...)
}
