package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"scout-engine/internal/domain"
	"scout-engine/internal/logging"
)

const (
	defaultRetryAttempts    = 3
	defaultInitialBackoff   = 200 * time.Millisecond
	defaultBackoffMax       = 2 * time.Second
	defaultBackoffMultipler = 2.0
)

// retryingProvider wraps a DataProvider with exponential retry/backoff behavior.
type retryingProvider struct {
	inner          DataProvider
	logger         *slog.Logger
	maxAttempts    int
	initialBackoff time.Duration
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/initial are <= 0, defaults are used.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, maxAttempts int, initial time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultInitialBackoff
	}
	return &retryingProvider{
		inner:          inner,
		logger:         logger,
		maxAttempts:    maxAttempts,
		initialBackoff: initial,
	}
}

func (r *retryingProvider) newBackOff(ctx context.Context) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.initialBackoff
	bo.MaxInterval = defaultBackoffMax
	bo.Multiplier = defaultBackoffMultipler
	bo.RandomizationFactor = 0
	return backoff.WithContext(backoff.WithMaxRetries(bo, uint64(r.maxAttempts-1)), ctx)
}

func (r *retryingProvider) FetchPlayByPlay(ctx context.Context, gameID string) (domain.PlayByPlaySnapshot, error) {
	var snap domain.PlayByPlaySnapshot
	attempt := 0

	op := func() error {
		attempt++
		var err error
		snap, err = r.inner.FetchPlayByPlay(ctx, gameID)
		if err != nil && attempt < r.maxAttempts {
			r.logWarn(ctx, "play-by-play fetch retry", "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)
		}
		return err
	}

	if err := backoff.Retry(op, r.newBackOff(ctx)); err != nil {
		r.logWarn(ctx, "play-by-play fetch failed", "attempts", attempt, "err", err)
		return domain.PlayByPlaySnapshot{}, err
	}
	return snap, nil
}

func (r *retryingProvider) FetchBaselines(ctx context.Context, gameID string) ([]domain.PlayerBaseline, error) {
	var baselines []domain.PlayerBaseline
	attempt := 0

	op := func() error {
		attempt++
		var err error
		baselines, err = r.inner.FetchBaselines(ctx, gameID)
		if err != nil && attempt < r.maxAttempts {
			r.logWarn(ctx, "baseline fetch retry", "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)
		}
		return err
	}

	if err := backoff.Retry(op, r.newBackOff(ctx)); err != nil {
		r.logWarn(ctx, "baseline fetch failed", "attempts", attempt, "err", err)
		return nil, err
	}
	return baselines, nil
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		logger.Warn(msg, args...)
	}
}
