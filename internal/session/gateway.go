package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"scout-engine/internal/domain"
	"scout-engine/internal/logging"
	"scout-engine/internal/metrics"
)

const (
	defaultSaveInterval = 10 * time.Second
	defaultMaxAge       = 4 * time.Hour
)

// Source is what the gateway serializes: the engine exposes a read-only
// snapshot plus its running flag.
type Source interface {
	Snapshot() (domain.SessionSnapshot, bool)
	Running() bool
}

// Gateway owns snapshot persistence policy: periodic best-effort saves while
// the engine is active, one final save on shutdown, and staleness evaluation
// on restore. Persistence failures are logged and swallowed; the engine
// degrades to in-memory state rather than halting monitoring.
type Gateway struct {
	store    Store
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	maxAge   time.Duration
	now      func() time.Time
}

// NewGateway constructs a gateway with the default cadence (10s saves, 4h
// staleness cutoff) when zero values are passed.
func NewGateway(store Store, logger *slog.Logger, recorder *metrics.Recorder, interval, maxAge time.Duration) *Gateway {
	if interval <= 0 {
		interval = defaultSaveInterval
	}
	if maxAge <= 0 {
		maxAge = defaultMaxAge
	}
	return &Gateway{
		store:    store,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		maxAge:   maxAge,
		now:      time.Now,
	}
}

// Run drives the autosave loop until the context is cancelled, then issues
// the final save. Intended to run on its own goroutine; it only reads the
// source, never mutates it.
func (g *Gateway) Run(ctx context.Context, src Source) {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.SaveNow(context.Background(), src)
			logging.Info(g.logger, "session autosave stopped")
			return
		case <-ticker.C:
			if src.Running() {
				g.SaveNow(ctx, src)
			}
		}
	}
}

// SaveNow serializes and persists the current model, best-effort. Sessions
// with no completed analysis are skipped as not worth persisting.
func (g *Gateway) SaveNow(ctx context.Context, src Source) {
	snap, ok := src.Snapshot()
	if !ok {
		return
	}

	start := time.Now()
	err := g.store.Save(ctx, snap)
	g.metrics.RecordSnapshotSave(time.Since(start), err)
	if err != nil {
		logging.Error(g.logger, "session save failed, continuing in-memory", err,
			logging.FieldGameID, snap.GameID,
		)
		return
	}
	logging.Info(g.logger, "session saved",
		logging.FieldGameID, snap.GameID,
		logging.FieldCount, len(snap.Players),
	)
}

// Restore loads the snapshot for a game and evaluates staleness: snapshots
// last updated within the cutoff restore; older ones report ErrStale and the
// caller initializes fresh. This bounds how long a stale partial game can
// silently resurface after a multi-hour gap.
func (g *Gateway) Restore(ctx context.Context, gameID string) (domain.SessionSnapshot, error) {
	snap, err := g.store.Load(ctx, gameID)
	if errors.Is(err, ErrNotFound) {
		g.metrics.RecordSnapshotLoad(nil)
		return domain.SessionSnapshot{}, err
	}
	if err != nil {
		g.metrics.RecordSnapshotLoad(err)
		logging.Error(g.logger, "session load failed, starting fresh", err,
			logging.FieldGameID, gameID,
		)
		return domain.SessionSnapshot{}, err
	}
	g.metrics.RecordSnapshotLoad(nil)

	if g.now().Sub(snap.UpdatedAt) > g.maxAge {
		logging.Info(g.logger, "session snapshot stale, not restoring",
			logging.FieldGameID, gameID,
			"age", g.now().Sub(snap.UpdatedAt).String(),
		)
		return domain.SessionSnapshot{}, ErrStale
	}
	return snap, nil
}

// Clear deletes the persisted snapshot; the caller reinitializes roster
// state from scratch.
func (g *Gateway) Clear(ctx context.Context, gameID string) error {
	return g.store.Delete(ctx, gameID)
}
