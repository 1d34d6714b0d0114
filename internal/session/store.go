package session

import (
	"context"
	"errors"

	"scout-engine/internal/domain"
)

var (
	// ErrNotFound signals no snapshot exists for the game.
	ErrNotFound = errors.New("session: snapshot not found")
	// ErrStale signals a snapshot too old to safely restore.
	ErrStale = errors.New("session: snapshot too old to restore")
)

// Store persists session snapshots keyed by game identifier. Save is an
// idempotent upsert; a later save for the same game replaces the earlier one.
type Store interface {
	Save(ctx context.Context, snap domain.SessionSnapshot) error
	Load(ctx context.Context, gameID string) (domain.SessionSnapshot, error)
	Delete(ctx context.Context, gameID string) error
}
