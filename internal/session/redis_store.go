package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"scout-engine/internal/domain"
)

// SnapshotTTL bounds how long an abandoned session lingers in Redis. Well
// past the restore staleness cutoff, so expiry never races a valid restore.
const SnapshotTTL = 24 * time.Hour

// RedisStore keeps session snapshots in Redis, one key per game.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(gameID string) string {
	return fmt.Sprintf("scout:session:%s", gameID)
}

// Save upserts the snapshot for its game ID.
func (s *RedisStore) Save(ctx context.Context, snap domain.SessionSnapshot) error {
	if snap.GameID == "" {
		return fmt.Errorf("session: game id required")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(snap.GameID), data, SnapshotTTL).Err(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot for a game, returning ErrNotFound when absent.
func (s *RedisStore) Load(ctx context.Context, gameID string) (domain.SessionSnapshot, error) {
	if gameID == "" {
		return domain.SessionSnapshot{}, fmt.Errorf("session: game id required")
	}
	data, err := s.client.Get(ctx, sessionKey(gameID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.SessionSnapshot{}, ErrNotFound
	}
	if err != nil {
		return domain.SessionSnapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap domain.SessionSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return domain.SessionSnapshot{}, fmt.Errorf("unmarshaling snapshot: %w", err)
	}
	return snap, nil
}

// Delete removes the snapshot for a game. Deleting a missing key is not an
// error.
func (s *RedisStore) Delete(ctx context.Context, gameID string) error {
	if gameID == "" {
		return fmt.Errorf("session: game id required")
	}
	return s.client.Del(ctx, sessionKey(gameID)).Err()
}
