package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"scout-engine/internal/testutil"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()
	snap := testutil.SessionSnapshot("game-7", time.Date(2025, 2, 10, 21, 0, 0, 0, time.UTC))

	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Load(ctx, "game-7")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.GameID != "game-7" || got.AnalysesPerformed != 5 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if got.Players["A. Example"].FatigueScore != 45 {
		t.Fatalf("player state did not round trip: %+v", got.Players)
	}
}

func TestRedisStoreUpsertOverwrites(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	snap := testutil.SessionSnapshot("game-7", time.Now().UTC())
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	snap.AwayScore = 77
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := store.Load(ctx, "game-7")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.AwayScore != 77 {
		t.Fatalf("expected upsert, got %d", got.AwayScore)
	}
}

func TestRedisStoreMissingKey(t *testing.T) {
	store, _ := newRedisStore(t)
	if _, err := store.Load(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testutil.SessionSnapshot("game-7", time.Now().UTC())); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Delete(ctx, "game-7"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if mr.Exists("scout:session:game-7") {
		t.Fatalf("expected key removed")
	}
}

func TestRedisStoreSetsTTL(t *testing.T) {
	store, mr := newRedisStore(t)
	if err := store.Save(context.Background(), testutil.SessionSnapshot("game-7", time.Now().UTC())); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if ttl := mr.TTL("scout:session:game-7"); ttl != SnapshotTTL {
		t.Fatalf("expected TTL %v, got %v", SnapshotTTL, ttl)
	}
}
