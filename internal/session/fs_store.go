package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scout-engine/internal/domain"
)

// FSStore keeps session snapshots on the local filesystem, one JSON file per
// game under {basePath}/sessions. Useful for local runs without Redis.
type FSStore struct {
	basePath string
}

// NewFSStore constructs a filesystem-backed store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

func (s *FSStore) snapshotPath(gameID string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("session: fs store not configured")
	}
	if gameID == "" {
		return "", fmt.Errorf("session: game id required")
	}
	if strings.ContainsAny(gameID, `/\`) || gameID == "." || gameID == ".." {
		return "", fmt.Errorf("session: invalid game id %q", gameID)
	}
	return filepath.Join(s.basePath, "sessions", gameID+".json"), nil
}

// Save writes the snapshot atomically (tmp file + rename) so a crash mid-save
// never leaves a truncated snapshot behind.
func (s *FSStore) Save(ctx context.Context, snap domain.SessionSnapshot) error {
	_ = ctx
	target, err := s.snapshotPath(snap.GameID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

// Load reads the snapshot for a game, returning ErrNotFound when absent.
func (s *FSStore) Load(ctx context.Context, gameID string) (domain.SessionSnapshot, error) {
	_ = ctx
	path, err := s.snapshotPath(gameID)
	if err != nil {
		return domain.SessionSnapshot{}, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return domain.SessionSnapshot{}, ErrNotFound
	}
	if err != nil {
		return domain.SessionSnapshot{}, err
	}
	defer f.Close()

	var snap domain.SessionSnapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return domain.SessionSnapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snap, nil
}

// Delete removes the snapshot file. A missing file is not an error.
func (s *FSStore) Delete(ctx context.Context, gameID string) error {
	_ = ctx
	path, err := s.snapshotPath(gameID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
