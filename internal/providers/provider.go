package providers

import (
	"context"

	"scout-engine/internal/domain"
)

// PlayByPlayProvider defines how upstream play-by-play snapshots are fetched
// and normalized for one game. Implementations should interpret an empty
// result as "no new data" rather than an error.
type PlayByPlayProvider interface {
	FetchPlayByPlay(ctx context.Context, gameID string) (domain.PlayByPlaySnapshot, error)
}

// BaselineProvider fetches the optional pre-game baseline roster.
type BaselineProvider interface {
	FetchBaselines(ctx context.Context, gameID string) ([]domain.PlayerBaseline, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	PlayByPlayProvider
	BaselineProvider
}
