package testutil

import (
	"time"

	"scout-engine/internal/domain"
)

// Roster returns a small deterministic baseline roster covering every role.
func Roster() []domain.PlayerBaseline {
	return []domain.PlayerBaseline{
		{Name: "A. Example", Jersey: "7", Team: "HOME", Position: "PG", Fatigue: 15, Effort: 50, Speed: 70, MinutesEstimate: 34},
		{Name: "B. Wing", Jersey: "13", Team: "HOME", Position: "SF", Fatigue: 20, Effort: 60, Speed: 65, MinutesEstimate: 30},
		{Name: "C. Center", Jersey: "42", Team: "HOME", Position: "C", Fatigue: 25, Effort: 55, Speed: 40, MinutesEstimate: 28},
		{Name: "D. Corner", Jersey: "3", Team: "AWAY", Position: "??", Fatigue: 10, Effort: 45, Speed: 55, MinutesEstimate: 22},
	}
}

// SessionSnapshot returns a minimal persisted session for store tests.
func SessionSnapshot(gameID string, updatedAt time.Time) domain.SessionSnapshot {
	return domain.SessionSnapshot{
		GameID: gameID,
		Players: map[string]domain.PlayerLiveState{
			"A. Example": {
				Name:            "A. Example",
				Role:            domain.RolePrimary,
				FatigueScore:    45,
				MinutesEstimate: 34,
			},
		},
		Edges: []domain.PropEdge{
			{Player: "A. Example", Prop: domain.PropPoints, Lean: domain.LeanUnder, Confidence: 70, Trend: domain.TrendStable},
		},
		GameClock:         "4:12",
		Period:            2,
		HomeScore:         48,
		AwayScore:         44,
		AnalysesPerformed: 5,
		FramesProcessed:   9,
		UpdatedAt:         updatedAt,
	}
}
