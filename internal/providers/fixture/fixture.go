package fixture

import (
	"context"
	"sync"

	"scout-engine/internal/domain"
)

// Provider returns a scripted game useful for local testing and bootstrapping.
// Each play-by-play fetch advances one step through a deterministic sequence
// that runs from the opening tip through the start of the second half.
type Provider struct {
	mu   sync.Mutex
	step int
}

// New creates a fixture provider at the start of its script.
func New() *Provider {
	return &Provider{}
}

// FetchBaselines returns a deterministic roster covering every rule role.
func (p *Provider) FetchBaselines(ctx context.Context, gameID string) ([]domain.PlayerBaseline, error) {
	_ = ctx
	_ = gameID
	return []domain.PlayerBaseline{
		{Name: "Jane Doe", Jersey: "1", Team: "BOS", Position: "PG", Fatigue: 10, Effort: 70, Speed: 65, MinutesEstimate: 34},
		{Name: "John Smith", Jersey: "23", Team: "BOS", Position: "SF", Fatigue: 15, Effort: 60, Speed: 55, MinutesEstimate: 30},
		{Name: "Marcus Tall", Jersey: "42", Team: "BOS", Position: "C", Fatigue: 20, Effort: 55, Speed: 40, MinutesEstimate: 28},
		{Name: "Ray Corner", Jersey: "7", Team: "BOS", Position: "SG", Fatigue: 12, Effort: 65, Speed: 60, MinutesEstimate: 26},
	}, nil
}

// FetchPlayByPlay returns the next snapshot in the script. Once the script is
// exhausted the final snapshot repeats.
func (p *Provider) FetchPlayByPlay(ctx context.Context, gameID string) (domain.PlayByPlaySnapshot, error) {
	_ = ctx
	_ = gameID

	p.mu.Lock()
	i := p.step
	if i < len(script)-1 {
		p.step++
	}
	p.mu.Unlock()

	return script[i], nil
}

var script = []domain.PlayByPlaySnapshot{
	{
		GameClock: "10:00", Period: 1, HomeScore: 4, AwayScore: 2,
		Players: []domain.PlayerLine{
			{Name: "Jane Doe", Jersey: "1", Team: "BOS", Position: "PG", MinutesPlayed: 2, Points: 4},
			{Name: "John Smith", Jersey: "23", Team: "BOS", Position: "SF", MinutesPlayed: 2},
			{Name: "Marcus Tall", Jersey: "42", Team: "BOS", Position: "C", MinutesPlayed: 2, Rebounds: 2},
			{Name: "Ray Corner", Jersey: "7", Team: "BOS", Position: "SG", MinutesPlayed: 2},
		},
	},
	{
		GameClock: "4:30", Period: 1, HomeScore: 18, AwayScore: 15,
		Players: []domain.PlayerLine{
			{Name: "Jane Doe", Jersey: "1", Team: "BOS", Position: "PG", MinutesPlayed: 7.5, Points: 9, Assists: 3, FieldGoalAttempts: 7},
			{Name: "John Smith", Jersey: "23", Team: "BOS", Position: "SF", MinutesPlayed: 7.5, Points: 5, Fouls: 1, FieldGoalAttempts: 4},
			{Name: "Marcus Tall", Jersey: "42", Team: "BOS", Position: "C", MinutesPlayed: 7.5, Points: 4, Rebounds: 5, FieldGoalAttempts: 3},
			{Name: "Ray Corner", Jersey: "7", Team: "BOS", Position: "SG", MinutesPlayed: 5, Points: 3, Threes: 1, FieldGoalAttempts: 2},
		},
	},
	{
		GameClock: "6:00", Period: 2, HomeScore: 38, AwayScore: 34,
		Players: []domain.PlayerLine{
			{Name: "Jane Doe", Jersey: "1", Team: "BOS", Position: "PG", MinutesPlayed: 16, Points: 14, Assists: 5, Fouls: 1, FieldGoalAttempts: 12},
			{Name: "John Smith", Jersey: "23", Team: "BOS", Position: "SF", MinutesPlayed: 14, Points: 8, Fouls: 2, FieldGoalAttempts: 7},
			{Name: "Marcus Tall", Jersey: "42", Team: "BOS", Position: "C", MinutesPlayed: 15, Points: 8, Rebounds: 8, Fouls: 1, FieldGoalAttempts: 6},
			{Name: "Ray Corner", Jersey: "7", Team: "BOS", Position: "SG", MinutesPlayed: 10, Points: 6, Threes: 2, FieldGoalAttempts: 4},
		},
	},
	{
		GameClock: "0:00", Period: 2, IsHalftime: true, HomeScore: 52, AwayScore: 49,
		Players: []domain.PlayerLine{
			{Name: "Jane Doe", Jersey: "1", Team: "BOS", Position: "PG", MinutesPlayed: 21, Points: 18, Assists: 6, Fouls: 1, FieldGoalAttempts: 15},
			{Name: "John Smith", Jersey: "23", Team: "BOS", Position: "SF", MinutesPlayed: 18, Points: 11, Rebounds: 3, Fouls: 3, FieldGoalAttempts: 9},
			{Name: "Marcus Tall", Jersey: "42", Team: "BOS", Position: "C", MinutesPlayed: 19, Points: 10, Rebounds: 11, Fouls: 2, FieldGoalAttempts: 8},
			{Name: "Ray Corner", Jersey: "7", Team: "BOS", Position: "SG", MinutesPlayed: 13, Points: 9, Threes: 3, FieldGoalAttempts: 6},
		},
	},
	{
		GameClock: "11:00", Period: 3, HomeScore: 54, AwayScore: 51,
		Players: []domain.PlayerLine{
			{Name: "Jane Doe", Jersey: "1", Team: "BOS", Position: "PG", MinutesPlayed: 22, Points: 18, Assists: 6, Fouls: 1, FieldGoalAttempts: 15},
			{Name: "John Smith", Jersey: "23", Team: "BOS", Position: "SF", MinutesPlayed: 19, Points: 13, Rebounds: 3, Fouls: 3, FieldGoalAttempts: 10},
			{Name: "Marcus Tall", Jersey: "42", Team: "BOS", Position: "C", MinutesPlayed: 20, Points: 10, Rebounds: 12, Fouls: 2, FieldGoalAttempts: 8},
			{Name: "Ray Corner", Jersey: "7", Team: "BOS", Position: "SG", MinutesPlayed: 14, Points: 9, Threes: 3, FieldGoalAttempts: 6},
		},
	},
}
