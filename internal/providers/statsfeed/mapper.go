package statsfeed

import (
	"strings"

	"scout-engine/internal/domain"
)

func mapSnapshot(p pbpResponse) domain.PlayByPlaySnapshot {
	players := make([]domain.PlayerLine, 0, len(p.PlayerRows))
	for _, row := range p.PlayerRows {
		players = append(players, mapPlayerRow(row))
	}
	return domain.PlayByPlaySnapshot{
		GameClock:  strings.TrimSpace(p.Clock),
		Period:     p.Period,
		HomeScore:  p.HomeScore,
		AwayScore:  p.AwayScore,
		IsHalftime: p.Halftime,
		Players:    players,
	}
}

func mapPlayerRow(r playerRow) domain.PlayerLine {
	return domain.PlayerLine{
		Name:              strings.TrimSpace(r.Name),
		Jersey:            r.Jersey,
		Team:              r.Team,
		Position:          r.Position,
		MinutesPlayed:     r.MinutesPlayed,
		Points:            r.Points,
		Rebounds:          r.Rebounds,
		Assists:           r.Assists,
		Fouls:             r.PersonalFouls,
		FieldGoalAttempts: r.FieldGoalAttempts,
		FreeThrowAttempts: r.FreeThrowAttempts,
		Turnovers:         r.Turnovers,
		Threes:            r.ThreesMade,
		Steals:            r.Steals,
		Blocks:            r.Blocks,
	}
}

func mapBaseline(r rosterRow) domain.PlayerBaseline {
	return domain.PlayerBaseline{
		Name:            strings.TrimSpace(r.Name),
		Jersey:          r.Jersey,
		Team:            r.Team,
		Position:        r.Position,
		Fatigue:         r.FatigueBaseline,
		Effort:          r.EffortBaseline,
		Speed:           r.SpeedBaseline,
		MinutesEstimate: r.MinutesEstimate,
		Trend:           r.Trend,
		Consistency:     r.Consistency,
	}
}
