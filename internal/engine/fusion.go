package engine

import (
	"strings"

	"scout-engine/internal/domain"
)

// sprintFatigueBump is the cross-channel rule: a sprint observed on the
// effort channel is inherently fatigue-inducing, so it always adds fatigue
// on top of the primary signal delta.
const sprintFatigueBump = 4.0

// applyObservation fuses one classified vision observation into the targeted
// player's live state. Unknown players and unknown signal types are ignored;
// the observation stream is noisy and the roster is authoritative.
// Caller holds the write lock.
func (e *Engine) applyObservation(obs domain.VisionObservation) bool {
	if !obs.Signal.Valid() {
		return false
	}
	p, ok := e.players[obs.Player]
	if !ok {
		return false
	}

	switch obs.Signal {
	case domain.SignalFatigue:
		e.bumpFatigue(p, obs.Value)
		p.AppendVisualFlag(obs.Observation)
		if isHandsOnKneesNote(obs.Observation) {
			p.HandsOnKneesCount++
		}
		if isSlowRecoveryNote(obs.Observation) {
			p.SlowRecoveryCount++
		}

	case domain.SignalEffort:
		p.EffortScore = domain.ClampScore(p.EffortScore + obs.Value)
		if isSprintNote(obs.Observation) {
			p.SprintCount++
			e.bumpFatigue(p, sprintFatigueBump)
		}

	case domain.SignalSpeed:
		p.SpeedIndex = domain.ClampScore(p.SpeedIndex + obs.Value)

	case domain.SignalPositioning:
		p.ReboundPositionScore = domain.ClampScore(p.ReboundPositionScore + obs.Value)
	}

	p.LastUpdated = e.gameClock
	return true
}

// bumpFatigue applies a fatigue delta and recomputes the slope from the
// trend window.
func (e *Engine) bumpFatigue(p *domain.PlayerLiveState, delta float64) {
	p.FatigueScore = domain.ClampScore(p.FatigueScore + delta)
	e.trends.Record(p.Name, p.FatigueScore, e.now())
	p.FatigueSlope = e.trends.Slope(p.Name)
}

// applyPlayByPlay fuses one structured feed snapshot: box scores are replaced
// wholesale (the feed is authoritative, never incremented) and on-court/foul
// state derived. MinutesEstimate is the pre-game projection and is never
// touched here. Caller holds the write lock.
func (e *Engine) applyPlayByPlay(snap domain.PlayByPlaySnapshot) {
	e.gameClock = snap.GameClock
	e.homeScore = snap.HomeScore
	e.awayScore = snap.AwayScore
	if snap.Period > 0 {
		e.period = snap.Period
	}
	e.lastPBP = &snap

	for _, line := range snap.Players {
		p, ok := e.players[line.Name]
		if !ok {
			continue
		}
		p.Box = line.Box()
		p.FoulCount = line.Fouls
		p.OnCourt = line.MinutesPlayed > 0
		p.LastUpdated = snap.GameClock
	}
}

func isSprintNote(note string) bool {
	return strings.Contains(strings.ToLower(note), "sprint")
}

func isHandsOnKneesNote(note string) bool {
	lower := strings.ToLower(note)
	return strings.Contains(lower, "hands on knees") ||
		(strings.Contains(lower, "hands") && strings.Contains(lower, "knees"))
}

func isSlowRecoveryNote(note string) bool {
	lower := strings.ToLower(note)
	if !strings.Contains(lower, "slow") {
		return false
	}
	return strings.Contains(lower, "recover") || strings.Contains(lower, "getting back")
}
