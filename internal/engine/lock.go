package engine

import (
	"fmt"
	"math"
	"time"

	"scout-engine/internal/domain"
)

// Rule thresholds for the halftime lock computation.
const (
	lockMinutesEstimateMin = 5

	fatiguedScoreMin    = 40.0
	fatiguedSlopeMin    = 2.0 // points per minute
	energizedFatigueMax = 25.0
	energizedEffortMin  = 60.0

	poorPositionMax = 50.0
	goodPositionMin = 70.0

	foulTroubleMin = 3
)

// RiskFoulTrouble flags a locked prop whose player is one foul from sitting.
const RiskFoulTrouble = "foul_trouble"

// lockState is the one-way halftime gate. Once locked it never mutates again
// within a session; only an explicit reset returns it to unlocked.
type lockState struct {
	locked    bool
	lockTime  time.Time
	lockClock string
	props     []domain.LockedProp
}

func (s *lockState) snapshot() domain.LockSnapshot {
	props := make([]domain.LockedProp, len(s.props))
	copy(props, s.props)
	return domain.LockSnapshot{
		Locked:    s.locked,
		LockTime:  s.lockTime,
		LockClock: s.lockClock,
		Props:     props,
	}
}

func (s *lockState) restore(snap domain.LockSnapshot) {
	s.locked = snap.Locked
	s.lockTime = snap.LockTime
	s.lockClock = snap.LockClock
	s.props = make([]domain.LockedProp, len(snap.Props))
	copy(s.props, snap.Props)
}

// computeLockedProps evaluates the lock rule blocks over the roster in order.
// It is the single lock-computation path, shared by every trigger. Players
// meeting no rule are silently excluded.
func computeLockedProps(players []domain.PlayerLiveState) []domain.LockedProp {
	var props []domain.LockedProp
	for _, p := range players {
		if p.MinutesEstimate < lockMinutesEstimateMin {
			continue
		}
		if rec, ok := pointsRule(p); ok {
			props = append(props, rec)
		}
		if rec, ok := reboundsRule(p); ok {
			props = append(props, rec)
		}
	}
	return props
}

// pointsRule covers scoring props for ball-dominant roles.
func pointsRule(p domain.PlayerLiveState) (domain.LockedProp, bool) {
	if p.Role != domain.RolePrimary && p.Role != domain.RoleSecondary {
		return domain.LockedProp{}, false
	}

	fatigued := p.FatigueScore >= fatiguedScoreMin || p.FatigueSlope > fatiguedSlopeMin
	energized := p.FatigueScore < energizedFatigueMax && p.EffortScore > energizedEffortMin

	var rec domain.LockedProp
	switch {
	case fatigued:
		rec = domain.LockedProp{
			Player:     p.Name,
			Prop:       domain.PropPoints,
			Lean:       domain.LeanUnder,
			Confidence: roundConfidence(math.Min(90, 50+p.FatigueScore*0.5)),
			Reason:     fmt.Sprintf("fatigued: score %.0f, slope %.1f/min", p.FatigueScore, p.FatigueSlope),
		}
	case energized:
		rec = domain.LockedProp{
			Player:     p.Name,
			Prop:       domain.PropPoints,
			Lean:       domain.LeanOver,
			Confidence: roundConfidence(math.Min(85, 40+p.EffortScore*0.4)),
			Reason:     fmt.Sprintf("energized: fatigue %.0f, effort %.0f", p.FatigueScore, p.EffortScore),
		}
	default:
		return domain.LockedProp{}, false
	}

	if p.FoulCount >= foulTroubleMin {
		rec.RiskFlags = append(rec.RiskFlags, RiskFoulTrouble)
	}
	rec.FirstHalfBox = p.Box
	return rec, true
}

// reboundsRule covers rebound props for bigs, driven by positioning.
func reboundsRule(p domain.PlayerLiveState) (domain.LockedProp, bool) {
	if p.Role != domain.RoleBig {
		return domain.LockedProp{}, false
	}

	var rec domain.LockedProp
	switch {
	case p.ReboundPositionScore < poorPositionMax:
		rec = domain.LockedProp{
			Player:     p.Name,
			Prop:       domain.PropRebounds,
			Lean:       domain.LeanUnder,
			Confidence: roundConfidence(math.Min(90, 50+(100-p.ReboundPositionScore)*0.5)),
			Reason:     fmt.Sprintf("boxed out: position %.0f", p.ReboundPositionScore),
		}
	case p.ReboundPositionScore > goodPositionMin:
		rec = domain.LockedProp{
			Player:     p.Name,
			Prop:       domain.PropRebounds,
			Lean:       domain.LeanOver,
			Confidence: roundConfidence(math.Min(85, 40+p.ReboundPositionScore*0.4)),
			Reason:     fmt.Sprintf("strong position: %.0f", p.ReboundPositionScore),
		}
	default:
		return domain.LockedProp{}, false
	}

	if p.FoulCount >= foulTroubleMin {
		rec.RiskFlags = append(rec.RiskFlags, RiskFoulTrouble)
	}
	rec.FirstHalfBox = p.Box
	return rec, true
}

func roundConfidence(v float64) int {
	return int(math.Round(v))
}
