package domain

import "strings"

// Role buckets a roster player by how the prop rules treat them.
type Role string

const (
	RolePrimary   Role = "PRIMARY"
	RoleSecondary Role = "SECONDARY"
	RoleBig       Role = "BIG"
	RoleSpacer    Role = "SPACER"
)

// RoleForPosition derives the rule role from a listed position. Derived once
// at roster initialization and immutable for the rest of the session.
func RoleForPosition(position string) Role {
	switch strings.ToUpper(strings.TrimSpace(position)) {
	case "PG", "SG", "G":
		return RolePrimary
	case "SF", "GF", "G-F", "F":
		return RoleSecondary
	case "PF", "C", "FC", "F-C", "C-F":
		return RoleBig
	default:
		return RoleSpacer
	}
}

// BoxScore is the authoritative per-player stat line. It is replaced
// wholesale on every play-by-play snapshot, never incremented.
type BoxScore struct {
	Points            int `json:"points"`
	Rebounds          int `json:"rebounds"`
	Assists           int `json:"assists"`
	Fouls             int `json:"fouls"`
	FieldGoalAttempts int `json:"fieldGoalAttempts"`
	FreeThrowAttempts int `json:"freeThrowAttempts"`
	Turnovers         int `json:"turnovers"`
	Threes            int `json:"threes"`
	Steals            int `json:"steals"`
	Blocks            int `json:"blocks"`
}

// MaxVisualFlags bounds the per-player log of qualitative observations.
const MaxVisualFlags = 5

// PlayerLiveState is the fused, continuously-updated model of one roster
// player. One record exists per roster entry for the whole session.
type PlayerLiveState struct {
	Name   string `json:"name"`
	Jersey string `json:"jersey"`
	Team   string `json:"team"`
	Role   Role   `json:"role"`

	FatigueScore         float64 `json:"fatigueScore"`
	EffortScore          float64 `json:"effortScore"`
	SpeedIndex           float64 `json:"speedIndex"`
	ReboundPositionScore float64 `json:"reboundPositionScore"`
	// FatigueSlope is derived from the trend window, in points per minute.
	FatigueSlope float64 `json:"fatigueSlope"`

	SprintCount       int `json:"sprintCount"`
	HandsOnKneesCount int `json:"handsOnKneesCount"`
	SlowRecoveryCount int `json:"slowRecoveryCount"`
	FoulCount         int `json:"foulCount"`

	Box BoxScore `json:"box"`

	// MinutesEstimate is the pre-game projected total; live minutes played
	// never overwrite it.
	MinutesEstimate float64 `json:"minutesEstimate"`
	OnCourt         bool    `json:"onCourt"`

	VisualFlags []string `json:"visualFlags"`
	LastUpdated string   `json:"lastUpdated"`
}

// AppendVisualFlag records a qualitative note, keeping only the most recent
// MaxVisualFlags entries in order.
func (p *PlayerLiveState) AppendVisualFlag(note string) {
	if note == "" {
		return
	}
	p.VisualFlags = append(p.VisualFlags, note)
	if len(p.VisualFlags) > MaxVisualFlags {
		p.VisualFlags = p.VisualFlags[len(p.VisualFlags)-MaxVisualFlags:]
	}
}

// PlayerBaseline is the optional pre-game record used to seed a roster entry.
type PlayerBaseline struct {
	Name            string  `json:"name"`
	Jersey          string  `json:"jersey"`
	Team            string  `json:"team"`
	Position        string  `json:"position"`
	Fatigue         float64 `json:"fatigue"`
	Effort          float64 `json:"effort"`
	Speed           float64 `json:"speed"`
	MinutesEstimate float64 `json:"minutesEstimate"`
	Trend           string  `json:"trend,omitempty"`
	Consistency     string  `json:"consistency,omitempty"`
}

// ClampScore bounds a condition metric to [0,100].
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
