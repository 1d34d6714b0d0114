package domain

import "time"

// LockSnapshot is the persisted form of the halftime lock machine.
type LockSnapshot struct {
	Locked    bool         `json:"locked"`
	LockTime  time.Time    `json:"lockTime,omitempty"`
	LockClock string       `json:"lockClock,omitempty"`
	Props     []LockedProp `json:"props,omitempty"`
}

// SessionSnapshot is the durable serialization of one monitoring session,
// keyed by game identifier. The player arena is flattened to a plain keyed
// map so the persisted form does not depend on in-memory layout.
type SessionSnapshot struct {
	GameID  string                     `json:"gameId"`
	Players map[string]PlayerLiveState `json:"players"`
	// RosterOrder preserves the baseline roster order across a restart;
	// queries iterate players in this order.
	RosterOrder []string            `json:"rosterOrder,omitempty"`
	Edges       []PropEdge          `json:"edges"`
	Lock        LockSnapshot        `json:"lock"`
	LastPBP     *PlayByPlaySnapshot `json:"lastPlayByPlay,omitempty"`
	GameClock   string              `json:"gameClock"`
	Period      int                 `json:"period"`
	HomeScore   int                 `json:"homeScore"`
	AwayScore   int                 `json:"awayScore"`

	FramesProcessed       int `json:"framesProcessed"`
	AnalysesPerformed     int `json:"analysesPerformed"`
	SkippedNonInformative int `json:"skippedNonInformative"`

	UpdatedAt time.Time `json:"updatedAt"`
}
