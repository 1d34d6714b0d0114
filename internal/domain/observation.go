package domain

// SignalType classifies a vision observation channel.
type SignalType string

const (
	SignalFatigue     SignalType = "fatigue"
	SignalSpeed       SignalType = "speed"
	SignalEffort      SignalType = "effort"
	SignalPositioning SignalType = "positioning"
)

// Valid reports whether the signal type is one the fusion step understands.
func (s SignalType) Valid() bool {
	switch s {
	case SignalFatigue, SignalSpeed, SignalEffort, SignalPositioning:
		return true
	}
	return false
}

// VisionObservation is one classified signal from the vision collaborator,
// targeted at a known roster player.
type VisionObservation struct {
	Player      string     `json:"player"`
	Signal      SignalType `json:"signalType"`
	Value       float64    `json:"value"`
	Observation string     `json:"observation"`
}

// PlayerLine is the per-player slice of a play-by-play snapshot.
type PlayerLine struct {
	Name              string  `json:"name"`
	Jersey            string  `json:"jersey,omitempty"`
	Team              string  `json:"team,omitempty"`
	Position          string  `json:"position,omitempty"`
	MinutesPlayed     float64 `json:"minutesPlayed"`
	Points            int     `json:"points"`
	Rebounds          int     `json:"rebounds"`
	Assists           int     `json:"assists"`
	Fouls             int     `json:"fouls"`
	FieldGoalAttempts int     `json:"fieldGoalAttempts"`
	FreeThrowAttempts int     `json:"freeThrowAttempts"`
	Turnovers         int     `json:"turnovers"`
	Threes            int     `json:"threes"`
	Steals            int     `json:"steals"`
	Blocks            int     `json:"blocks"`
}

// PlayByPlaySnapshot is one structured poll of the live game feed.
type PlayByPlaySnapshot struct {
	GameClock  string       `json:"gameClock"`
	Period     int          `json:"period"`
	HomeScore  int          `json:"homeScore"`
	AwayScore  int          `json:"awayScore"`
	IsHalftime bool         `json:"isHalftime"`
	Players    []PlayerLine `json:"players"`
}

// Box converts the line's stat fields into the authoritative box score form.
func (l PlayerLine) Box() BoxScore {
	return BoxScore{
		Points:            l.Points,
		Rebounds:          l.Rebounds,
		Assists:           l.Assists,
		Fouls:             l.Fouls,
		FieldGoalAttempts: l.FieldGoalAttempts,
		FreeThrowAttempts: l.FreeThrowAttempts,
		Turnovers:         l.Turnovers,
		Threes:            l.Threes,
		Steals:            l.Steals,
		Blocks:            l.Blocks,
	}
}
