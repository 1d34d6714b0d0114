package statsfeed

const providerName = "statsfeed"

type pbpResponse struct {
	GameID     string       `json:"game_id"`
	Clock      string       `json:"clock"`
	Period     int          `json:"period"`
	Halftime   bool         `json:"halftime"`
	HomeScore  int          `json:"home_score"`
	AwayScore  int          `json:"away_score"`
	PlayerRows []playerRow  `json:"players"`
	Meta       metaResponse `json:"meta"`
}

type playerRow struct {
	Name              string  `json:"name"`
	Jersey            string  `json:"jersey"`
	Team              string  `json:"team"`
	Position          string  `json:"position"`
	MinutesPlayed     float64 `json:"minutes_played"`
	Points            int     `json:"points"`
	Rebounds          int     `json:"rebounds"`
	Assists           int     `json:"assists"`
	PersonalFouls     int     `json:"personal_fouls"`
	FieldGoalAttempts int     `json:"field_goal_attempts"`
	FreeThrowAttempts int     `json:"free_throw_attempts"`
	Turnovers         int     `json:"turnovers"`
	ThreesMade        int     `json:"threes_made"`
	Steals            int     `json:"steals"`
	Blocks            int     `json:"blocks"`
}

type rosterResponse struct {
	GameID  string      `json:"game_id"`
	Players []rosterRow `json:"players"`
}

type rosterRow struct {
	Name            string  `json:"name"`
	Jersey          string  `json:"jersey"`
	Team            string  `json:"team"`
	Position        string  `json:"position"`
	FatigueBaseline float64 `json:"fatigue_baseline"`
	EffortBaseline  float64 `json:"effort_baseline"`
	SpeedBaseline   float64 `json:"speed_baseline"`
	MinutesEstimate float64 `json:"minutes_estimate"`
	Trend           string  `json:"trend"`
	Consistency     string  `json:"consistency"`
}

type metaResponse struct {
	Sequence int `json:"sequence"`
}
