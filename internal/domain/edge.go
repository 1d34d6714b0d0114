package domain

// Lean is the directional call on a prop line.
type Lean string

const (
	LeanOver  Lean = "OVER"
	LeanUnder Lean = "UNDER"
)

// PropType names the stat a prop edge targets.
type PropType string

const (
	PropPoints   PropType = "points"
	PropRebounds PropType = "rebounds"
	PropAssists  PropType = "assists"
	PropThrees   PropType = "threes"
)

// EdgeTrend classifies how an edge's confidence is moving across updates.
type EdgeTrend string

const (
	TrendStrengthening EdgeTrend = "strengthening"
	TrendWeakening     EdgeTrend = "weakening"
	TrendStable        EdgeTrend = "stable"
)

// PropEdge is a directional, confidence-scored recommendation for one
// (player, prop) pair. Confidence is always the smoothed blend of the stored
// value and each new candidate; a single candidate cannot jump it unbounded.
type PropEdge struct {
	Player        string    `json:"player"`
	Prop          PropType  `json:"prop"`
	Line          float64   `json:"line"`
	Lean          Lean      `json:"lean"`
	Confidence    int       `json:"confidence"`
	ExpectedFinal float64   `json:"expectedFinal,omitempty"`
	Book          string    `json:"book,omitempty"`
	Price         string    `json:"price,omitempty"`
	Trend         EdgeTrend `json:"trend"`
}

// LockedProp is a frozen halftime recommendation, capturing the first-half
// box score at the moment of locking.
type LockedProp struct {
	Player       string   `json:"player"`
	Prop         PropType `json:"prop"`
	Lean         Lean     `json:"lean"`
	Confidence   int      `json:"confidence"`
	Reason       string   `json:"reason"`
	RiskFlags    []string `json:"riskFlags,omitempty"`
	FirstHalfBox BoxScore `json:"firstHalfBox"`
}
