package engine

import (
	"time"

	"scout-engine/internal/timeutil"
)

// trendWindow bounds the per-player fatigue history used for slope math.
const trendWindow = 5

type fatigueReading struct {
	score float64
	at    time.Time
}

// trendTracker keeps a bounded history of fatigue readings per player and
// derives the rate of change across the window. It is owned by one Engine
// instance so concurrent game sessions never share history.
type trendTracker struct {
	readings map[string][]fatigueReading
}

func newTrendTracker() *trendTracker {
	return &trendTracker{readings: make(map[string][]fatigueReading)}
}

// Record appends a reading, evicting from the front once the window is full.
func (t *trendTracker) Record(player string, score float64, at time.Time) {
	history := append(t.readings[player], fatigueReading{score: score, at: at})
	if len(history) > trendWindow {
		history = history[len(history)-trendWindow:]
	}
	t.readings[player] = history
}

// Slope returns the fatigue rate of change in points per minute across the
// current window. With fewer than two readings, or zero elapsed time, it
// returns 0 rather than propagating a meaningless or infinite rate.
func (t *trendTracker) Slope(player string) float64 {
	history := t.readings[player]
	if len(history) < 2 {
		return 0
	}
	oldest := history[0]
	newest := history[len(history)-1]
	elapsed := timeutil.MinutesBetween(oldest.at, newest.at)
	if elapsed == 0 {
		return 0
	}
	return (newest.score - oldest.score) / elapsed
}

// Reset drops all history, used on session reset.
func (t *trendTracker) Reset() {
	t.readings = make(map[string][]fatigueReading)
}
