package engine

import (
	"testing"
	"time"
)

var trendBase = time.Date(2025, 2, 10, 19, 30, 0, 0, time.UTC)

func TestSlopeWithFewerThanTwoReadings(t *testing.T) {
	tr := newTrendTracker()
	if got := tr.Slope("A. Example"); got != 0 {
		t.Fatalf("expected 0 slope with no readings, got %v", got)
	}
	tr.Record("A. Example", 20, trendBase)
	if got := tr.Slope("A. Example"); got != 0 {
		t.Fatalf("expected 0 slope with one reading, got %v", got)
	}
}

func TestSlopeZeroElapsed(t *testing.T) {
	tr := newTrendTracker()
	tr.Record("A. Example", 20, trendBase)
	tr.Record("A. Example", 60, trendBase)
	if got := tr.Slope("A. Example"); got != 0 {
		t.Fatalf("expected guarded 0 slope for zero elapsed time, got %v", got)
	}
}

func TestSlopePointsPerMinute(t *testing.T) {
	tr := newTrendTracker()
	tr.Record("A. Example", 15, trendBase)
	tr.Record("A. Example", 25, trendBase.Add(time.Minute))
	tr.Record("A. Example", 35, trendBase.Add(2*time.Minute))

	if got := tr.Slope("A. Example"); got != 10 {
		t.Fatalf("expected 10 points/min, got %v", got)
	}
}

func TestWindowEvictsOldestReadings(t *testing.T) {
	tr := newTrendTracker()
	// Seven readings one minute apart; only the last five should count.
	scores := []float64{0, 5, 10, 20, 30, 40, 50}
	for i, s := range scores {
		tr.Record("A. Example", s, trendBase.Add(time.Duration(i)*time.Minute))
	}

	// Window holds scores 10..50 over 4 minutes.
	if got := tr.Slope("A. Example"); got != 10 {
		t.Fatalf("expected windowed slope 10, got %v", got)
	}
	if len(tr.readings["A. Example"]) != trendWindow {
		t.Fatalf("expected window of %d readings, got %d", trendWindow, len(tr.readings["A. Example"]))
	}
}

func TestTrackerIsolatesPlayers(t *testing.T) {
	tr := newTrendTracker()
	tr.Record("A. Example", 10, trendBase)
	tr.Record("A. Example", 30, trendBase.Add(time.Minute))
	tr.Record("B. Other", 90, trendBase)

	if got := tr.Slope("A. Example"); got != 20 {
		t.Fatalf("expected slope 20, got %v", got)
	}
	if got := tr.Slope("B. Other"); got != 0 {
		t.Fatalf("expected isolated history for second player, got %v", got)
	}
}

func TestResetDropsHistory(t *testing.T) {
	tr := newTrendTracker()
	tr.Record("A. Example", 10, trendBase)
	tr.Record("A. Example", 30, trendBase.Add(time.Minute))
	tr.Reset()
	if got := tr.Slope("A. Example"); got != 0 {
		t.Fatalf("expected 0 slope after reset, got %v", got)
	}
}
