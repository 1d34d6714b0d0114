package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClock parses a broadcast game-clock string ("7:42", "10:05.3", ":32")
// into minutes remaining in the period. Returns an error for anything that
// does not look like a clock.
func ParseClock(clock string) (float64, error) {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return 0, fmt.Errorf("empty clock")
	}

	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock %q", clock)
	}

	minutes := 0
	if parts[0] != "" {
		m, err := strconv.Atoi(parts[0])
		if err != nil || m < 0 {
			return 0, fmt.Errorf("invalid clock minutes %q", clock)
		}
		minutes = m
	}

	seconds, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || seconds < 0 || seconds >= 60 {
		return 0, fmt.Errorf("invalid clock seconds %q", clock)
	}

	return float64(minutes) + seconds/60, nil
}

// MinutesBetween returns the elapsed minutes from a to b, never negative.
func MinutesBetween(a, b time.Time) float64 {
	d := b.Sub(a)
	if d < 0 {
		return 0
	}
	return d.Minutes()
}
