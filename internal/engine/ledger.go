package engine

import (
	"math"
	"sort"

	"scout-engine/internal/domain"
)

// Confidence smoothing weights: a new candidate moves the stored confidence
// but can never replace it outright.
const (
	smoothPriorWeight = 0.3
	smoothNewWeight   = 0.7
)

// topEdgeMinConfidence filters noise out of the read-side edge query.
const topEdgeMinConfidence = 50

type edgeKey struct {
	player string
	prop   domain.PropType
}

// Ledger holds the per-(player, prop) edge collection for one session.
// Edges are never removed within a session; stale entries persist until
// overwritten or the session resets.
type Ledger struct {
	edges []domain.PropEdge
	index map[edgeKey]int
}

func NewLedger() *Ledger {
	return &Ledger{index: make(map[edgeKey]int)}
}

// MergeCandidate folds one observed edge candidate into the ledger. First
// sightings are inserted as-is; later ones are smoothed against the stored
// confidence and classified by trend. A flipped lean invalidates the trend
// comparison, so it classifies as stable regardless of raw confidence.
func (l *Ledger) MergeCandidate(candidate domain.PropEdge) {
	key := edgeKey{player: candidate.Player, prop: candidate.Prop}
	idx, ok := l.index[key]
	if !ok {
		if candidate.Trend == "" {
			candidate.Trend = domain.TrendStable
		}
		l.index[key] = len(l.edges)
		l.edges = append(l.edges, candidate)
		return
	}

	existing := l.edges[idx]
	smoothed := int(math.Round(float64(existing.Confidence)*smoothPriorWeight + float64(candidate.Confidence)*smoothNewWeight))

	trend := domain.TrendStable
	if candidate.Lean == existing.Lean {
		switch {
		case smoothed > existing.Confidence:
			trend = domain.TrendStrengthening
		case smoothed < existing.Confidence:
			trend = domain.TrendWeakening
		}
	}

	candidate.Confidence = smoothed
	candidate.Trend = trend
	l.edges[idx] = candidate
}

// TopEdges returns edges at or above the confidence floor, strongest first,
// truncated to limit. Ties keep insertion order.
func (l *Ledger) TopEdges(limit int) []domain.PropEdge {
	result := make([]domain.PropEdge, 0, len(l.edges))
	for _, e := range l.edges {
		if e.Confidence >= topEdgeMinConfidence {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Confidence > result[j].Confidence
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// All returns a copy of every edge in insertion order.
func (l *Ledger) All() []domain.PropEdge {
	out := make([]domain.PropEdge, len(l.edges))
	copy(out, l.edges)
	return out
}

// Len reports the number of tracked (player, prop) pairs.
func (l *Ledger) Len() int {
	return len(l.edges)
}

// Restore replaces the ledger contents from a persisted snapshot.
func (l *Ledger) Restore(edges []domain.PropEdge) {
	l.edges = make([]domain.PropEdge, len(edges))
	copy(l.edges, edges)
	l.index = make(map[edgeKey]int, len(edges))
	for i, e := range l.edges {
		l.index[edgeKey{player: e.Player, prop: e.Prop}] = i
	}
}
