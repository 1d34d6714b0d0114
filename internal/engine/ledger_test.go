package engine

import (
	"testing"

	"scout-engine/internal/domain"
)

func edgeCandidate(player string, prop domain.PropType, lean domain.Lean, conf int) domain.PropEdge {
	return domain.PropEdge{Player: player, Prop: prop, Line: 22.5, Lean: lean, Confidence: conf}
}

func TestMergeFirstSightingInsertsAsIs(t *testing.T) {
	l := NewLedger()
	l.MergeCandidate(edgeCandidate("A. Example", domain.PropPoints, domain.LeanUnder, 80))

	edges := l.All()
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	if edges[0].Confidence != 80 || edges[0].Trend != domain.TrendStable {
		t.Fatalf("unexpected first edge: %+v", edges[0])
	}
}

func TestMergeSmoothsAndClassifiesWeakening(t *testing.T) {
	l := NewLedger()
	l.MergeCandidate(edgeCandidate("A. Example", domain.PropPoints, domain.LeanUnder, 80))
	l.MergeCandidate(edgeCandidate("A. Example", domain.PropPoints, domain.LeanUnder, 50))

	edges := l.All()
	if len(edges) != 1 {
		t.Fatalf("expected merge in place, got %d edges", len(edges))
	}
	// round(80*0.3 + 50*0.7) = 59
	if edges[0].Confidence != 59 {
		t.Fatalf("expected smoothed confidence 59, got %d", edges[0].Confidence)
	}
	if edges[0].Trend != domain.TrendWeakening {
		t.Fatalf("expected weakening trend, got %s", edges[0].Trend)
	}
}

func TestMergeClassifiesStrengthening(t *testing.T) {
	l := NewLedger()
	l.MergeCandidate(edgeCandidate("A. Example", domain.PropPoints, domain.LeanOver, 50))
	l.MergeCandidate(edgeCandidate("A. Example", domain.PropPoints, domain.LeanOver, 90))

	edge := l.All()[0]
	// round(50*0.3 + 90*0.7) = 78
	if edge.Confidence != 78 || edge.Trend != domain.TrendStrengthening {
		t.Fatalf("unexpected edge after strengthening merge: %+v", edge)
	}
}

func TestLeanFlipIsStableEvenWithHigherConfidence(t *testing.T) {
	l := NewLedger()
	l.MergeCandidate(edgeCandidate("A. Example", domain.PropPoints, domain.LeanUnder, 55))
	l.MergeCandidate(edgeCandidate("A. Example", domain.PropPoints, domain.LeanOver, 95))

	edge := l.All()[0]
	if edge.Lean != domain.LeanOver {
		t.Fatalf("expected lean to follow the candidate, got %s", edge.Lean)
	}
	if edge.Trend != domain.TrendStable {
		t.Fatalf("directional reversal must classify stable, got %s", edge.Trend)
	}
}

func TestRepeatedCandidateConvergesWithoutOvershoot(t *testing.T) {
	l := NewLedger()
	l.MergeCandidate(edgeCandidate("A. Example", domain.PropPoints, domain.LeanUnder, 20))

	const target = 80
	prev := 20
	for i := 0; i < 10; i++ {
		l.MergeCandidate(edgeCandidate("A. Example", domain.PropPoints, domain.LeanUnder, target))
		got := l.All()[0].Confidence
		if got < prev {
			t.Fatalf("confidence regressed from %d to %d", prev, got)
		}
		if got > target {
			t.Fatalf("confidence overshot target: %d", got)
		}
		prev = got
	}
	if prev != target {
		t.Fatalf("expected convergence to %d, got %d", target, prev)
	}
}

func TestTopEdgesFilterSortTruncate(t *testing.T) {
	l := NewLedger()
	l.MergeCandidate(edgeCandidate("A. Example", domain.PropPoints, domain.LeanUnder, 72))
	l.MergeCandidate(edgeCandidate("B. Second", domain.PropRebounds, domain.LeanOver, 49))
	l.MergeCandidate(edgeCandidate("C. Third", domain.PropAssists, domain.LeanOver, 90))
	l.MergeCandidate(edgeCandidate("D. Fourth", domain.PropThrees, domain.LeanUnder, 72))

	top := l.TopEdges(2)
	if len(top) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(top))
	}
	if top[0].Player != "C. Third" {
		t.Fatalf("expected highest confidence first, got %+v", top[0])
	}
	// Tie at 72: insertion order must hold.
	if top[1].Player != "A. Example" {
		t.Fatalf("expected stable tie-break by insertion order, got %+v", top[1])
	}

	all := l.TopEdges(0)
	if len(all) != 3 {
		t.Fatalf("expected sub-floor edge excluded, got %d", len(all))
	}
}

func TestRestoreRebuildsIndex(t *testing.T) {
	l := NewLedger()
	l.Restore([]domain.PropEdge{
		edgeCandidate("A. Example", domain.PropPoints, domain.LeanUnder, 60),
		edgeCandidate("B. Second", domain.PropRebounds, domain.LeanOver, 70),
	})
	if l.Len() != 2 {
		t.Fatalf("expected 2 restored edges, got %d", l.Len())
	}

	l.MergeCandidate(edgeCandidate("B. Second", domain.PropRebounds, domain.LeanOver, 100))
	edge := l.All()[1]
	// round(70*0.3 + 100*0.7) = 91
	if edge.Confidence != 91 || edge.Trend != domain.TrendStrengthening {
		t.Fatalf("restored edge did not merge in place: %+v", edge)
	}
}
