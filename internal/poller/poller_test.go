package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"scout-engine/internal/domain"
	"scout-engine/internal/metrics"
)

type stubProvider struct {
	snap   domain.PlayByPlaySnapshot
	err    error
	calls  atomic.Int64
	notify chan struct{}
}

func (s *stubProvider) FetchPlayByPlay(ctx context.Context, gameID string) (domain.PlayByPlaySnapshot, error) {
	_ = ctx
	_ = gameID
	s.calls.Add(1)
	if s.notify != nil {
		select {
		case s.notify <- struct{}{}:
		default:
		}
	}
	if s.err != nil {
		return domain.PlayByPlaySnapshot{}, s.err
	}
	return s.snap, nil
}

type stubIngestor struct {
	mu    sync.Mutex
	snaps []domain.PlayByPlaySnapshot
	rate  int
}

func (s *stubIngestor) IngestPlayByPlay(snap domain.PlayByPlaySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = append(s.snaps, snap)
}

func (s *stubIngestor) CaptureRate() int {
	return s.rate
}

func (s *stubIngestor) ingested() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snaps)
}

func TestPollerFetchesAndIngests(t *testing.T) {
	provider := &stubProvider{
		snap:   domain.PlayByPlaySnapshot{GameClock: "6:00", Period: 2, Players: []domain.PlayerLine{{Name: "Jane Doe"}}},
		notify: make(chan struct{}, 1),
	}
	ingestor := &stubIngestor{rate: 1}

	p := New(provider, ingestor, nil, nil, "game-1", 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)

	select {
	case <-provider.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial fetch")
	}

	time.Sleep(30 * time.Millisecond) // allow at least one timer fire

	cancel()
	_ = p.Stop(context.Background())

	if ingestor.ingested() < 1 {
		t.Fatal("expected at least one snapshot ingested")
	}
	ingestor.mu.Lock()
	first := ingestor.snaps[0]
	ingestor.mu.Unlock()
	if first.Period != 2 || len(first.Players) != 1 {
		t.Fatalf("unexpected snapshot %+v", first)
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	provider := &stubProvider{notify: make(chan struct{}, 1)}
	ingestor := &stubIngestor{rate: 1}

	p := New(provider, ingestor, nil, nil, "game-1", 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx)

	select {
	case <-provider.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial fetch")
	}

	cancel()
	_ = p.Stop(context.Background())

	callsAfterStop := provider.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if provider.calls.Load() != callsAfterStop {
		t.Fatalf("expected no additional fetches after stop; before=%d after=%d", callsAfterStop, provider.calls.Load())
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := New(&stubProvider{}, &stubIngestor{rate: 1}, nil, nil, "game-1", time.Hour)

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	p := New(&stubProvider{}, &stubIngestor{rate: 1}, nil, nil, "game-1", time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	p.Start(ctx) // should no-op

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
}

func TestPollerDefaultsInterval(t *testing.T) {
	p := New(&stubProvider{}, &stubIngestor{rate: 1}, nil, nil, "game-1", 0)
	if p.interval != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, p.interval)
	}
}

func TestPollerEffectiveIntervalScalesWithCaptureRate(t *testing.T) {
	ingestor := &stubIngestor{rate: 3}
	p := New(&stubProvider{}, ingestor, nil, nil, "game-1", 30*time.Second)

	if got := p.effectiveInterval(); got != 10*time.Second {
		t.Fatalf("expected 10s at rate 3, got %s", got)
	}

	ingestor.rate = 0
	if got := p.effectiveInterval(); got != 30*time.Second {
		t.Fatalf("expected base interval when rate is unset, got %s", got)
	}
}

func TestPollerStatusTracksFailuresAndSuccess(t *testing.T) {
	provider := &stubProvider{err: errors.New("boom")}
	ingestor := &stubIngestor{rate: 1}
	rec := metrics.NewRecorder()

	p := New(provider, ingestor, nil, rec, "game-1", time.Millisecond)
	ctx := context.Background()

	p.fetchOnce(ctx)
	status := p.Status()
	if status.ConsecutiveFailures != 1 {
		t.Fatalf("expected 1 failure, got %d", status.ConsecutiveFailures)
	}
	if status.LastError == "" {
		t.Fatalf("expected last error recorded")
	}
	if !status.LastSuccess.IsZero() {
		t.Fatalf("expected no success recorded yet")
	}
	if status.IsReady() {
		t.Fatalf("expected not ready after failure")
	}
	if ingestor.ingested() != 0 {
		t.Fatalf("expected nothing ingested on failure")
	}

	provider.err = nil
	p.fetchOnce(ctx)
	status = p.Status()
	if status.ConsecutiveFailures != 0 {
		t.Fatalf("expected failures reset, got %d", status.ConsecutiveFailures)
	}
	if status.LastSuccess.IsZero() {
		t.Fatalf("expected success timestamp")
	}
	if !status.IsReady() {
		t.Fatalf("expected ready after success")
	}

	stats := rec.Snapshot()
	if stats.PollerCycles != 2 || stats.PollerFailures != 1 {
		t.Fatalf("unexpected poller metrics %+v", stats)
	}
}

func TestPollerLogsOnErrorAndSuccess(t *testing.T) {
	provider := &stubProvider{err: errors.New("fail")}
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	p := New(provider, &stubIngestor{rate: 1}, logger, nil, "game-1", time.Second)
	p.fetchOnce(context.Background()) // should log error

	provider.err = nil
	p.fetchOnce(context.Background()) // should log info
}
