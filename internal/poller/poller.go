package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"scout-engine/internal/domain"
	"scout-engine/internal/logging"
	"scout-engine/internal/metrics"
	"scout-engine/internal/providers"
)

const defaultInterval = 15 * time.Second

// Ingestor consumes fetched play-by-play snapshots. The engine's capture rate
// scales the polling cadence: rate N polls N times per base interval.
type Ingestor interface {
	IngestPlayByPlay(snap domain.PlayByPlaySnapshot)
	CaptureRate() int
}

// Poller fetches play-by-play snapshots on an interval and feeds them to the
// engine.
type Poller struct {
	provider providers.PlayByPlayProvider
	ingestor Ingestor
	logger   *slog.Logger
	metrics  *metrics.Recorder
	gameID   string
	interval time.Duration

	timer    *time.Timer
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(provider providers.PlayByPlayProvider, ingestor Ingestor, logger *slog.Logger, recorder *metrics.Recorder, gameID string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		provider: provider,
		ingestor: ingestor,
		logger:   logger,
		metrics:  recorder,
		gameID:   gameID,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.timer = time.NewTimer(p.effectiveInterval())

	go func() {
		p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Initial fetch to warm data on boot.
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTimer()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTimer()
				p.logInfo("poller stopped")
				return
			case <-p.timer.C:
				p.fetchOnce(ctx)
				p.timer.Reset(p.effectiveInterval())
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
	})
	return nil
}

// effectiveInterval divides the base interval by the current capture rate so
// a higher rate polls more often.
func (p *Poller) effectiveInterval() time.Duration {
	rate := 1
	if p.ingestor != nil {
		if r := p.ingestor.CaptureRate(); r > 0 {
			rate = r
		}
	}
	return p.interval / time.Duration(rate)
}

func (p *Poller) fetchOnce(ctx context.Context) {
	start := time.Now()
	p.recordAttempt(start)

	snap, err := p.provider.FetchPlayByPlay(ctx, p.gameID)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		p.logError("poller fetch failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return
	}

	p.ingestor.IngestPlayByPlay(snap)
	p.recordSuccess(start)
	p.logInfo("poller refreshed play-by-play",
		logging.FieldGameID, p.gameID,
		logging.FieldPeriod, snap.Period,
		logging.FieldCount, len(snap.Players),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (p *Poller) stopTimer() {
	if p.timer != nil {
		p.timer.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	if p.logger != nil {
		p.logger.Error(msg, append(attrs, "error", err)...)
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
