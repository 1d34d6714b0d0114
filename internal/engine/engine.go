package engine

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"scout-engine/internal/domain"
	"scout-engine/internal/logging"
	"scout-engine/internal/metrics"
)

// Capture rate bounds, in analysis units per polling cycle.
const (
	MinCaptureRate     = 1
	MaxCaptureRate     = 5
	defaultCaptureRate = 2
)

// neutralPositionScore seeds rebound positioning before any signal arrives.
const neutralPositionScore = 50

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(e *Engine) { e.metrics = recorder }
}

// WithClock overrides the time source, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithCaptureRate sets the initial capture rate (clamped to bounds).
func WithCaptureRate(rate int) Option {
	return func(e *Engine) { e.captureRate = clampCaptureRate(rate) }
}

// Engine is the live-game state aggregation core: one instance per monitored
// game. All session state hangs off the instance so several games can run in
// one process without cross-talk. Ingestion is serialized through the write
// lock; queries and snapshot serialization take the read lock.
type Engine struct {
	mu sync.RWMutex

	gameID  string
	players map[string]*domain.PlayerLiveState
	order   []string
	trends  *trendTracker
	ledger  *Ledger
	lock    lockState
	lastPBP *domain.PlayByPlaySnapshot

	gameClock string
	period    int
	homeScore int
	awayScore int

	running     bool
	paused      bool
	captureRate int

	framesProcessed       int
	analysesPerformed     int
	skippedNonInformative int

	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// New constructs an engine for one game, seeding the roster from the
// pre-game baselines. The roster is fixed for the session.
func New(gameID string, baselines []domain.PlayerBaseline, opts ...Option) *Engine {
	e := &Engine{
		gameID:      gameID,
		trends:      newTrendTracker(),
		ledger:      NewLedger(),
		captureRate: defaultCaptureRate,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.initRoster(baselines)
	return e
}

func (e *Engine) initRoster(baselines []domain.PlayerBaseline) {
	e.players = make(map[string]*domain.PlayerLiveState, len(baselines))
	e.order = make([]string, 0, len(baselines))
	for _, b := range baselines {
		if b.Name == "" {
			continue
		}
		if _, exists := e.players[b.Name]; exists {
			continue
		}
		e.players[b.Name] = &domain.PlayerLiveState{
			Name:                 b.Name,
			Jersey:               b.Jersey,
			Team:                 b.Team,
			Role:                 domain.RoleForPosition(b.Position),
			FatigueScore:         domain.ClampScore(b.Fatigue),
			EffortScore:          domain.ClampScore(b.Effort),
			SpeedIndex:           domain.ClampScore(b.Speed),
			ReboundPositionScore: neutralPositionScore,
			MinutesEstimate:      b.MinutesEstimate,
		}
		e.order = append(e.order, b.Name)
	}
}

// GameID returns the monitored game's identifier.
func (e *Engine) GameID() string {
	return e.gameID
}

// Start activates monitoring. Idempotent.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = true
	e.paused = false
	logging.Info(e.logger, "engine started", logging.FieldGameID, e.gameID)
}

// Stop deactivates monitoring. Immediate and synchronous: each ingest step
// is short, so there is nothing in flight to wait for. The caller owning the
// persistence gateway issues the final save.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	logging.Info(e.logger, "engine stopped", logging.FieldGameID, e.gameID)
}

// Pause suspends ingestion without ending the session.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		e.paused = true
	}
}

// Resume lifts a pause.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		e.paused = false
	}
}

// Running reports whether the engine is actively monitoring.
func (e *Engine) Running() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

// SetCaptureRate adjusts the analysis cadence, clamped to [1,5], and returns
// the applied value.
func (e *Engine) SetCaptureRate(rate int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.captureRate = clampCaptureRate(rate)
	return e.captureRate
}

// CaptureRate returns the current capture rate.
func (e *Engine) CaptureRate() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.captureRate
}

func clampCaptureRate(rate int) int {
	if rate < MinCaptureRate {
		return MinCaptureRate
	}
	if rate > MaxCaptureRate {
		return MaxCaptureRate
	}
	return rate
}

// IngestObservations fuses one vision batch. Each batch counts as one frame;
// a batch that applies nothing (empty, unknown players, or the engine paused)
// counts as skipped rather than analyzed.
func (e *Engine) IngestObservations(batch []domain.VisionObservation) {
	start := time.Now()

	e.mu.Lock()
	e.framesProcessed++
	applied := 0
	if e.running && !e.paused {
		for _, obs := range batch {
			if e.applyObservation(obs) {
				applied++
			}
		}
	}
	if applied > 0 {
		e.analysesPerformed++
	} else {
		e.skippedNonInformative++
	}
	e.mu.Unlock()

	e.metrics.RecordVisionBatch(applied, time.Since(start))
}

// IngestPlayByPlay fuses one structured feed snapshot and evaluates the
// halftime lock triggers.
func (e *Engine) IngestPlayByPlay(snap domain.PlayByPlaySnapshot) {
	start := time.Now()

	e.mu.Lock()
	if !e.running || e.paused {
		e.mu.Unlock()
		return
	}
	prevPeriod := e.period
	e.applyPlayByPlay(snap)

	halftime := snap.IsHalftime || (prevPeriod == 2 && snap.Period > 2)
	if halftime && !e.lock.locked {
		e.lockNow(nil)
	}
	e.mu.Unlock()

	e.metrics.RecordPlayByPlay(time.Since(start))
}

// IngestEdgeCandidates merges upstream edge candidates into the ledger.
// The ledger keeps updating after the halftime lock for informational
// display; the lock itself never changes.
func (e *Engine) IngestEdgeCandidates(candidates []domain.PropEdge) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running || e.paused {
		return
	}
	for _, c := range candidates {
		if _, known := e.players[c.Player]; !known {
			continue
		}
		e.ledger.MergeCandidate(c)
	}
}

// ApplyExternalLock fires the halftime lock with recommendations computed
// upstream. A no-op when already locked.
func (e *Engine) ApplyExternalLock(props []domain.LockedProp) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lock.locked {
		return
	}
	e.lockNow(props)
}

// lockNow performs the one-way transition. When props is nil the locked set
// is computed from current player state. Caller holds the write lock and has
// checked the machine is unlocked.
func (e *Engine) lockNow(props []domain.LockedProp) {
	if props == nil {
		props = computeLockedProps(e.playersInOrder())
	}
	e.lock.locked = true
	e.lock.lockTime = e.now()
	e.lock.lockClock = e.gameClock
	e.lock.props = props

	e.metrics.RecordLock(len(props))
	logging.Info(e.logger, "halftime lock engaged",
		logging.FieldGameID, e.gameID,
		logging.FieldClock, e.gameClock,
		logging.FieldCount, len(props),
	)
}

func (e *Engine) playersInOrder() []domain.PlayerLiveState {
	out := make([]domain.PlayerLiveState, 0, len(e.order))
	for _, name := range e.order {
		if p, ok := e.players[name]; ok {
			out = append(out, copyPlayer(p))
		}
	}
	return out
}

func copyPlayer(p *domain.PlayerLiveState) domain.PlayerLiveState {
	cp := *p
	cp.VisualFlags = append([]string(nil), p.VisualFlags...)
	return cp
}

// PlayerState returns a copy of one player's live state.
func (e *Engine) PlayerState(name string) (domain.PlayerLiveState, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	p, ok := e.players[name]
	if !ok {
		return domain.PlayerLiveState{}, false
	}
	return copyPlayer(p), true
}

// TopEdges returns the strongest current edges, see Ledger.TopEdges.
func (e *Engine) TopEdges(limit int) []domain.PropEdge {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.TopEdges(limit)
}

// FatiguedPlayers returns players at or above the fatigue threshold in
// roster order.
func (e *Engine) FatiguedPlayers(threshold float64) []domain.PlayerLiveState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []domain.PlayerLiveState
	for _, name := range e.order {
		if p := e.players[name]; p != nil && p.FatigueScore >= threshold {
			out = append(out, copyPlayer(p))
		}
	}
	return out
}

// IsHalftimeLocked reports whether the one-way lock has fired.
func (e *Engine) IsHalftimeLocked() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lock.locked
}

// HalftimeRecommendations returns the frozen locked props, empty before the
// lock fires.
func (e *Engine) HalftimeRecommendations() []domain.LockedProp {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]domain.LockedProp, len(e.lock.props))
	copy(out, e.lock.props)
	return out
}

// StateForAPI renders the full player map as a plain keyed structure for
// transport to the vision collaborator.
func (e *Engine) StateForAPI() map[string]domain.PlayerLiveState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]domain.PlayerLiveState, len(e.players))
	for name, p := range e.players {
		out[name] = copyPlayer(p)
	}
	return out
}

// Status is a point-in-time view of engine health and counters.
type Status struct {
	GameID                string `json:"gameId"`
	Running               bool   `json:"running"`
	Paused                bool   `json:"paused"`
	Locked                bool   `json:"locked"`
	GameClock             string `json:"gameClock"`
	Period                int    `json:"period"`
	HomeScore             int    `json:"homeScore"`
	AwayScore             int    `json:"awayScore"`
	CaptureRate           int    `json:"captureRate"`
	Players               int    `json:"players"`
	TrackedEdges          int    `json:"trackedEdges"`
	FramesProcessed       int    `json:"framesProcessed"`
	AnalysesPerformed     int    `json:"analysesPerformed"`
	SkippedNonInformative int    `json:"skippedNonInformative"`
}

// Status returns current engine status and monitoring counters.
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Status{
		GameID:                e.gameID,
		Running:               e.running,
		Paused:                e.paused,
		Locked:                e.lock.locked,
		GameClock:             e.gameClock,
		Period:                e.period,
		HomeScore:             e.homeScore,
		AwayScore:             e.awayScore,
		CaptureRate:           e.captureRate,
		Players:               len(e.players),
		TrackedEdges:          e.ledger.Len(),
		FramesProcessed:       e.framesProcessed,
		AnalysesPerformed:     e.analysesPerformed,
		SkippedNonInformative: e.skippedNonInformative,
	}
}

// Snapshot serializes the session for persistence. The second return is
// false until at least one analysis has completed; an untouched session is
// not worth persisting.
func (e *Engine) Snapshot() (domain.SessionSnapshot, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	players := make(map[string]domain.PlayerLiveState, len(e.players))
	for name, p := range e.players {
		players[name] = copyPlayer(p)
	}

	var lastPBP *domain.PlayByPlaySnapshot
	if e.lastPBP != nil {
		cp := *e.lastPBP
		cp.Players = append([]domain.PlayerLine(nil), e.lastPBP.Players...)
		lastPBP = &cp
	}

	snap := domain.SessionSnapshot{
		GameID:                e.gameID,
		Players:               players,
		RosterOrder:           append([]string(nil), e.order...),
		Edges:                 e.ledger.All(),
		Lock:                  e.lock.snapshot(),
		LastPBP:               lastPBP,
		GameClock:             e.gameClock,
		Period:                e.period,
		HomeScore:             e.homeScore,
		AwayScore:             e.awayScore,
		FramesProcessed:       e.framesProcessed,
		AnalysesPerformed:     e.analysesPerformed,
		SkippedNonInformative: e.skippedNonInformative,
		UpdatedAt:             e.now(),
	}
	return snap, e.analysesPerformed > 0
}

// Restore rebuilds the session from a persisted snapshot. Trend history is
// not persisted; slopes carry their last derived value until fresh readings
// arrive.
func (e *Engine) Restore(snap domain.SessionSnapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.players = make(map[string]*domain.PlayerLiveState, len(snap.Players))
	for name, p := range snap.Players {
		cp := p
		cp.VisualFlags = append([]string(nil), p.VisualFlags...)
		e.players[name] = &cp
	}
	e.order = restoredOrder(snap.RosterOrder, e.players)

	e.trends.Reset()
	e.ledger.Restore(snap.Edges)
	e.lock.restore(snap.Lock)
	e.lastPBP = snap.LastPBP
	e.gameClock = snap.GameClock
	e.period = snap.Period
	e.homeScore = snap.HomeScore
	e.awayScore = snap.AwayScore
	e.framesProcessed = snap.FramesProcessed
	e.analysesPerformed = snap.AnalysesPerformed
	e.skippedNonInformative = snap.SkippedNonInformative

	logging.Info(e.logger, "session restored",
		logging.FieldGameID, e.gameID,
		logging.FieldCount, len(e.players),
		logging.FieldClock, e.gameClock,
	)
}

// restoredOrder rebuilds the roster iteration order from a persisted
// snapshot. Snapshots written before the order was persisted fall back to
// alphabetical. Names missing from the player map are dropped and players
// missing from the order are appended sorted, so the two always agree.
func restoredOrder(persisted []string, players map[string]*domain.PlayerLiveState) []string {
	order := make([]string, 0, len(players))
	seen := make(map[string]bool, len(players))
	for _, name := range persisted {
		if _, ok := players[name]; ok && !seen[name] {
			order = append(order, name)
			seen[name] = true
		}
	}
	if len(order) == len(players) {
		return order
	}
	rest := make([]string, 0, len(players)-len(order))
	for name := range players {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// Reset discards all session state and reinitializes the roster from fresh
// baselines. This is the only path that returns the halftime lock to
// unlocked.
func (e *Engine) Reset(baselines []domain.PlayerBaseline) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.initRoster(baselines)
	e.trends.Reset()
	e.ledger = NewLedger()
	e.lock = lockState{}
	e.lastPBP = nil
	e.gameClock = ""
	e.period = 0
	e.homeScore = 0
	e.awayScore = 0
	e.framesProcessed = 0
	e.analysesPerformed = 0
	e.skippedNonInformative = 0

	logging.Info(e.logger, "session reset", logging.FieldGameID, e.gameID)
}
