package metrics

import (
	"sync"
	"time"
)

type engineStats struct {
	visionBatches     int
	observations      int
	pbpSnapshots      int
	lockEvents        int
	snapshotSaves     int
	snapshotSaveFails int
	snapshotLoads     int
	snapshotLoadFails int
	pollerCycles      int
	pollerFailures    int
	lastIngestLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about the engine.
// It is intentionally simple so it can be swapped for a real backend later.
type Recorder struct {
	mu    sync.Mutex
	stats engineStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{otel: otel}
}

// RecordVisionBatch tracks one ingested vision batch and how many
// observations it applied.
func (r *Recorder) RecordVisionBatch(applied int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.visionBatches++
	r.stats.observations += applied
	r.stats.lastIngestLatency = duration
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordVisionBatch(applied, duration)
	}
}

// RecordPlayByPlay tracks one ingested play-by-play snapshot.
func (r *Recorder) RecordPlayByPlay(duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.pbpSnapshots++
	r.stats.lastIngestLatency = duration
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPlayByPlay(duration)
	}
}

// RecordLock tracks a halftime lock transition.
func (r *Recorder) RecordLock(props int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.lockEvents++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordLock(props)
	}
}

// RecordSnapshotSave tracks a session snapshot write attempt.
func (r *Recorder) RecordSnapshotSave(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.snapshotSaves++
	if err != nil {
		r.stats.snapshotSaveFails++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSnapshotSave(duration, err)
	}
}

// RecordSnapshotLoad tracks a session snapshot read attempt.
func (r *Recorder) RecordSnapshotLoad(err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.snapshotLoads++
	if err != nil {
		r.stats.snapshotLoadFails++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSnapshotLoad(err)
	}
}

// RecordPollerCycle tracks one poll of the upstream play-by-play feed.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.pollerCycles++
	if err != nil {
		r.stats.pollerFailures++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPollerCycle(duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a copy of the current in-memory stats.
type Snapshot struct {
	VisionBatches     int
	Observations      int
	PBPSnapshots      int
	LockEvents        int
	SnapshotSaves     int
	SnapshotSaveFails int
	SnapshotLoads     int
	SnapshotLoadFails int
	PollerCycles      int
	PollerFailures    int
	LastIngestLatency time.Duration
}

// Snapshot returns a copy of the current stats.
func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		VisionBatches:     r.stats.visionBatches,
		Observations:      r.stats.observations,
		PBPSnapshots:      r.stats.pbpSnapshots,
		LockEvents:        r.stats.lockEvents,
		SnapshotSaves:     r.stats.snapshotSaves,
		SnapshotSaveFails: r.stats.snapshotSaveFails,
		SnapshotLoads:     r.stats.snapshotLoads,
		SnapshotLoadFails: r.stats.snapshotLoadFails,
		PollerCycles:      r.stats.pollerCycles,
		PollerFailures:    r.stats.pollerFailures,
		LastIngestLatency: r.stats.lastIngestLatency,
	}
}
