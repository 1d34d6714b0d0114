package metrics

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder()

	r.RecordVisionBatch(3, 5*time.Millisecond)
	r.RecordVisionBatch(0, 2*time.Millisecond)
	r.RecordPlayByPlay(time.Millisecond)
	r.RecordLock(4)
	r.RecordSnapshotSave(time.Millisecond, nil)
	r.RecordSnapshotSave(time.Millisecond, errors.New("redis down"))
	r.RecordSnapshotLoad(nil)

	snap := r.Snapshot()
	if snap.VisionBatches != 2 || snap.Observations != 3 {
		t.Fatalf("unexpected vision stats: %+v", snap)
	}
	if snap.PBPSnapshots != 1 {
		t.Fatalf("unexpected pbp count: %d", snap.PBPSnapshots)
	}
	if snap.LockEvents != 1 {
		t.Fatalf("unexpected lock events: %d", snap.LockEvents)
	}
	if snap.SnapshotSaves != 2 || snap.SnapshotSaveFails != 1 {
		t.Fatalf("unexpected save stats: %+v", snap)
	}
	if snap.SnapshotLoads != 1 || snap.SnapshotLoadFails != 0 {
		t.Fatalf("unexpected load stats: %+v", snap)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	r.RecordVisionBatch(1, time.Millisecond)
	r.RecordPlayByPlay(time.Millisecond)
	r.RecordLock(1)
	r.RecordSnapshotSave(time.Millisecond, nil)
	r.RecordSnapshotLoad(nil)
	r.RecordHTTPRequest("GET", "/state", 200, time.Millisecond)
	if snap := r.Snapshot(); snap.VisionBatches != 0 {
		t.Fatalf("nil recorder should report zero stats")
	}
}

func TestSetupDisabled(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder even when disabled")
	}
	if handler != nil {
		t.Fatalf("expected no handler when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown should be a no-op: %v", err)
	}
}

func TestSetupEnabled(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: true, ServiceName: "scout-test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec == nil || handler == nil {
		t.Fatalf("expected recorder and prometheus handler")
	}
	rec.RecordVisionBatch(1, time.Millisecond)
	rec.RecordHTTPRequest("GET", "/edges", 200, time.Millisecond)
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
}
