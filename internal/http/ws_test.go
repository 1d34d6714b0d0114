package http

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"scout-engine/internal/domain"
	"scout-engine/internal/engine"
	"scout-engine/internal/testutil"
)

func dialObservationSocket(t *testing.T, eng *engine.Engine) *websocket.Conn {
	t.Helper()

	ws := NewObservationSocket(eng, nil)
	srv := httptest.NewServer(NewRouter(NewHandler(eng, nil, nil, nil, nil), ws, nil, nil))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/observations"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestObservationSocketIngestsBatches(t *testing.T) {
	eng := engine.New("game-1", testutil.Roster())
	eng.Start()
	conn := dialObservationSocket(t, eng)

	batch := []domain.VisionObservation{
		{Player: "A. Example", Signal: domain.SignalFatigue, Value: 25},
	}
	if err := conn.WriteJSON(batch); err != nil {
		t.Fatalf("write batch: %v", err)
	}

	var ack wsAck
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&ack); err != nil {
		t.Fatalf("read ack: %v", err)
	}
	if ack.Status != "accepted" || ack.Observations != 1 {
		t.Fatalf("unexpected ack %+v", ack)
	}
	if ack.CaptureRate == 0 {
		t.Fatal("expected capture rate in ack")
	}

	player, _ := eng.PlayerState("A. Example")
	if player.FatigueScore != 40 {
		t.Fatalf("expected fatigue 40 after bump, got %v", player.FatigueScore)
	}
}

func TestObservationSocketSkipsMalformedMessages(t *testing.T) {
	eng := engine.New("game-1", testutil.Roster())
	eng.Start()
	conn := dialObservationSocket(t, eng)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write malformed: %v", err)
	}

	// A well-formed batch afterwards still gets handled.
	batch := []domain.VisionObservation{
		{Player: "B. Wing", Signal: domain.SignalEffort, Value: 20},
	}
	if err := conn.WriteJSON(batch); err != nil {
		t.Fatalf("write batch: %v", err)
	}

	var ack wsAck
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&ack); err != nil {
		t.Fatalf("read ack: %v", err)
	}
	if ack.Observations != 1 {
		t.Fatalf("unexpected ack %+v", ack)
	}

	player, _ := eng.PlayerState("B. Wing")
	if player.EffortScore != 80 {
		t.Fatalf("expected effort 80 after +20 on the 60 baseline, got %v", player.EffortScore)
	}
}
