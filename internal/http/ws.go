package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"scout-engine/internal/domain"
	"scout-engine/internal/engine"
	"scout-engine/internal/logging"
)

const (
	wsReadLimit  = 1 << 20
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 45 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The vision collaborator connects from a separate origin.
		return true
	},
}

// wsAck is sent back after each ingested batch so the vision side can pace
// its captures.
type wsAck struct {
	Status       string `json:"status"`
	Observations int    `json:"observations"`
	CaptureRate  int    `json:"captureRate"`
	Locked       bool   `json:"locked"`
}

// ObservationSocket ingests vision observation batches over a WebSocket. Each
// text message is one JSON batch; each batch is acknowledged with the current
// capture rate so the sender can adapt.
type ObservationSocket struct {
	eng    *engine.Engine
	logger *slog.Logger
}

// NewObservationSocket constructs the WebSocket ingest endpoint.
func NewObservationSocket(eng *engine.Engine, logger *slog.Logger) *ObservationSocket {
	return &ObservationSocket{eng: eng, logger: logger}
}

// Serve upgrades the connection and pumps observation batches into the engine
// until the client disconnects.
func (s *ObservationSocket) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("websocket upgrade failed", "err", err)
		}
		return
	}

	connID := uuid.NewString()
	logger := loggerFromContext(r, s.logger)
	if logger != nil {
		logger = logger.With("conn_id", connID)
		logger.Info("vision stream connected")
	}

	go s.pingLoop(conn)
	s.readLoop(conn, logger)
}

func (s *ObservationSocket) readLoop(conn *websocket.Conn, logger *slog.Logger) {
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			if logger != nil {
				logger.Info("vision stream closed", "err", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var batch []domain.VisionObservation
		if err := json.Unmarshal(payload, &batch); err != nil {
			if logger != nil {
				logger.Warn("malformed observation batch", "err", err)
			}
			continue
		}

		s.eng.IngestObservations(batch)
		if logger != nil {
			logger.Debug("vision batch ingested", logging.FieldCount, len(batch))
		}

		ack := wsAck{
			Status:       "accepted",
			Observations: len(batch),
			CaptureRate:  s.eng.CaptureRate(),
			Locked:       s.eng.IsHalftimeLocked(),
		}
		if err := conn.WriteJSON(ack); err != nil {
			return
		}
	}
}

func (s *ObservationSocket) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
			return
		}
	}
}
