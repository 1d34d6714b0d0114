package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"scout-engine/internal/domain"
	"scout-engine/internal/engine"
	"scout-engine/internal/logging"
	"scout-engine/internal/poller"
	"scout-engine/internal/providers"
	"scout-engine/internal/session"
)

// defaultFatigueThreshold selects players worth flagging when the query does
// not override it.
const defaultFatigueThreshold = 40.0

// maxIngestBody bounds request bodies on the ingest endpoints.
const maxIngestBody = 1 << 20

// Handler wires HTTP routes to the engine.
type Handler struct {
	eng      *engine.Engine
	gateway  *session.Gateway
	provider providers.BaselineProvider
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. The gateway, provider, and status function
// are optional; the corresponding routes degrade gracefully without them.
func NewHandler(eng *engine.Engine, gateway *session.Gateway, provider providers.BaselineProvider, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		eng:      eng,
		gateway:  gateway,
		provider: provider,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	if h.statusFn().IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := h.statusFn().LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Status returns the engine's health and monitoring counters.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	_ = r
	writeJSON(w, http.StatusOK, h.eng.Status(), h.logger)
}

// State renders the full player map for the vision collaborator.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	_ = r
	payload := struct {
		GameID  string                            `json:"gameId"`
		Players map[string]domain.PlayerLiveState `json:"players"`
	}{
		GameID:  h.eng.GameID(),
		Players: h.eng.StateForAPI(),
	}
	writeJSON(w, http.StatusOK, payload, h.logger)
}

// PlayerByName returns one player's live state.
func (h *Handler) PlayerByName(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		writeError(w, r, http.StatusBadRequest, "invalid player name", h.logger)
		return
	}

	player, ok := h.eng.PlayerState(name)
	if !ok {
		writeError(w, r, http.StatusNotFound, "player not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, player, h.logger)
}

// Edges returns the strongest current prop edges.
func (h *Handler) Edges(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, r, http.StatusBadRequest, "invalid limit", h.logger)
			return
		}
		limit = parsed
	}

	edges := h.eng.TopEdges(limit)
	payload := struct {
		Edges []domain.PropEdge `json:"edges"`
		Count int               `json:"count"`
	}{Edges: edges, Count: len(edges)}
	writeJSON(w, http.StatusOK, payload, h.logger)
}

// FatiguedPlayers returns players at or above the fatigue threshold.
func (h *Handler) FatiguedPlayers(w http.ResponseWriter, r *http.Request) {
	threshold := defaultFatigueThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid threshold", h.logger)
			return
		}
		threshold = parsed
	}

	players := h.eng.FatiguedPlayers(threshold)
	payload := struct {
		Threshold float64                  `json:"threshold"`
		Players   []domain.PlayerLiveState `json:"players"`
	}{Threshold: threshold, Players: players}
	writeJSON(w, http.StatusOK, payload, h.logger)
}

// Halftime returns the lock state and frozen recommendations.
func (h *Handler) Halftime(w http.ResponseWriter, r *http.Request) {
	_ = r
	payload := struct {
		Locked          bool                `json:"locked"`
		Recommendations []domain.LockedProp `json:"recommendations"`
	}{
		Locked:          h.eng.IsHalftimeLocked(),
		Recommendations: h.eng.HalftimeRecommendations(),
	}
	writeJSON(w, http.StatusOK, payload, h.logger)
}

// IngestObservations accepts one vision batch.
func (h *Handler) IngestObservations(w http.ResponseWriter, r *http.Request) {
	var batch []domain.VisionObservation
	if !h.decodeBody(w, r, &batch) {
		return
	}

	h.eng.IngestObservations(batch)
	if logger := loggerFromContext(r, h.logger); logger != nil {
		logger.Info("vision batch ingested", logging.FieldCount, len(batch))
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "accepted", "observations": len(batch)}, h.logger)
}

// IngestPlayByPlay accepts one structured feed snapshot.
func (h *Handler) IngestPlayByPlay(w http.ResponseWriter, r *http.Request) {
	var snap domain.PlayByPlaySnapshot
	if !h.decodeBody(w, r, &snap) {
		return
	}

	h.eng.IngestPlayByPlay(snap)
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "accepted", "locked": h.eng.IsHalftimeLocked()}, h.logger)
}

// IngestEdges merges upstream edge candidates into the ledger.
func (h *Handler) IngestEdges(w http.ResponseWriter, r *http.Request) {
	var candidates []domain.PropEdge
	if !h.decodeBody(w, r, &candidates) {
		return
	}

	h.eng.IngestEdgeCandidates(candidates)
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "accepted", "candidates": len(candidates)}, h.logger)
}

// ExternalLock fires the halftime lock with upstream recommendations.
func (h *Handler) ExternalLock(w http.ResponseWriter, r *http.Request) {
	var props []domain.LockedProp
	if !h.decodeBody(w, r, &props) {
		return
	}

	h.eng.ApplyExternalLock(props)
	writeJSON(w, http.StatusOK, map[string]any{"locked": h.eng.IsHalftimeLocked()}, h.logger)
}

// StartMonitoring activates the engine.
func (h *Handler) StartMonitoring(w http.ResponseWriter, r *http.Request) {
	_ = r
	h.eng.Start()
	writeJSON(w, http.StatusOK, h.eng.Status(), h.logger)
}

// StopMonitoring deactivates the engine and persists a final snapshot.
func (h *Handler) StopMonitoring(w http.ResponseWriter, r *http.Request) {
	h.eng.Stop()
	if h.gateway != nil {
		h.gateway.SaveNow(r.Context(), h.eng)
	}
	writeJSON(w, http.StatusOK, h.eng.Status(), h.logger)
}

// PauseMonitoring suspends ingestion without ending the session.
func (h *Handler) PauseMonitoring(w http.ResponseWriter, r *http.Request) {
	_ = r
	h.eng.Pause()
	writeJSON(w, http.StatusOK, h.eng.Status(), h.logger)
}

// ResumeMonitoring lifts a pause.
func (h *Handler) ResumeMonitoring(w http.ResponseWriter, r *http.Request) {
	_ = r
	h.eng.Resume()
	writeJSON(w, http.StatusOK, h.eng.Status(), h.logger)
}

// SetCaptureRate adjusts the analysis cadence.
func (h *Handler) SetCaptureRate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Rate int `json:"rate"`
	}
	if !h.decodeBody(w, r, &body) {
		return
	}

	applied := h.eng.SetCaptureRate(body.Rate)
	writeJSON(w, http.StatusOK, map[string]int{"captureRate": applied}, h.logger)
}

// ResetSession discards all session state, reseeds the roster, and clears the
// persisted snapshot.
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	var baselines []domain.PlayerBaseline
	if h.provider != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		fetched, err := h.provider.FetchBaselines(ctx, h.eng.GameID())
		if err != nil {
			writeError(w, r, http.StatusBadGateway, "baseline fetch failed", h.logger)
			return
		}
		baselines = fetched
	}

	h.eng.Reset(baselines)
	if h.gateway != nil {
		if err := h.gateway.Clear(r.Context(), h.eng.GameID()); err != nil {
			if logger := loggerFromContext(r, h.logger); logger != nil {
				logger.Warn("session snapshot clear failed", "err", err)
			}
		}
	}
	writeJSON(w, http.StatusOK, h.eng.Status(), h.logger)
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxIngestBody))
	if err := dec.Decode(out); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return false
	}
	return true
}
