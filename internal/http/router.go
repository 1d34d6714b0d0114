package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"scout-engine/internal/http/middleware"
	"scout-engine/internal/metrics"
)

// NewRouter registers all HTTP routes. The observation socket is optional.
func NewRouter(h *Handler, ws *ObservationSocket, logger *slog.Logger, recorder *metrics.Recorder) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(logger, recorder))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/status", h.Status)

	r.Get("/state", h.State)
	r.Get("/edges", h.Edges)
	r.Get("/halftime", h.Halftime)
	r.Route("/players", func(r chi.Router) {
		r.Get("/fatigued", h.FatiguedPlayers)
		r.Get("/{name}", h.PlayerByName)
	})

	r.Route("/ingest", func(r chi.Router) {
		r.Post("/observations", h.IngestObservations)
		r.Post("/pbp", h.IngestPlayByPlay)
		r.Post("/edges", h.IngestEdges)
		r.Post("/lock", h.ExternalLock)
	})

	r.Route("/control", func(r chi.Router) {
		r.Post("/start", h.StartMonitoring)
		r.Post("/stop", h.StopMonitoring)
		r.Post("/pause", h.PauseMonitoring)
		r.Post("/resume", h.ResumeMonitoring)
		r.Put("/capture-rate", h.SetCaptureRate)
	})

	r.Post("/session/reset", h.ResetSession)

	if ws != nil {
		r.Get("/ws/observations", ws.Serve)
	}

	return r
}
