package handlers

import (
	"log/slog"
	"net/http"
)

// GameStateHandler exposes the persisted document.
// Routes:
// GET /api/state    - full document, hidden creatures included
// DELETE /api/state - discard the game so a new one can start
type GameStateHandler struct {
	engine GameEngine
	logger *slog.Logger
}

func NewGameStateHandler(e GameEngine, logger *slog.Logger) *GameStateHandler {
	return &GameStateHandler{
		engine: e,
		logger: logger,
	}
}

func (h *GameStateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		gs, err := h.engine.State(r.Context())
		if err != nil {
			writeEngineError(w, r, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, gs)

	case http.MethodDelete:
		if err := h.engine.Reset(r.Context()); err != nil {
			writeEngineError(w, r, h.logger, err)
			return
		}
		h.logger.Info("Game state deleted", "remote_addr", r.RemoteAddr)
		w.WriteHeader(http.StatusNoContent)

	default:
		writeMethodNotAllowed(w, r, h.logger, "GET, DELETE")
	}
}
