package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/ascent-engine/pkg/engine"
)

// InitHandler starts a new game, replacing any game in progress.
// POST /api/init
type InitHandler struct {
	engine GameEngine
	logger *slog.Logger
}

func NewInitHandler(e GameEngine, logger *slog.Logger) *InitHandler {
	return &InitHandler{
		engine: e,
		logger: logger,
	}
}

func (h *InitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, r, h.logger, http.MethodPost)
		return
	}

	var req engine.InitRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.logger.Warn("Invalid init request body", "error", err)
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body. Expected JSON with 'worldSetting' and 'characterDescription' fields.",
		})
		return
	}

	h.logger.Info("Initializing game", "remote_addr", r.RemoteAddr)
	gs, err := h.engine.Init(r.Context(), req)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, GameResponse{
		Message: "Initialization successful",
		State:   gs,
	})
}
