package handlers

import (
	"log/slog"
	"net/http"
)

type GenerateRequest struct {
	Input string `json:"input"`
}

// GenerateHandler resolves one player action.
// POST /api/generate
type GenerateHandler struct {
	engine GameEngine
	logger *slog.Logger
}

func NewGenerateHandler(e GameEngine, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{
		engine: e,
		logger: logger,
	}
}

func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, r, h.logger, http.MethodPost)
		return
	}

	var req GenerateRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.logger.Warn("Invalid generate request body", "error", err)
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body. Expected JSON with 'input' field.",
		})
		return
	}

	result, err := h.engine.Act(r.Context(), req.Input)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	success := result.Roll.Success
	writeJSON(w, h.logger, http.StatusOK, GameResponse{
		Message: "Action processed successfully",
		State:   result.State,
		Outcome: result.Outcome,
		Success: &success,
	})
}
