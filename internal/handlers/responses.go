package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/ascent-engine/pkg/engine"
	"github.com/jwebster45206/ascent-engine/pkg/world"
)

// maxBodyBytes caps request bodies; player input is a short sentence.
const maxBodyBytes = 1 << 20

// GameEngine is the part of *engine.Engine the handlers drive.
type GameEngine interface {
	Init(ctx context.Context, req engine.InitRequest) (*world.GameState, error)
	Act(ctx context.Context, input string) (*engine.TurnResult, error)
	State(ctx context.Context) (*world.GameState, error)
	Reset(ctx context.Context) error
}

var _ GameEngine = (*engine.Engine)(nil)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// GameResponse wraps a game state returned by init and generate.
type GameResponse struct {
	Message string           `json:"message"`
	State   *world.GameState `json:"state"`
	Outcome string           `json:"outcome,omitempty"`
	Success *bool            `json:"success,omitempty"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err, "status", status)
	}
}

func writeMethodNotAllowed(w http.ResponseWriter, r *http.Request, logger *slog.Logger, allowed string) {
	logger.Warn("Method not allowed",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)
	w.Header().Set("Allow", allowed)
	writeJSON(w, logger, http.StatusMethodNotAllowed, ErrorResponse{
		Error: "Method not allowed. Supported methods: " + allowed,
	})
}

// writeEngineError maps engine errors onto status codes. Anything it does
// not recognize is a 500 without details.
func writeEngineError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var genErr *engine.GenerationError
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		logger.Warn("Invalid request", "path", r.URL.Path, "error", err)
		writeJSON(w, logger, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, engine.ErrGameOver):
		logger.Info("Action rejected after game over", "path", r.URL.Path)
		writeJSON(w, logger, http.StatusBadRequest, ErrorResponse{Error: "Game has ended"})
	case errors.Is(err, engine.ErrNoGame):
		writeJSON(w, logger, http.StatusNotFound, ErrorResponse{Error: "No game in progress. Initialize a game first."})
	case errors.As(err, &genErr):
		logger.Error("Generation failed", "path", r.URL.Path, "step", genErr.Step, "error", err)
		writeJSON(w, logger, http.StatusInternalServerError, ErrorResponse{
			Error:   "Generation failed",
			Details: genErr.Error(),
		})
	default:
		logger.Error("Request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, logger, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
