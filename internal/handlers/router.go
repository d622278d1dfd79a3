package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/ascent-engine/pkg/storage"
	"github.com/redis/go-redis/v9"
)

// RouterConfig names what the API routes are served from.
type RouterConfig struct {
	Engine      GameEngine
	Store       storage.Storage
	LLMProvider string
	RedisClient *redis.Client // enables /api/events when set
	Logger      *slog.Logger
}

// NewRouter registers every API route on a new ServeMux.
func NewRouter(cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/health", NewHealthHandler(cfg.Store, cfg.LLMProvider, cfg.Logger))
	mux.Handle("/api/init", NewInitHandler(cfg.Engine, cfg.Logger))
	mux.Handle("/api/generate", NewGenerateHandler(cfg.Engine, cfg.Logger))
	mux.Handle("/api/state", NewGameStateHandler(cfg.Engine, cfg.Logger))
	if cfg.RedisClient != nil {
		mux.Handle("/api/events", NewEventsHandler(cfg.RedisClient, cfg.Logger))
	}
	return mux
}
