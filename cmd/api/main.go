package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/ascent-engine/internal/config"
	"github.com/jwebster45206/ascent-engine/internal/handlers"
	"github.com/jwebster45206/ascent-engine/internal/logger"
	"github.com/jwebster45206/ascent-engine/internal/middleware"
	"github.com/jwebster45206/ascent-engine/internal/services"
	"github.com/jwebster45206/ascent-engine/internal/services/events"
	internalstorage "github.com/jwebster45206/ascent-engine/internal/storage"
	"github.com/jwebster45206/ascent-engine/internal/telemetry"
	"github.com/jwebster45206/ascent-engine/pkg/engine"
	"github.com/jwebster45206/ascent-engine/pkg/oracle"
	"github.com/jwebster45206/ascent-engine/pkg/roll"
	"github.com/jwebster45206/ascent-engine/pkg/storage"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Ascent Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName,
		"storage_backend", cfg.StorageBackend)

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.OTELEndpoint)
	if err != nil {
		log.Error("Failed to set up tracing", "error", err)
		os.Exit(1)
	}

	gameOracle := newOracle(cfg, log)

	store, redisClient, err := newStorage(cfg, log)
	if err != nil {
		log.Error("Failed to open storage", "error", err, "backend", cfg.StorageBackend)
		os.Exit(1)
	}
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.Ping(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	deps := engine.Deps{
		Store:         store,
		Oracle:        gameOracle,
		OracleTimeout: cfg.OracleTimeout,
		Logger:        log,
	}
	if cfg.RNGSeed != 0 {
		deps.Rand = roll.New(cfg.RNGSeed, cfg.RNGSeed)
		log.Info("Using seeded roll source", "seed", cfg.RNGSeed)
	}
	if redisClient != nil {
		deps.Publisher = events.NewBroadcaster(redisClient, log)
	}
	gameEngine := engine.New(deps)

	mux := handlers.NewRouter(handlers.RouterConfig{
		Engine:      gameEngine,
		Store:       store,
		LLMProvider: cfg.LLMProvider,
		RedisClient: redisClient,
		Logger:      log,
	})

	handler := middleware.Logger(log, mux)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: turns wait on the oracle and SSE streams stay open
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Error flushing traces", "error", err)
	}

	log.Info("Server exited")
}

func newOracle(cfg *config.Config, log *slog.Logger) engine.Oracle {
	var llmService services.LLMService
	switch cfg.LLMProvider {
	case config.ProviderAnthropic:
		llmService = services.NewAnthropicService(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.ModelName, cfg.ReasoningModelName, cfg.OracleTimeout, log)
	case config.ProviderOpenAI:
		baseURL := cfg.LLMBaseURL
		if baseURL == "" {
			baseURL = services.OpenAIBaseURL
		}
		llmService = services.NewOpenAIService(cfg.LLMAPIKey, baseURL, cfg.ModelName, cfg.ReasoningModelName, cfg.OracleTimeout, log)
	case config.ProviderOllama:
		llmService = services.NewOllamaService(cfg.LLMBaseURL, cfg.ModelName, cfg.ReasoningModelName, cfg.OracleTimeout, log)
	case config.ProviderDeepSeek:
		llmService = services.NewOpenAIService(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.ModelName, cfg.ReasoningModelName, cfg.OracleTimeout, log)
	default:
		log.Warn("Using mock oracle; generated content is canned")
		return oracle.NewMock()
	}
	log.Info("Using LLM provider", "provider", cfg.LLMProvider)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	if err := llmService.InitModel(ctx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}
	return oracle.NewLLMOracle(llmService, log)
}

// newStorage opens the configured backend. The redis client is returned
// when the backend is redis so events can share the connection.
func newStorage(cfg *config.Config, log *slog.Logger) (storage.Storage, *redis.Client, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		rs, err := internalstorage.NewRedisStorage(cfg.RedisURL, log)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := rs.WaitForConnection(ctx); err != nil {
			return nil, nil, err
		}
		return rs, rs.Client(), nil
	case config.BackendSQLite:
		s, err := internalstorage.NewSQLiteStorage(context.Background(), cfg.SQLitePath, log)
		return s, nil, err
	case config.BackendMemory:
		log.Warn("Using in-memory storage; the game is lost on restart")
		return storage.NewMockStorage(), nil, nil
	default:
		s, err := internalstorage.NewFileStorage(cfg.StateFile, log)
		return s, nil, err
	}
}
