package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ProviderOpenAI    = "openai"
	ProviderDeepSeek  = "deepseek"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderMock      = "mock"

	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	Port        string     `env:"PORT" envDefault:"3000"`
	Environment string     `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    slog.Level `env:"LOG_LEVEL" envDefault:"info"`

	LLMProvider        string `env:"LLM_PROVIDER" envDefault:"deepseek"`
	LLMAPIKey          string `env:"LLM_API_KEY"`
	LLMBaseURL         string `env:"LLM_BASE_URL"`
	ModelName          string `env:"MODEL_NAME"`           // required except for deepseek and mock
	ReasoningModelName string `env:"REASONING_MODEL_NAME"` // falls back to ModelName

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`
	StateFile      string `env:"STATE_FILE" envDefault:"data/gamestate.json"`
	RedisURL       string `env:"REDIS_URL" envDefault:"localhost:6379"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"data/ascent.db"`

	OracleTimeout time.Duration `env:"ORACLE_TIMEOUT" envDefault:"3m"`
	RNGSeed       uint64        `env:"RNG_SEED"` // 0 seeds from the clock

	OTELEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.LLMProvider = strings.ToLower(cfg.LLMProvider)
	cfg.StorageBackend = strings.ToLower(cfg.StorageBackend)
	cfg.applyModelDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

const (
	defaultDeepSeekModel          = "deepseek-chat"
	defaultDeepSeekReasoningModel = "deepseek-reasoner"
)

// applyModelDefaults fills model names that can be inferred from the provider.
func (c *Config) applyModelDefaults() {
	if c.LLMProvider == ProviderDeepSeek {
		if c.ModelName == "" {
			c.ModelName = defaultDeepSeekModel
		}
		if c.ReasoningModelName == "" {
			c.ReasoningModelName = defaultDeepSeekReasoningModel
		}
	}
	if c.ReasoningModelName == "" {
		c.ReasoningModelName = c.ModelName
	}
}

// Validate checks provider and backend choices and their required settings.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderOpenAI, ProviderDeepSeek, ProviderAnthropic:
		if c.LLMAPIKey == "" {
			return fmt.Errorf("LLM_API_KEY is required for provider %q", c.LLMProvider)
		}
		if c.ModelName == "" {
			return fmt.Errorf("MODEL_NAME is required for provider %q", c.LLMProvider)
		}
	case ProviderOllama:
		if c.ModelName == "" {
			return fmt.Errorf("MODEL_NAME is required for provider %q", c.LLMProvider)
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLMProvider)
	}

	switch c.StorageBackend {
	case BackendFile:
		if c.StateFile == "" {
			return fmt.Errorf("STATE_FILE is required for the file backend")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis backend")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.OracleTimeout < 0 {
		return fmt.Errorf("ORACLE_TIMEOUT must not be negative")
	}
	return nil
}
