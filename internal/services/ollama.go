package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jwebster45206/ascent-engine/pkg/chat"
)

const OllamaBaseURL = "http://localhost:11434"

// OllamaService implements LLMService against a self-hosted Ollama server.
type OllamaService struct {
	baseURL            string
	modelName          string
	reasoningModelName string
	httpClient         *http.Client
	pullClient         *http.Client
	retryDelay         time.Duration
	logger             *slog.Logger
}

type ollamaChatRequest struct {
	Model    string             `json:"model"`
	Messages []chat.ChatMessage `json:"messages"`
	Stream   bool               `json:"stream"`
	Format   string             `json:"format,omitempty"`
}

type ollamaChatResponse struct {
	Model   string `json:"model"`
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Error string `json:"error,omitempty"`
}

// NewOllamaService creates a new Ollama service instance.
// An empty baseURL targets a local server.
func NewOllamaService(baseURL, modelName, reasoningModelName string, timeout time.Duration, logger *slog.Logger) *OllamaService {
	if baseURL == "" {
		baseURL = OllamaBaseURL
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OllamaService{
		baseURL:            strings.TrimRight(baseURL, "/"),
		modelName:          modelName,
		reasoningModelName: reasoningModelName,
		httpClient:         &http.Client{Timeout: timeout},
		// Pulling a model can take a while
		pullClient: &http.Client{Timeout: 10 * time.Minute},
		retryDelay: 2 * time.Second,
		logger:     logger,
	}
}

// InitModel waits for the server and pulls every configured model it
// does not have yet.
func (s *OllamaService) InitModel(ctx context.Context, modelName string) error {
	s.logger.Info("Initializing LLM model", "model", modelName)

	if err := s.waitForOllamaReady(ctx); err != nil {
		return fmt.Errorf("ollama service is not ready: %w", err)
	}

	models := []string{modelName}
	if s.reasoningModelName != "" && s.reasoningModelName != modelName {
		models = append(models, s.reasoningModelName)
	}
	for _, m := range models {
		ready, err := s.isModelReady(ctx, m)
		if err != nil {
			return fmt.Errorf("failed to check model readiness: %w", err)
		}
		if ready {
			s.logger.Info("Model already available", "model", m)
			continue
		}
		s.logger.Info("Model not found, pulling it", "model", m)
		if err := s.pullModel(ctx, m); err != nil {
			return fmt.Errorf("failed to pull model %s: %w", m, err)
		}
		s.logger.Info("Model pulled successfully", "model", m)
	}
	return nil
}

func (s *OllamaService) Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	return s.chat(ctx, messages, s.modelName)
}

func (s *OllamaService) Reason(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	model := s.modelName
	if s.reasoningModelName != "" {
		model = s.reasoningModelName
	}
	return s.chat(ctx, messages, model)
}

func (s *OllamaService) chat(ctx context.Context, messages []chat.ChatMessage, modelName string) (*chat.ChatResponse, error) {
	if err := chat.Validate(messages); err != nil {
		return nil, err
	}

	jsonBody, err := json.Marshal(ollamaChatRequest{
		Model:    modelName,
		Messages: messages,
		Stream:   false,
		Format:   "json",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/chat", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("Ollama API returned error",
			"status_code", resp.StatusCode,
			"response_body", string(body))
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var ollamaResp ollamaChatResponse
	if err := json.Unmarshal(body, &ollamaResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if ollamaResp.Error != "" {
		return nil, fmt.Errorf("API error: %s", ollamaResp.Error)
	}
	if ollamaResp.Message.Content == "" {
		return nil, fmt.Errorf("no text content found in response")
	}

	s.logger.Debug("LLM completion finished",
		"model", modelName,
		"duration", time.Since(start))

	return &chat.ChatResponse{
		Message: ollamaResp.Message.Content,
		Model:   modelName,
	}, nil
}

// isModelReady checks if the specified model is available
func (s *OllamaService) isModelReady(ctx context.Context, modelName string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}

	var tagsResp struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tagsResp); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	for _, model := range tagsResp.Models {
		// Ollama reports untagged models as "name:latest"
		if model.Name == modelName || model.Name == modelName+":latest" {
			return true, nil
		}
	}
	return false, nil
}

func (s *OllamaService) pullModel(ctx context.Context, modelName string) error {
	jsonBody, err := json.Marshal(map[string]any{
		"model":  modelName,
		"stream": false,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/pull", bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.pullClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}
	return nil
}

// waitForOllamaReady polls the server until it answers or ctx ends.
func (s *OllamaService) waitForOllamaReady(ctx context.Context) error {
	const maxRetries = 5

	for i := 0; i < maxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := s.httpClient.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				s.logger.Info("Ollama service is ready")
				return nil
			}
			s.logger.Debug("Ollama returned non-200 status", "status", resp.StatusCode, "attempt", i+1)
		} else {
			s.logger.Debug("Ollama not ready yet", "error", err, "attempt", i+1)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryDelay):
		}
	}

	return fmt.Errorf("ollama service did not become ready after %d attempts", maxRetries)
}
