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

const (
	DeepSeekBaseURL = "https://api.deepseek.com/v1"
	OpenAIBaseURL   = "https://api.openai.com/v1"

	DefaultOpenAITemperature = 0.7
	DefaultOpenAIMaxTokens   = 8192
)

// OpenAIService implements LLMService for any OpenAI-compatible chat
// completions API (DeepSeek, OpenAI, Venice, local gateways).
type OpenAIService struct {
	apiKey             string
	baseURL            string
	modelName          string
	reasoningModelName string
	httpClient         *http.Client
	logger             *slog.Logger
}

var _ LLMService = (*OpenAIService)(nil)

// OpenAIChatRequest represents the request structure for chat completions
type OpenAIChatRequest struct {
	Model          string                `json:"model"`
	Messages       []chat.ChatMessage    `json:"messages"`
	Temperature    float64               `json:"temperature,omitempty"`
	MaxTokens      int                   `json:"max_tokens,omitempty"`
	Stream         bool                  `json:"stream"`
	ResponseFormat *OpenAIResponseFormat `json:"response_format,omitempty"`
}

// OpenAIResponseFormat asks the provider for a bare JSON object
type OpenAIResponseFormat struct {
	Type string `json:"type"`
}

// OpenAIChatChoice represents a single choice in the response
type OpenAIChatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role             string `json:"role"`
		Content          string `json:"content"`
		ReasoningContent string `json:"reasoning_content,omitempty"`
		Refusal          string `json:"refusal,omitempty"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

// OpenAIChatResponse represents the response structure for chat completions
type OpenAIChatResponse struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []OpenAIChatChoice `json:"choices"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// NewOpenAIService creates a service for an OpenAI-compatible endpoint.
// An empty baseURL targets DeepSeek.
func NewOpenAIService(apiKey, baseURL, modelName, reasoningModelName string, timeout time.Duration, logger *slog.Logger) *OpenAIService {
	if baseURL == "" {
		baseURL = DeepSeekBaseURL
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OpenAIService{
		apiKey:             apiKey,
		baseURL:            strings.TrimRight(baseURL, "/"),
		modelName:          modelName,
		reasoningModelName: reasoningModelName,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// InitModel is a no-op; hosted providers need no warm-up
func (o *OpenAIService) InitModel(ctx context.Context, modelName string) error {
	return nil
}

func (o *OpenAIService) Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	return o.chatCompletion(ctx, messages, o.modelName, true)
}

func (o *OpenAIService) Reason(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	model := o.modelName
	if o.reasoningModelName != "" {
		model = o.reasoningModelName
	}
	// Reasoning models reject response_format on some providers
	return o.chatCompletion(ctx, messages, model, model == o.modelName)
}

// chatCompletion makes a chat completion request with the specified model
func (o *OpenAIService) chatCompletion(ctx context.Context, messages []chat.ChatMessage, modelName string, jsonMode bool) (*chat.ChatResponse, error) {
	if err := chat.Validate(messages); err != nil {
		return nil, err
	}

	request := OpenAIChatRequest{
		Model:       modelName,
		Messages:    messages,
		Temperature: DefaultOpenAITemperature,
		MaxTokens:   DefaultOpenAIMaxTokens,
		Stream:      false,
	}
	if jsonMode {
		request.ResponseFormat = &OpenAIResponseFormat{Type: "json_object"}
	}

	reqBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp OpenAIChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if chatResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned from API")
	}

	choice := chatResp.Choices[0]
	if choice.Message.Refusal != "" {
		return nil, fmt.Errorf("model refused to respond: %s", choice.Message.Refusal)
	}
	if choice.Message.Content == "" {
		return nil, fmt.Errorf("no text content found in response")
	}

	if o.logger != nil {
		o.logger.Debug("LLM completion finished",
			"model", modelName,
			"duration", time.Since(start),
			"prompt_tokens", chatResp.Usage.PromptTokens,
			"completion_tokens", chatResp.Usage.CompletionTokens,
			"finish_reason", choice.FinishReason)
	}

	return &chat.ChatResponse{
		Message: choice.Message.Content,
		Model:   modelName,
	}, nil
}
