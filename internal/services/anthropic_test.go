package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jwebster45206/ascent-engine/pkg/chat"
)

func TestNewAnthropicService(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAnthropicService("test-api-key", "", "claude-sonnet", "", 0, log)

	if service.apiKey != "test-api-key" {
		t.Errorf("Expected API key %s, got %s", "test-api-key", service.apiKey)
	}
	if service.baseURL != anthropicBaseURL {
		t.Errorf("Expected default base URL %s, got %s", anthropicBaseURL, service.baseURL)
	}
	if service.httpClient == nil {
		t.Fatal("Expected HTTP client to be initialized")
	}
	if service.httpClient.Timeout != 120*time.Second {
		t.Errorf("Expected default timeout 120s, got %s", service.httpClient.Timeout)
	}
}

func TestAnthropicService_SplitChatMessages(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewAnthropicService("test-key", "", "claude-sonnet", "", 0, log)

	tests := []struct {
		name                   string
		messages               []chat.ChatMessage
		expectedSystem         string
		expectedNonSystemCount int
	}{
		{
			name: "single system message",
			messages: []chat.ChatMessage{
				{Role: chat.ChatRoleSystem, Content: "You are a narrative game system assistant."},
				{Role: chat.ChatRoleUser, Content: "Hello"},
			},
			expectedSystem:         "You are a narrative game system assistant.",
			expectedNonSystemCount: 1,
		},
		{
			name: "multiple system messages",
			messages: []chat.ChatMessage{
				{Role: chat.ChatRoleSystem, Content: "Return JSON."},
				{Role: chat.ChatRoleUser, Content: "Hello"},
				{Role: chat.ChatRoleSystem, Content: "Be concise."},
				{Role: chat.ChatRoleAgent, Content: "{}"},
			},
			expectedSystem:         "Return JSON.\n\nBe concise.",
			expectedNonSystemCount: 2,
		},
		{
			name: "no system messages",
			messages: []chat.ChatMessage{
				{Role: chat.ChatRoleUser, Content: "Hello"},
			},
			expectedSystem:         "",
			expectedNonSystemCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			systemPrompt, nonSystemMessages := service.splitChatMessages(tt.messages)

			if systemPrompt != tt.expectedSystem {
				t.Errorf("Expected system prompt '%s', got '%s'", tt.expectedSystem, systemPrompt)
			}
			if len(nonSystemMessages) != tt.expectedNonSystemCount {
				t.Errorf("Expected %d non-system messages, got %d", tt.expectedNonSystemCount, len(nonSystemMessages))
			}
			for _, msg := range nonSystemMessages {
				if msg.Role == chat.ChatRoleSystem {
					t.Error("Found system message in non-system messages")
				}
			}
		})
	}
}

func TestAnthropicService_Reason(t *testing.T) {
	var gotReq AnthropicChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"content": [{"type": "text", "text": "{\"successProbability\": "}, {"type": "text", "text": "0.5}"}],
			"model": "claude-opus",
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 20}
		}`))
	}))
	defer server.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewAnthropicService("test-key", server.URL, "claude-sonnet", "claude-opus", time.Second, log)

	resp, err := service.Reason(context.Background(), []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: "Return JSON."},
		{Role: chat.ChatRoleUser, Content: "Rate the action."},
	})
	if err != nil {
		t.Fatalf("Reason() error = %v", err)
	}
	if resp.Message != `{"successProbability": 0.5}` {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if gotReq.Model != "claude-opus" {
		t.Errorf("expected reasoning model, got %s", gotReq.Model)
	}
	if gotReq.System != "Return JSON." {
		t.Errorf("expected system prompt to be lifted, got %q", gotReq.System)
	}
	if len(gotReq.Messages) != 1 {
		t.Errorf("expected 1 conversation message, got %d", len(gotReq.Messages))
	}
}

func TestAnthropicService_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer server.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewAnthropicService("test-key", server.URL, "claude-sonnet", "", time.Second, log)

	if _, err := service.Chat(context.Background(), chat.UserMessage("hi")); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
