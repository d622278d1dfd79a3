package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/ascent-engine/pkg/chat"
)

// MockLLMAPI is a mock implementation of LLMService for testing
type MockLLMAPI struct {
	InitModelFunc func(ctx context.Context, modelName string) error
	ChatFunc      func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
	ReasonFunc    func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)

	// Track calls for testing
	InitModelCalls []string
	ChatCalls      []LLMCall
	ReasonCalls    []LLMCall

	mu sync.Mutex // protects all fields above
}

var _ LLMService = (*MockLLMAPI)(nil)

type LLMCall struct {
	Messages []chat.ChatMessage
}

// NewMockLLMAPI creates a new mock LLM service
func NewMockLLMAPI() *MockLLMAPI {
	return &MockLLMAPI{
		InitModelCalls: make([]string, 0),
		ChatCalls:      make([]LLMCall, 0),
		ReasonCalls:    make([]LLMCall, 0),
	}
}

// InitModel mocks model initialization
func (m *MockLLMAPI) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InitModelCalls = append(m.InitModelCalls, modelName)

	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx, modelName)
	}
	return nil
}

// Chat mocks a fast-model completion
func (m *MockLLMAPI) Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ChatCalls = append(m.ChatCalls, LLMCall{Messages: messages})

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages)
	}
	return &chat.ChatResponse{Message: "{}", Model: "mock-chat"}, nil
}

// Reason mocks a reasoning-model completion
func (m *MockLLMAPI) Reason(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReasonCalls = append(m.ReasonCalls, LLMCall{Messages: messages})

	if m.ReasonFunc != nil {
		return m.ReasonFunc(ctx, messages)
	}
	return &chat.ChatResponse{Message: "{}", Model: "mock-reasoner"}, nil
}

// Reset clears all call tracking data
func (m *MockLLMAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitModelCalls = make([]string, 0)
	m.ChatCalls = make([]LLMCall, 0)
	m.ReasonCalls = make([]LLMCall, 0)
}

// SetChatResponse makes Chat return a fixed message
func (m *MockLLMAPI) SetChatResponse(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		return &chat.ChatResponse{Message: message, Model: "mock-chat"}, nil
	}
}

// SetReasonResponse makes Reason return a fixed message
func (m *MockLLMAPI) SetReasonResponse(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReasonFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		return &chat.ChatResponse{Message: message, Model: "mock-reasoner"}, nil
	}
}

// SetChatError sets up the mock to return an error on Chat
func (m *MockLLMAPI) SetChatError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		return nil, err
	}
}

// SetReasonError sets up the mock to return an error on Reason
func (m *MockLLMAPI) SetReasonError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReasonFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		return nil, err
	}
}

// GetCalls returns a copy of the call tracking data in a thread-safe way
func (m *MockLLMAPI) GetCalls() ([]string, []LLMCall, []LLMCall) {
	m.mu.Lock()
	defer m.mu.Unlock()

	initCalls := make([]string, len(m.InitModelCalls))
	copy(initCalls, m.InitModelCalls)

	chatCalls := make([]LLMCall, len(m.ChatCalls))
	copy(chatCalls, m.ChatCalls)

	reasonCalls := make([]LLMCall, len(m.ReasonCalls))
	copy(reasonCalls, m.ReasonCalls)

	return initCalls, chatCalls, reasonCalls
}
