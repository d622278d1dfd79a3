package services

import (
	"context"

	"github.com/jwebster45206/ascent-engine/pkg/chat"
)

// LLMService defines the interface for interacting with an LLM provider
type LLMService interface {
	// InitModel prepares the provider on startup
	InitModel(ctx context.Context, modelName string) error

	// Chat sends a conversation to the fast model
	Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)

	// Reason sends a conversation to the reasoning model, used for the
	// heavier generation steps (cast and scene). Providers without a separate
	// reasoning model fall back to the chat model.
	Reason(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
}
