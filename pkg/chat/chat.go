package chat

import "fmt"

const (
	ChatRoleUser   = "user"      // Player or engine request
	ChatRoleAgent  = "assistant" // Oracle
	ChatRoleSystem = "system"    // Standing instructions
)

// ChatMessage represents a single chat message sent to an LLM provider.
// The shape follows the OpenAI chat completions API, which the other
// providers are adapted to.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is the text an LLM provider returned for one request.
type ChatResponse struct {
	Message string `json:"message"`
	Model   string `json:"model,omitempty"` // model that produced the message
}

// UserMessage wraps a prompt as a single-message conversation.
func UserMessage(prompt string) []ChatMessage {
	return []ChatMessage{{Role: ChatRoleUser, Content: prompt}}
}

// Validate checks a conversation before it is sent to a provider.
func Validate(messages []ChatMessage) error {
	if len(messages) == 0 {
		return fmt.Errorf("no messages provided")
	}
	for i, m := range messages {
		switch m.Role {
		case ChatRoleUser, ChatRoleAgent, ChatRoleSystem:
		default:
			return fmt.Errorf("message %d has unknown role %q", i, m.Role)
		}
		if m.Content == "" {
			return fmt.Errorf("message %d is empty", i)
		}
	}
	return nil
}
