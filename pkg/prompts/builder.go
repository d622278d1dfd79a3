package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jwebster45206/ascent-engine/pkg/chat"
	"github.com/jwebster45206/ascent-engine/pkg/world"
)

// Builder constructs chat messages for one oracle call using a fluent interface.
// The instructions become the system message; the reference object is
// serialized as JSON into the user message.
type Builder struct {
	instructions string
	reference    any
	reminders    []string
	messages     []chat.ChatMessage
}

// New creates a new prompt builder.
func New() *Builder {
	return &Builder{
		messages: make([]chat.ChatMessage, 0),
	}
}

// WithInstructions sets the task instructions.
func (b *Builder) WithInstructions(instructions string) *Builder {
	b.instructions = instructions
	return b
}

// WithReference sets the reference object handed to the model.
func (b *Builder) WithReference(reference any) *Builder {
	b.reference = reference
	return b
}

// WithReminder adds a closing reminder after the reference object.
func (b *Builder) WithReminder(reminder string) *Builder {
	if reminder != "" {
		b.reminders = append(b.reminders, reminder)
	}
	return b
}

// Build constructs and returns the final message array for LLM consumption.
func (b *Builder) Build() ([]chat.ChatMessage, error) {
	if b.instructions == "" {
		return nil, fmt.Errorf("instructions are required")
	}
	if b.reference == nil {
		return nil, fmt.Errorf("reference object is required")
	}

	b.messages = make([]chat.ChatMessage, 0, 2)
	b.messages = append(b.messages, chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: b.instructions + "\n" + OutputRules,
	})

	ref, err := json.MarshalIndent(b.reference, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reference object: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Reference Object:\n<--- Begin Reference Object --->\n")
	sb.Write(ref)
	sb.WriteString("\n<--- End Reference Object --->")
	for _, r := range b.reminders {
		sb.WriteString("\n\n" + r)
	}

	b.messages = append(b.messages, chat.ChatMessage{
		Role:    chat.ChatRoleUser,
		Content: sb.String(),
	})
	return b.messages, nil
}

// worldReference is the input of the world prompt.
type worldReference struct {
	WorldSetting     string           `json:"worldSetting"`
	PlayerBackground string           `json:"playerBackground"`
	LifeTiers        []world.LifeTier `json:"lifeTiers"`
}

// BuildWorldMessages builds the messages that refine a raw setting.
func BuildWorldMessages(worldSetting, playerBackground string, tiers []world.LifeTier) ([]chat.ChatMessage, error) {
	return New().
		WithInstructions(WorldPrompt).
		WithReference(worldReference{
			WorldSetting:     worldSetting,
			PlayerBackground: playerBackground,
			LifeTiers:        tiers,
		}).
		Build()
}

// BuildCastMessages builds the messages that generate the player and opening scene.
func BuildCastMessages(reference any) ([]chat.ChatMessage, error) {
	return New().
		WithInstructions(CastPrompt).
		WithReference(reference).
		Build()
}

// BuildProbabilityMessages builds the messages that rate an action.
func BuildProbabilityMessages(reference any) ([]chat.ChatMessage, error) {
	return New().
		WithInstructions(ProbabilityPrompt).
		WithReference(reference).
		Build()
}

// BuildSceneMessages builds the messages that generate the next scene for
// one branch of the roll.
func BuildSceneMessages(reference any, success bool, sceneID int) ([]chat.ChatMessage, error) {
	branch := "failureScene"
	if success {
		branch = "successScene"
	}
	return New().
		WithInstructions(ScenePrompt).
		WithReference(reference).
		WithReminder(fmt.Sprintf(`storyLine is %t: return only "%s" with "sceneId": %d.`, success, branch, sceneID)).
		Build()
}
