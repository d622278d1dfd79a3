package prompts

import (
	"strings"
	"testing"

	"github.com/jwebster45206/ascent-engine/pkg/chat"
	"github.com/jwebster45206/ascent-engine/pkg/world"
)

func TestNew(t *testing.T) {
	builder := New()
	if builder == nil {
		t.Fatal("Expected builder to be created, got nil")
	}
	if builder.messages == nil {
		t.Error("Expected messages slice to be initialized")
	}
}

func TestBuilder_FluentInterface(t *testing.T) {
	ref := map[string]string{"playerAction": "open the door"}
	builder := New().
		WithInstructions("Rate the action.").
		WithReference(ref).
		WithReminder("Be strict.").
		WithReminder("")

	if builder.instructions != "Rate the action." {
		t.Error("WithInstructions did not set instructions")
	}
	if builder.reference == nil {
		t.Error("WithReference did not set reference")
	}
	if len(builder.reminders) != 1 {
		t.Errorf("Expected empty reminders to be skipped, got %d reminders", len(builder.reminders))
	}
}

func TestBuilder_Build_RequiresInstructions(t *testing.T) {
	_, err := New().WithReference(map[string]string{}).Build()
	if err == nil {
		t.Error("Expected error when instructions are missing")
	}
}

func TestBuilder_Build_RequiresReference(t *testing.T) {
	_, err := New().WithInstructions("x").Build()
	if err == nil {
		t.Error("Expected error when reference is missing")
	}
}

func TestBuilder_Build_MessageLayout(t *testing.T) {
	messages, err := New().
		WithInstructions("Rate the action.").
		WithReference(map[string]string{"playerAction": "open the door"}).
		WithReminder("Be strict.").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}

	system := messages[0]
	if system.Role != chat.ChatRoleSystem {
		t.Errorf("Expected first message to be system, got %s", system.Role)
	}
	if !strings.HasPrefix(system.Content, "Rate the action.") {
		t.Error("Expected system message to start with the instructions")
	}
	if !strings.Contains(system.Content, "strict JSON object") {
		t.Error("Expected system message to carry the output rules")
	}

	user := messages[1]
	if user.Role != chat.ChatRoleUser {
		t.Errorf("Expected second message to be user, got %s", user.Role)
	}
	if !strings.Contains(user.Content, `"playerAction": "open the door"`) {
		t.Errorf("Expected reference JSON in user message, got %s", user.Content)
	}
	if !strings.HasSuffix(user.Content, "Be strict.") {
		t.Error("Expected reminder at the end of the user message")
	}
}

func TestBuildWorldMessages(t *testing.T) {
	messages, err := BuildWorldMessages("A city after the outbreak", "A nurse", world.DefaultLifeTiers)
	if err != nil {
		t.Fatalf("BuildWorldMessages() error = %v", err)
	}
	if !strings.Contains(messages[0].Content, `"worldSet"`) {
		t.Error("Expected world output format in instructions")
	}
	for _, want := range []string{"A city after the outbreak", "A nurse", "Conceptual God"} {
		if !strings.Contains(messages[1].Content, want) {
			t.Errorf("Expected reference to contain %q", want)
		}
	}
}

func TestBuildSceneMessages_Branch(t *testing.T) {
	tests := []struct {
		name    string
		success bool
		want    string
	}{
		{name: "success branch", success: true, want: `return only "successScene" with "sceneId": 4.`},
		{name: "failure branch", success: false, want: `return only "failureScene" with "sceneId": 4.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages, err := BuildSceneMessages(map[string]any{"storyLine": tt.success}, tt.success, 4)
			if err != nil {
				t.Fatalf("BuildSceneMessages() error = %v", err)
			}
			if !strings.Contains(messages[1].Content, tt.want) {
				t.Errorf("Expected reminder %q, got %s", tt.want, messages[1].Content)
			}
		})
	}
}

func TestPromptsShareCreatureRules(t *testing.T) {
	for name, prompt := range map[string]string{"cast": CastPrompt, "scene": ScenePrompt} {
		if !strings.Contains(prompt, `"visibleToPlayer": false`) {
			t.Errorf("%s prompt is missing the creature visibility rule", name)
		}
	}
}

func TestBuildProbabilityAndCastMessages(t *testing.T) {
	ref := struct {
		PlayerAction string `json:"playerAction"`
	}{PlayerAction: "climb the fence"}

	prob, err := BuildProbabilityMessages(ref)
	if err != nil {
		t.Fatalf("BuildProbabilityMessages() error = %v", err)
	}
	if !strings.Contains(prob[0].Content, "successProbability") {
		t.Error("Expected probability output format in instructions")
	}
	if !strings.Contains(prob[1].Content, "climb the fence") {
		t.Error("Expected action in reference")
	}

	cast, err := BuildCastMessages(ref)
	if err != nil {
		t.Fatalf("BuildCastMessages() error = %v", err)
	}
	if !strings.Contains(cast[0].Content, "playerEquipment") {
		t.Error("Expected cast output format in instructions")
	}
}
