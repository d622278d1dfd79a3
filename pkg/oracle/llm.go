package oracle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/ascent-engine/internal/services"
	"github.com/jwebster45206/ascent-engine/pkg/chat"
	"github.com/jwebster45206/ascent-engine/pkg/prompts"
	"github.com/jwebster45206/ascent-engine/pkg/world"
)

// LLMOracle answers oracle requests with a language model. World and
// probability requests go to the fast model; cast and scene requests go to
// the reasoning model.
type LLMOracle struct {
	llm    services.LLMService
	logger *slog.Logger
}

// NewLLMOracle creates an oracle over the given LLM service.
func NewLLMOracle(llm services.LLMService, logger *slog.Logger) *LLMOracle {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMOracle{llm: llm, logger: logger}
}

type completion func(context.Context, []chat.ChatMessage) (*chat.ChatResponse, error)

// ask sends messages and decodes the reply into v.
func (o *LLMOracle) ask(ctx context.Context, label string, call completion, messages []chat.ChatMessage, v any) error {
	resp, err := call(ctx, messages)
	if err != nil {
		return fmt.Errorf("failed to get %s response: %w", label, err)
	}
	o.logger.Debug("Oracle response", "label", label, "model", resp.Model, "response", resp.Message)

	if err := decodeJSON(resp.Message, v); err != nil {
		o.logger.Warn("Failed to decode oracle response", "label", label, "error", err)
		return fmt.Errorf("failed to decode %s response: %w", label, err)
	}
	return nil
}

func (o *LLMOracle) World(ctx context.Context, worldSetting, characterDescription string, tiers []world.LifeTier) (*WorldResult, error) {
	messages, err := prompts.BuildWorldMessages(worldSetting, characterDescription, tiers)
	if err != nil {
		return nil, fmt.Errorf("failed to build world prompt: %w", err)
	}

	var result WorldResult
	if err := o.ask(ctx, "world", o.llm.Chat, messages, &result); err != nil {
		return nil, err
	}
	if result.WorldSet == "" {
		return nil, fmt.Errorf("failed to decode world response: %w: empty worldSet", ErrMalformedResponse)
	}
	if len(result.WorldLife) == 0 {
		result.WorldLife = world.DefaultLifeTiers
	}
	return &result, nil
}

func (o *LLMOracle) Cast(ctx context.Context, w *WorldResult) (*CastResult, error) {
	messages, err := prompts.BuildCastMessages(w)
	if err != nil {
		return nil, fmt.Errorf("failed to build cast prompt: %w", err)
	}

	var result CastResult
	if err := o.ask(ctx, "cast", o.llm.Reason, messages, &result); err != nil {
		return nil, err
	}
	if _, ok := result.OpeningScene(); !ok {
		return nil, fmt.Errorf("failed to decode cast response: %w: no opening scene", ErrMalformedResponse)
	}
	return &result, nil
}

func (o *LLMOracle) Probability(ctx context.Context, pc *ProbabilityContext) (*ProbabilityResult, error) {
	messages, err := prompts.BuildProbabilityMessages(pc)
	if err != nil {
		return nil, fmt.Errorf("failed to build probability prompt: %w", err)
	}

	var result ProbabilityResult
	if err := o.ask(ctx, "probability", o.llm.Chat, messages, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Scene returns the branch matching sc.StoryLine. A reply without that
// branch is malformed.
func (o *LLMOracle) Scene(ctx context.Context, sc *SceneContext) (*world.SceneDelta, error) {
	messages, err := prompts.BuildSceneMessages(sc, sc.StoryLine, sc.SceneID)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene prompt: %w", err)
	}

	var envelope sceneEnvelope
	if err := o.ask(ctx, "scene", o.llm.Reason, messages, &envelope); err != nil {
		return nil, err
	}
	delta, err := envelope.branch(sc.StoryLine)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scene response: %w", err)
	}
	return delta, nil
}
