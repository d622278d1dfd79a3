package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Channel carries every game event. There is one game at a time, so a
// single channel is enough; subscribers filter on GameID if they care.
const Channel = "ascent:game-events"

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeGameStarted   EventType = "game.started"
	EventTypeTurnCompleted EventType = "turn.completed"
	EventTypeGameOver      EventType = "game.over"
)

// Event represents a generic event structure
type Event struct {
	Type      EventType      `json:"type"`
	GameID    string         `json:"game_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// Broadcaster publishes events to Redis Pub/Sub for SSE distribution
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewBroadcaster creates a new event broadcaster
func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// PublishGameStarted publishes a game.started event
func (b *Broadcaster) PublishGameStarted(ctx context.Context, gameID uuid.UUID, location string) error {
	return b.publish(ctx, Event{
		Type:   EventTypeGameStarted,
		GameID: gameID.String(),
		Data: map[string]any{
			"location": location,
		},
	})
}

// PublishTurnCompleted publishes a turn.completed event
func (b *Broadcaster) PublishTurnCompleted(ctx context.Context, gameID uuid.UUID, sceneID int, success bool, outcome string) error {
	return b.publish(ctx, Event{
		Type:   EventTypeTurnCompleted,
		GameID: gameID.String(),
		Data: map[string]any{
			"scene_id": sceneID,
			"success":  success,
			"outcome":  outcome,
		},
	})
}

// PublishGameOver publishes a game.over event
func (b *Broadcaster) PublishGameOver(ctx context.Context, gameID uuid.UUID, sceneID int) error {
	return b.publish(ctx, Event{
		Type:   EventTypeGameOver,
		GameID: gameID.String(),
		Data: map[string]any{
			"scene_id": sceneID,
		},
	})
}

func (b *Broadcaster) publish(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event", event)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, Channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", Channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", Channel,
		"event_type", event.Type,
		"game_id", event.GameID,
	)
	return nil
}
