package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jwebster45206/ascent-engine/pkg/world"
	"github.com/redis/go-redis/v9"
)

func encodeGameState(gs *world.GameState) ([]byte, error) {
	if gs == nil {
		return nil, errors.New("gamestate cannot be nil")
	}
	data, err := json.Marshal(gs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gamestate: %w", err)
	}
	return data, nil
}

func decodeGameState(data []byte) (*world.GameState, error) {
	var gs world.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gamestate: %w", err)
	}
	return &gs, nil
}

// GameState operations (Redis-backed)

func (r *RedisStorage) SaveGameState(ctx context.Context, gs *world.GameState) error {
	data, err := encodeGameState(gs)
	if err != nil {
		r.logger.Error("Failed to marshal gamestate", "error", err)
		return err
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		r.logger.Error("Failed to save gamestate", "uuid", gs.ID, "error", err)
		return fmt.Errorf("failed to save gamestate: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadGameState(ctx context.Context) (*world.GameState, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Gamestate not found", "key", r.key)
			return nil, nil
		}
		r.logger.Error("Failed to load gamestate", "key", r.key, "error", err)
		return nil, fmt.Errorf("failed to load gamestate: %w", err)
	}

	gs, err := decodeGameState(data)
	if err != nil {
		r.logger.Error("Failed to unmarshal gamestate", "key", r.key, "error", err)
		return nil, err
	}
	return gs, nil
}

func (r *RedisStorage) DeleteGameState(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		r.logger.Error("Failed to delete gamestate", "key", r.key, "error", err)
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	return nil
}
