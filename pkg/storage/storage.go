package storage

import (
	"context"

	"github.com/jwebster45206/ascent-engine/pkg/world"
)

// Storage persists the single game document. Saves overwrite the whole
// document; loads return a fresh copy the caller may mutate.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// SaveGameState overwrites the persisted game
	SaveGameState(ctx context.Context, gs *world.GameState) error
	// LoadGameState returns nil, nil when no game has been saved
	LoadGameState(ctx context.Context) (*world.GameState, error)
	// DeleteGameState removes the persisted game; deleting nothing is not an error
	DeleteGameState(ctx context.Context) error
}
