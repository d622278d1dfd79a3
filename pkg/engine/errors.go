package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a required request field is missing.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoGame is returned when an action arrives before initialization.
	ErrNoGame = errors.New("no game in progress")
	// ErrGameOver is returned for any action after the game has ended.
	ErrGameOver = errors.New("game has ended")
)

// GenerationError wraps an oracle failure that aborted a turn or an
// initialization. Nothing is persisted when it is returned.
type GenerationError struct {
	Step string // world, cast, probability or scene
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed at %s: %v", e.Step, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
