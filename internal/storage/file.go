package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jwebster45206/ascent-engine/pkg/storage"
	"github.com/jwebster45206/ascent-engine/pkg/world"
)

// FileStorage keeps the game document in one JSON file. Saves write a
// temporary file in the same directory and rename it over the target.
type FileStorage struct {
	path   string
	logger *slog.Logger
}

var _ storage.Storage = (*FileStorage)(nil)

// NewFileStorage creates the parent directory of path if needed.
func NewFileStorage(path string, logger *slog.Logger) (*FileStorage, error) {
	if path == "" {
		return nil, errors.New("state file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &FileStorage{path: path, logger: logger}, nil
}

// Ping checks that the state directory is still reachable.
func (f *FileStorage) Ping(ctx context.Context) error {
	if _, err := os.Stat(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("state directory unavailable: %w", err)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}

func (f *FileStorage) SaveGameState(ctx context.Context, gs *world.GameState) error {
	data, err := encodeGameState(gs)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write gamestate: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync gamestate: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		f.logger.Error("Failed to replace state file", "path", f.path, "error", err)
		return fmt.Errorf("failed to save gamestate: %w", err)
	}
	return nil
}

func (f *FileStorage) LoadGameState(ctx context.Context) (*world.GameState, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return decodeGameState(data)
}

func (f *FileStorage) DeleteGameState(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete state file: %w", err)
	}
	return nil
}
