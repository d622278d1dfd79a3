package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/ascent-engine/pkg/storage"
	"github.com/jwebster45206/ascent-engine/pkg/world"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS game_state (
	slot       INTEGER PRIMARY KEY CHECK (slot = 1),
	game_id    TEXT NOT NULL,
	data       BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);`

// SQLiteStorage keeps the game document in a single-row table.
type SQLiteStorage struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ storage.Storage = (*SQLiteStorage)(nil)

// NewSQLiteStorage opens (or creates) the database at path and applies the schema.
func NewSQLiteStorage(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStorage, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}
	return &SQLiteStorage{db: db, logger: logger}, nil
}

func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping failed: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close sqlite", "error", err)
		return err
	}
	return nil
}

func (s *SQLiteStorage) SaveGameState(ctx context.Context, gs *world.GameState) error {
	data, err := encodeGameState(gs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO game_state (slot, game_id, data, updated_at) VALUES (1, ?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET game_id = excluded.game_id, data = excluded.data, updated_at = excluded.updated_at`,
		gs.ID.String(), data, time.Now().UnixMilli())
	if err != nil {
		s.logger.Error("Failed to save gamestate", "uuid", gs.ID, "error", err)
		return fmt.Errorf("failed to save gamestate: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) LoadGameState(ctx context.Context) (*world.GameState, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM game_state WHERE slot = 1`).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load gamestate: %w", err)
	}
	return decodeGameState(data)
}

func (s *SQLiteStorage) DeleteGameState(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM game_state WHERE slot = 1`); err != nil {
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	return nil
}
