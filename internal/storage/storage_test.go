package storage

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jwebster45206/ascent-engine/pkg/storage"
	"github.com/jwebster45206/ascent-engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleGameState() *world.GameState {
	gs := world.NewGameState()
	gs.World = world.World{Setting: "A flooded city", LifeTiers: world.DefaultLifeTiers}
	gs.Player = world.Player{Name: "Mara", Health: 80, Tier: 1, Tags: []string{"diver"}, Luck: 0.5}
	gs.Equipment = []world.Item{{ItemID: "e1", Name: "Knife", Type: world.ItemEquipment}}
	gs.Scenes = []world.Scene{{
		SceneID:              0,
		Location:             "Pier",
		Plot:                 "Water rises.",
		InteractiveItems:     []world.Item{},
		InteractiveCreatures: []world.Creature{{CreatureID: "c1", Name: "Zombie A", Type: world.CreatureEnemy, VisibleToPlayer: false}},
	}}
	gs.PlotRecords = []string{"Water rises."}
	return gs
}

// exerciseStorage runs the behavior every backend must share.
func exerciseStorage(t *testing.T, s storage.Storage) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	loaded, err := s.LoadGameState(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded, "empty store loads nil")

	gs := sampleGameState()
	require.NoError(t, s.SaveGameState(ctx, gs))

	loaded, err = s.LoadGameState(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, gs.ID, loaded.ID)
	assert.Equal(t, "Mara", loaded.Player.Name)
	require.Len(t, loaded.Scenes, 1)
	require.Len(t, loaded.Scenes[0].InteractiveCreatures, 1)
	assert.False(t, loaded.Scenes[0].InteractiveCreatures[0].VisibleToPlayer, "hidden creatures are persisted")

	// whole-document overwrite
	gs.Player.Health = 10
	gs.History = append(gs.History, "> wait \n")
	require.NoError(t, s.SaveGameState(ctx, gs))
	loaded, err = s.LoadGameState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.Player.Health)
	assert.Len(t, loaded.History, 1)

	assert.Error(t, s.SaveGameState(ctx, nil))

	require.NoError(t, s.DeleteGameState(ctx))
	loaded, err = s.LoadGameState(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
	require.NoError(t, s.DeleteGameState(ctx), "deleting nothing is not an error")

	require.NoError(t, s.Close())
}

func TestRedisStorage(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	s, err := NewRedisStorage("redis://"+mr.Addr(), testLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.SaveGameState(ctx, sampleGameState()))
	assert.True(t, mr.Exists(DefaultRedisKey))
	assert.Equal(t, time.Duration(0), mr.TTL(DefaultRedisKey), "key has no expiry")
	require.NoError(t, s.DeleteGameState(ctx))

	exerciseStorage(t, s)
}

func TestRedisStorage_BareAddress(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	s, err := NewRedisStorage(mr.Addr(), testLogger())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	assert.NoError(t, s.Ping(context.Background()))
	assert.NotNil(t, s.Client())
}

func TestRedisStorage_InvalidURL(t *testing.T) {
	_, err := NewRedisStorage("redis://localhost:notaport", testLogger())
	assert.Error(t, err)
}

func TestRedisStorage_CorruptDocument(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	require.NoError(t, mr.Set(DefaultRedisKey, "{not json"))

	s, err := NewRedisStorage(mr.Addr(), testLogger())
	require.NoError(t, err)
	_, err = s.LoadGameState(context.Background())
	assert.Error(t, err)
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gamestate.json")
	s, err := NewFileStorage(path, testLogger())
	require.NoError(t, err)

	exerciseStorage(t, s)
}

func TestFileStorage_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStorage(filepath.Join(dir, "gamestate.json"), testLogger())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.SaveGameState(context.Background(), sampleGameState()))
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "gamestate.json", entries[0].Name())
}

func TestFileStorage_EmptyFileIsNoGame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamestate.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s, err := NewFileStorage(path, testLogger())
	require.NoError(t, err)
	gs, err := s.LoadGameState(context.Background())
	require.NoError(t, err)
	assert.Nil(t, gs)
}

func TestFileStorage_RequiresPath(t *testing.T) {
	_, err := NewFileStorage("", testLogger())
	assert.Error(t, err)
}

func TestSQLiteStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ascent.db")
	s, err := NewSQLiteStorage(context.Background(), path, testLogger())
	require.NoError(t, err)

	exerciseStorage(t, s)
}

func TestSQLiteStorage_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ascent.db")

	s, err := NewSQLiteStorage(ctx, path, testLogger())
	require.NoError(t, err)
	gs := sampleGameState()
	require.NoError(t, s.SaveGameState(ctx, gs))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStorage(ctx, path, testLogger())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	loaded, err := s.LoadGameState(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, gs.ID, loaded.ID)
}

func TestMockStorageSatisfiesContract(t *testing.T) {
	exerciseStorage(t, storage.NewMockStorage())
}
