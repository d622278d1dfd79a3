package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jwebster45206/ascent-engine/pkg/world"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func openingState() *world.GameState {
	gs := world.NewGameState()
	gs.Player = world.Player{Name: "Mara", Health: 100, Tier: 1, Luck: 0.5, Tags: []string{}}
	gs.Scenes = []world.Scene{{SceneID: 0, Location: "Clinic", Plot: "You wake."}}
	gs.PlotRecords = []string{"You wake."}
	return gs
}

func TestValidateFile(t *testing.T) {
	valid, err := json.Marshal(openingState())
	if err != nil {
		t.Fatal(err)
	}

	broken := openingState()
	broken.Player.Health = 0
	brokenData, err := json.Marshal(broken)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		file    string
		data    []byte
		wantErr string
	}{
		{name: "valid", file: "gamestate.json", data: valid},
		{name: "wrong extension", file: "gamestate.txt", data: valid, wantErr: ".json extension"},
		{name: "invalid json", file: "gamestate.json", data: []byte(`{"player":`), wantErr: "invalid JSON"},
		{name: "unknown field", file: "gamestate.json", data: []byte(`{"scenario":"pirate.json"}`), wantErr: "strict JSON"},
		{name: "broken invariant", file: "gamestate.json", data: brokenData, wantErr: "not over"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFile(writeFile(t, tt.file, tt.data))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected valid file, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
