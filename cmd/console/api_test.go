package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jwebster45206/ascent-engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPITestServer(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAPIClient(srv.URL, srv.Client())
}

func TestAPIClient_StateFiltersHiddenCreatures(t *testing.T) {
	gs := world.NewGameState()
	gs.Scenes = []world.Scene{{
		Location: "Clinic",
		InteractiveCreatures: []world.Creature{
			{Name: "Nurse Clara", VisibleToPlayer: true},
			{Name: "Zombie A"},
		},
	}}

	api := newAPITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/state", r.URL.Path)
		_ = json.NewEncoder(w).Encode(gs)
	})

	got, err := api.State()
	require.NoError(t, err)
	require.Len(t, got.Scenes, 1)
	require.Len(t, got.Scenes[0].InteractiveCreatures, 1)
	assert.Equal(t, "Nurse Clara", got.Scenes[0].InteractiveCreatures[0].Name)
}

func TestAPIClient_StateNoGame(t *testing.T) {
	api := newAPITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "No game in progress"})
	})

	got, err := api.State()
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestAPIClient_Generate(t *testing.T) {
	var body map[string]string
	api := newAPITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		gs := world.NewGameState()
		gs.Player.Name = "Mara"
		_ = json.NewEncoder(w).Encode(gameResponse{Message: "Action processed successfully", State: gs})
	})

	gs, err := api.Generate("climb the fence")
	require.NoError(t, err)
	assert.Equal(t, "climb the fence", body["input"])
	assert.Equal(t, "Mara", gs.Player.Name)
}

func TestAPIClient_ErrorsCarryDetails(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{name: "details", status: 500, body: `{"error":"Generation failed","details":"scene: timeout"}`, expected: "Generation failed: scene: timeout"},
		{name: "plain", status: 400, body: `{"error":"Game has ended"}`, expected: "Game has ended"},
		{name: "not json", status: 502, body: `bad gateway`, expected: "API returned status 502: bad gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newAPITestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := api.Init("Mars", "a miner")
			require.Error(t, err)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestAPIClient_Reset(t *testing.T) {
	api := newAPITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	assert.NoError(t, api.Reset())
}
