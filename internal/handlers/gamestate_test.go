package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jwebster45206/ascent-engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameStateHandler_Lifecycle(t *testing.T) {
	e, _, _ := newTestEngine(quietRoll())
	h := NewGameStateHandler(e, testLogger())

	rr := serve(h, http.MethodGet, "/api/state", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	require.Equal(t, http.StatusOK, serve(NewInitHandler(e, testLogger()), http.MethodPost, "/api/init", initBody).Code)

	rr = serve(h, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var gs world.GameState
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&gs))
	require.Len(t, gs.Scenes, 1)

	// The full document still carries creatures the player has not seen
	hidden := 0
	for _, c := range gs.Scenes[0].InteractiveCreatures {
		if !c.VisibleToPlayer {
			hidden++
		}
	}
	assert.Positive(t, hidden)

	rr = serve(h, http.MethodDelete, "/api/state", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(h, http.MethodGet, "/api/state", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGameStateHandler_MethodNotAllowed(t *testing.T) {
	e, _, _ := newTestEngine(quietRoll())
	rr := serve(NewGameStateHandler(e, testLogger()), http.MethodPut, "/api/state", `{}`)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, DELETE", rr.Header().Get("Allow"))
}
