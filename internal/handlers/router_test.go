package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRouter(t *testing.T) {
	e, _, store := newTestEngine(quietRoll())
	mux := NewRouter(RouterConfig{Engine: e, Store: store, LLMProvider: "mock", Logger: testLogger()})

	assert.Equal(t, http.StatusOK, serve(mux, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(mux, http.MethodGet, "/api/state", "").Code)
	assert.Equal(t, http.StatusOK, serve(mux, http.MethodPost, "/api/init", initBody).Code)
	assert.Equal(t, http.StatusOK, serve(mux, http.MethodPost, "/api/generate", `{"input":"wait"}`).Code)

	// Events need redis
	assert.Equal(t, http.StatusNotFound, serve(mux, http.MethodGet, "/api/events", "").Code)
}
