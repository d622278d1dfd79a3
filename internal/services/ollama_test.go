package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jwebster45206/ascent-engine/pkg/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOllama struct {
	mu       sync.Mutex
	models   []string
	pulled   []string
	requests []ollamaChatRequest
	reply    string
	status   int
}

func (f *fakeOllama) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.URL.Path {
	case "/api/tags":
		var resp struct {
			Models []map[string]string `json:"models"`
		}
		for _, m := range f.models {
			resp.Models = append(resp.Models, map[string]string{"name": m})
		}
		_ = json.NewEncoder(w).Encode(resp)
	case "/api/pull":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		name, _ := body["model"].(string)
		f.pulled = append(f.pulled, name)
		f.models = append(f.models, name)
		_, _ = w.Write([]byte(`{"status":"success"}`))
	case "/api/chat":
		var req ollamaChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.requests = append(f.requests, req)
		if f.status != 0 {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(`{"error":"model not loaded"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":   req.Model,
			"message": map[string]string{"role": "assistant", "content": f.reply},
		})
	default:
		http.NotFound(w, r)
	}
}

func newOllamaTest(t *testing.T, f *fakeOllama) *OllamaService {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	s := NewOllamaService(srv.URL+"/", "llama3.1", "qwq", time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.retryDelay = time.Millisecond
	return s
}

func TestOllamaService_InitModelPullsMissing(t *testing.T) {
	f := &fakeOllama{models: []string{"llama3.1:latest"}}
	s := newOllamaTest(t, f)

	require.NoError(t, s.InitModel(context.Background(), "llama3.1"))
	assert.Equal(t, []string{"qwq"}, f.pulled)
}

func TestOllamaService_ChatAndReason(t *testing.T) {
	f := &fakeOllama{reply: `{"successProbability":0.4}`}
	s := newOllamaTest(t, f)
	msgs := chat.UserMessage("Rate this action")

	resp, err := s.Chat(context.Background(), msgs)
	require.NoError(t, err)
	assert.Equal(t, `{"successProbability":0.4}`, resp.Message)
	assert.Equal(t, "llama3.1", resp.Model)

	resp, err = s.Reason(context.Background(), msgs)
	require.NoError(t, err)
	assert.Equal(t, "qwq", resp.Model)

	require.Len(t, f.requests, 2)
	for _, req := range f.requests {
		assert.Equal(t, "json", req.Format)
		assert.False(t, req.Stream)
	}
}

func TestOllamaService_Errors(t *testing.T) {
	f := &fakeOllama{status: http.StatusInternalServerError}
	s := newOllamaTest(t, f)

	_, err := s.Chat(context.Background(), chat.UserMessage("hello"))
	assert.ErrorContains(t, err, "status 500")

	f.mu.Lock()
	f.status = 0
	f.reply = ""
	f.mu.Unlock()
	_, err = s.Chat(context.Background(), chat.UserMessage("hello"))
	assert.ErrorContains(t, err, "no text content")

	_, err = s.Chat(context.Background(), nil)
	assert.Error(t, err)
}

func TestOllamaService_NotReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	s := NewOllamaService(srv.URL, "llama3.1", "", time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.retryDelay = time.Millisecond

	err := s.InitModel(context.Background(), "llama3.1")
	assert.ErrorContains(t, err, "did not become ready")
}
