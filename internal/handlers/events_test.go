package handlers

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jwebster45206/ascent-engine/internal/services/events"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readEvent returns the data line of the next SSE event named name.
func readEvent(t *testing.T, lines <-chan string, name string) string {
	t.Helper()
	deadline := time.After(3 * time.Second)
	sawEvent := false
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				t.Fatalf("stream closed before event %q", name)
			}
			if line == "event: "+name {
				sawEvent = true
				continue
			}
			if sawEvent && strings.HasPrefix(line, "data: ") {
				return strings.TrimPrefix(line, "data: ")
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event %q", name)
		}
	}
}

func TestEventsHandler_RelaysBroadcasts(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	srv := httptest.NewServer(NewEventsHandler(client, testLogger()))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	readEvent(t, lines, "connected")

	gameID := uuid.New()
	b := events.NewBroadcaster(client, testLogger())
	require.NoError(t, b.PublishTurnCompleted(context.Background(), gameID, 4, false, "The door holds."))

	data := readEvent(t, lines, string(events.EventTypeTurnCompleted))
	assert.Contains(t, data, gameID.String())
	assert.Contains(t, data, `"scene_id":4`)
	assert.Contains(t, data, "The door holds.")
}

func TestEventsHandler_MethodNotAllowed(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })

	rr := serve(NewEventsHandler(client, testLogger()), http.MethodPost, "/api/events", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
