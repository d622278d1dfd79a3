package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBroadcaster(t *testing.T) (*Broadcaster, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewBroadcaster(client, slog.New(slog.NewTextHandler(io.Discard, nil))), client
}

func receive(t *testing.T, ch <-chan *redis.Message) Event {
	t.Helper()
	select {
	case msg := <-ch:
		var event Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestBroadcaster_PublishesTurnEvents(t *testing.T) {
	b, client := setupBroadcaster(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, Channel)
	defer func() { _ = sub.Close() }()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	ch := sub.Channel()

	gameID := uuid.New()
	require.NoError(t, b.PublishGameStarted(ctx, gameID, "Pier"))
	require.NoError(t, b.PublishTurnCompleted(ctx, gameID, 1, true, "\nYou discovered Nurse Clara"))
	require.NoError(t, b.PublishGameOver(ctx, gameID, 1))

	started := receive(t, ch)
	assert.Equal(t, EventTypeGameStarted, started.Type)
	assert.Equal(t, gameID.String(), started.GameID)
	assert.Equal(t, "Pier", started.Data["location"])
	assert.False(t, started.Timestamp.IsZero())

	turn := receive(t, ch)
	assert.Equal(t, EventTypeTurnCompleted, turn.Type)
	assert.Equal(t, float64(1), turn.Data["scene_id"])
	assert.Equal(t, true, turn.Data["success"])

	over := receive(t, ch)
	assert.Equal(t, EventTypeGameOver, over.Type)
}

func TestBroadcaster_PublishFailsWhenRedisDown(t *testing.T) {
	b, client := setupBroadcaster(t)
	require.NoError(t, client.Close())

	err := b.PublishGameOver(context.Background(), uuid.New(), 3)
	assert.Error(t, err)
}
