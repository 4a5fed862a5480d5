package live_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playmaker-live/playmaker/internal/live"
	"github.com/playmaker-live/playmaker/pkg/models"
)

func waitForEvent(t *testing.T, c <-chan models.StreamEvent) models.StreamEvent {
	t.Helper()
	select {
	case ev, ok := <-c:
		require.True(t, ok, "subscriber channel closed unexpectedly")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for stream event")
		return models.StreamEvent{}
	}
}

func TestBroadcaster_PublishesUpdates(t *testing.T) {
	var score int32 = 50
	fetch := func(ctx context.Context, dateKey string) ([]models.GameSnapshot, error) {
		return []models.GameSnapshot{{
			GameID:   "g1",
			Status:   models.StatusLive,
			HomeTeam: models.TeamSide{Abbr: "LAL", Score: int(atomic.AddInt32(&score, 2))},
			AwayTeam: models.TeamSide{Abbr: "BOS", Score: 48},
		}}, nil
	}

	// TTL shorter than the poll interval so every tick refetches
	cache := live.NewCache(fetch, time.Millisecond)
	b := live.NewBroadcaster(cache, 20*time.Millisecond)

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	first := waitForEvent(t, sub.C)
	assert.Equal(t, models.EventUpdate, first.Type)
	require.Len(t, first.Games, 1)
	assert.Equal(t, 1, first.LiveCount)
	assert.Empty(t, first.Changes, "first cycle has no previous snapshot to diff")

	second := waitForEvent(t, sub.C)
	assert.Equal(t, models.EventUpdate, second.Type)
	require.Len(t, second.Changes, 1)
	assert.True(t, second.Changes[0].ScoreChanged)
}

func TestBroadcaster_ErrorEventOnFetchFailure(t *testing.T) {
	fetch := func(ctx context.Context, dateKey string) ([]models.GameSnapshot, error) {
		return nil, errors.New("upstream down")
	}

	cache := live.NewCache(fetch, time.Millisecond)
	b := live.NewBroadcaster(cache, 20*time.Millisecond)

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	ev := waitForEvent(t, sub.C)
	assert.Equal(t, models.EventError, ev.Type)
	assert.NotEmpty(t, ev.Message)

	// The loop keeps going after a failure
	next := waitForEvent(t, sub.C)
	assert.Equal(t, models.EventError, next.Type)
}

func TestBroadcaster_UnsubscribeClosesChannel(t *testing.T) {
	cache := live.NewCache(func(ctx context.Context, dateKey string) ([]models.GameSnapshot, error) {
		return nil, nil
	}, time.Minute)
	b := live.NewBroadcaster(cache, time.Minute)

	sub := b.Subscribe()
	assert.Equal(t, 1, b.SubscriberCount())

	b.Unsubscribe(sub)
	assert.Equal(t, 0, b.SubscriberCount())

	_, open := <-sub.C
	assert.False(t, open, "channel must be closed after unsubscribe")

	// Idempotent
	b.Unsubscribe(sub)
}

func TestBroadcaster_ShutdownClosesSubscribers(t *testing.T) {
	cache := live.NewCache(func(ctx context.Context, dateKey string) ([]models.GameSnapshot, error) {
		return nil, nil
	}, time.Minute)
	b := live.NewBroadcaster(cache, time.Hour)

	sub := b.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	// Drain the immediate first tick, then stop
	waitForEvent(t, sub.C)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcaster did not stop")
	}

	assert.Equal(t, 0, b.SubscriberCount())
}

func TestBroadcaster_MultipleSubscribersReceiveSameEvent(t *testing.T) {
	fetch := func(ctx context.Context, dateKey string) ([]models.GameSnapshot, error) {
		return []models.GameSnapshot{{GameID: "g1", Status: models.StatusLive}}, nil
	}

	cache := live.NewCache(fetch, time.Minute)
	b := live.NewBroadcaster(cache, time.Hour)

	a := b.Subscribe()
	c := b.Subscribe()
	defer b.Unsubscribe(a)
	defer b.Unsubscribe(c)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	evA := waitForEvent(t, a.C)
	evC := waitForEvent(t, c.C)

	assert.Equal(t, evA.Type, evC.Type)
	assert.Equal(t, len(evA.Games), len(evC.Games))
}
