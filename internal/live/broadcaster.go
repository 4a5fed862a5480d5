package live

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/playmaker-live/playmaker/internal/log"
	"github.com/playmaker-live/playmaker/pkg/models"
)

const (
	// Buffer size for each subscriber's event channel
	subscriberBufferSize = 16

	// TodayKey is the cache key for the provider's default scoreboard
	TodayKey = "today"
)

// Subscriber is one open stream connection's view of the broadcaster.
// Events arrive on C; the channel is closed on unsubscribe.
type Subscriber struct {
	ID string
	C  chan models.StreamEvent
}

// trySend delivers an event without blocking.
// Returns false when the subscriber's buffer is full.
func (s *Subscriber) trySend(ev models.StreamEvent) bool {
	select {
	case s.C <- ev:
		return true
	default:
		return false
	}
}

// Broadcaster runs one shared polling loop that fetches the live
// scoreboard, diffs it against the previous cycle, and fans the update
// out to every subscriber. Transports (SSE, WebSocket) subscribe and
// drain their channel; a subscriber that stops draining is dropped so
// no timers or buffers outlive a disconnected client.
type Broadcaster struct {
	cache    *Cache
	interval time.Duration

	mu          sync.RWMutex
	subscribers map[string]*Subscriber

	prev     []models.GameSnapshot
	havePrev bool
	failures int
}

// NewBroadcaster creates a broadcaster with an injected poll interval
func NewBroadcaster(cache *Cache, interval time.Duration) *Broadcaster {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Broadcaster{
		cache:       cache,
		interval:    interval,
		subscribers: make(map[string]*Subscriber),
	}
}

// Subscribe registers a new stream subscriber
func (b *Broadcaster) Subscribe() *Subscriber {
	sub := &Subscriber{
		ID: uuid.New().String(),
		C:  make(chan models.StreamEvent, subscriberBufferSize),
	}

	b.mu.Lock()
	b.subscribers[sub.ID] = sub
	total := len(b.subscribers)
	b.mu.Unlock()

	log.Debug("stream subscriber connected", zap.String("subscriber_id", sub.ID), zap.Int("total", total))
	return sub
}

// Unsubscribe deregisters a subscriber and closes its channel.
// Safe to call more than once.
func (b *Broadcaster) Unsubscribe(sub *Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscribers[sub.ID]; ok {
		delete(b.subscribers, sub.ID)
		close(sub.C)
		log.Debug("stream subscriber disconnected", zap.String("subscriber_id", sub.ID), zap.Int("total", len(b.subscribers)))
	}
}

// SubscriberCount returns the number of active subscribers
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Run drives the shared polling loop until the context is cancelled.
// The first tick fires immediately so a fresh page load is not left
// waiting a full interval for data.
func (b *Broadcaster) Run(ctx context.Context) {
	log.Info("live broadcaster started", zap.Duration("interval", b.interval))

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	b.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			b.shutdown()
			return
		case <-ticker.C:
			b.tick(ctx)
		}
	}
}

// tick performs one fetch → diff → publish cycle.
// A fetch failure emits an error event but never closes connections;
// the loop just waits for the next tick.
func (b *Broadcaster) tick(ctx context.Context) {
	snap, err := b.cache.Get(ctx, TodayKey)
	if err != nil {
		b.failures++
		log.Warn("scoreboard fetch failed", zap.Error(err), zap.Int("consecutive", b.failures))
		b.publish(models.StreamEvent{
			Type:      models.EventError,
			Message:   "live data temporarily unavailable",
			Timestamp: time.Now().UTC(),
		})
		return
	}
	b.failures = 0

	var changes []models.GameDiff
	if b.havePrev {
		changes = Diff(b.prev, snap.Games)
	}
	b.prev = snap.Games
	b.havePrev = true

	b.publish(models.StreamEvent{
		Type:      models.EventUpdate,
		Games:     snap.Games,
		Changes:   changes,
		LiveCount: snap.LiveCount(),
		Timestamp: time.Now().UTC(),
	})
}

// publish fans an event out to every subscriber. Subscribers whose
// buffers are full are disconnected rather than allowed to stall the
// loop.
func (b *Broadcaster) publish(ev models.StreamEvent) {
	b.mu.RLock()
	subs := make([]*Subscriber, 0, len(b.subscribers))
	for _, s := range b.subscribers {
		subs = append(subs, s)
	}
	b.mu.RUnlock()

	var slow []*Subscriber
	for _, s := range subs {
		if !s.trySend(ev) {
			slow = append(slow, s)
		}
	}

	for _, s := range slow {
		log.Warn("dropping slow stream subscriber", zap.String("subscriber_id", s.ID))
		b.Unsubscribe(s)
	}
}

// shutdown closes every subscriber channel
func (b *Broadcaster) shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	log.Info("live broadcaster stopping", zap.Int("subscribers", len(b.subscribers)))
	for id, s := range b.subscribers {
		close(s.C)
		delete(b.subscribers, id)
	}
}
