package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduplicator suppresses repeat notifications for the same game-state
// transition using short-lived redis keys. A nil Deduplicator allows
// everything, so alerting still works (noisily) without redis.
type Deduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDeduplicator creates a deduplicator with the given suppression window
func NewDeduplicator(client *redis.Client, ttl time.Duration) *Deduplicator {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Deduplicator{client: client, ttl: ttl}
}

// FirstSeen returns true if this transition has not been recorded
// within the suppression window, and records it.
func (d *Deduplicator) FirstSeen(ctx context.Context, parts ...string) (bool, error) {
	if d == nil || d.client == nil {
		return true, nil
	}

	key := d.key(parts...)

	ok, err := d.client.SetNX(ctx, key, "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set dedup key: %w", err)
	}

	return ok, nil
}

// key builds a deterministic dedup key from transition parts
func (d *Deduplicator) key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("alerts:dedup:%x", h.Sum(nil)[:8])
}
