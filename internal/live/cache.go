package live

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/playmaker-live/playmaker/pkg/models"
)

// FetchFunc retrieves a fresh scoreboard for a date key ("today" or
// "YYYYMMDD"). A single upstream call per invocation; no retries.
type FetchFunc func(ctx context.Context, dateKey string) ([]models.GameSnapshot, error)

// Snapshot is a full scoreboard state for a date as of one fetch cycle
type Snapshot struct {
	DateKey   string                `json:"date_key"`
	Games     []models.GameSnapshot `json:"games"`
	FetchedAt time.Time             `json:"fetched_at"`
	Stale     bool                  `json:"stale,omitempty"` // Last good data served after a fetch failure
}

// LiveCount returns the number of in-progress games in the snapshot
func (s *Snapshot) LiveCount() int {
	n := 0
	for _, g := range s.Games {
		if g.Status == models.StatusLive || g.Status == models.StatusHalftime {
			n++
		}
	}
	return n
}

// Cache holds the most recent scoreboard per date key with a short TTL.
// Concurrent callers hitting the same expired key collapse into a
// single upstream call; waiters share the winner's result.
type Cache struct {
	fetch FetchFunc
	ttl   time.Duration
	clock func() time.Time

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	snap   *Snapshot
	flight *flight // Non-nil while a fetch for this key is running
}

// flight carries one in-progress fetch and its outcome to every
// caller that joined it.
type flight struct {
	done chan struct{}
	snap *Snapshot
	err  error
}

// NewCache creates a snapshot cache with an injected TTL and fetcher
func NewCache(fetch FetchFunc, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &Cache{
		fetch:   fetch,
		ttl:     ttl,
		clock:   time.Now,
		entries: make(map[string]*cacheEntry),
	}
}

// Get returns a cached snapshot if younger than the TTL, otherwise
// performs (or joins) a fresh fetch. On fetch failure the last good
// snapshot is returned flagged Stale; with no fallback available the
// fetch error is returned. A stale snapshot never satisfies the
// freshness check, so the next call retries upstream.
func (c *Cache) Get(ctx context.Context, dateKey string) (*Snapshot, error) {
	c.mu.Lock()
	e, ok := c.entries[dateKey]
	if !ok {
		e = &cacheEntry{}
		c.entries[dateKey] = e
	}

	if e.snap != nil && !e.snap.Stale && c.clock().Sub(e.snap.FetchedAt) < c.ttl {
		snap := e.snap
		c.mu.Unlock()
		return snap, nil
	}

	if e.flight != nil {
		// Another caller is already fetching this key; share its result
		f := e.flight
		c.mu.Unlock()

		select {
		case <-f.done:
			return f.snap, f.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f := &flight{done: make(chan struct{})}
	e.flight = f
	c.mu.Unlock()

	games, err := c.fetch(ctx, dateKey)
	now := c.clock()

	c.mu.Lock()
	e.flight = nil
	if err == nil {
		e.snap = &Snapshot{
			DateKey:   dateKey,
			Games:     games,
			FetchedAt: now,
		}
		f.snap = e.snap
	} else if e.snap != nil {
		stale := *e.snap
		stale.Stale = true
		e.snap = &stale
		f.snap = e.snap
	} else {
		f.err = fmt.Errorf("fetching scoreboard %q: %w", dateKey, err)
	}
	c.mu.Unlock()
	close(f.done)

	return f.snap, f.err
}

// Invalidate drops the cached snapshot for a date key
func (c *Cache) Invalidate(dateKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, dateKey)
}
