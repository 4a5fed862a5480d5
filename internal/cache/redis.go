package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playmaker-live/playmaker/pkg/models"
)

// TTL constants
const (
	LiveDetailTTL  = 30 * time.Second
	FinalDetailTTL = 6 * time.Hour
	OtherDetailTTL = 5 * time.Minute
)

// GameCache writes game detail views through redis so concurrent
// detail requests for the same game share one upstream summary fetch.
// A nil GameCache is a no-op: redis absence degrades to direct fetch.
type GameCache struct {
	client *redis.Client
}

// NewGameCache creates a redis-backed game detail cache
func NewGameCache(client *redis.Client) *GameCache {
	return &GameCache{client: client}
}

// ReadGameDetail returns the cached detail for a game, or (nil, nil)
// on a cache miss.
func (c *GameCache) ReadGameDetail(ctx context.Context, gameID string) (*models.GameDetail, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	key := fmt.Sprintf("game:%s:detail", gameID)

	data, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading game detail: %w", err)
	}

	var detail models.GameDetail
	if err := json.Unmarshal([]byte(data), &detail); err != nil {
		return nil, fmt.Errorf("unmarshaling game detail: %w", err)
	}

	return &detail, nil
}

// WriteGameDetail caches a game detail view with a status-dependent TTL
func (c *GameCache) WriteGameDetail(ctx context.Context, detail *models.GameDetail) error {
	if c == nil || c.client == nil {
		return nil
	}

	key := fmt.Sprintf("game:%s:detail", detail.Game.GameID)

	data, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("marshaling game detail: %w", err)
	}

	return c.client.Set(ctx, key, data, detailTTL(detail.Game.Status)).Err()
}

// detailTTL returns the cache TTL for a game status. Live games churn
// and cache briefly; finals are settled and cache for hours.
func detailTTL(status models.GameStatus) time.Duration {
	switch status {
	case models.StatusLive, models.StatusHalftime:
		return LiveDetailTTL
	case models.StatusFinal:
		return FinalDetailTTL
	default:
		return OtherDetailTTL
	}
}
