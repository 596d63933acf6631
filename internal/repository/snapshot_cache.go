package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lcibils/monitor-neuratek/internal/domain"
)

const snapshotCacheKey = "monitor:snapshots:last"

// SnapshotCache keeps the last successfully fetched ticket batch in Redis so
// a tracker outage degrades to slightly stale data instead of an empty
// dashboard.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache constructs the cache. A nil client disables it.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

// Store saves the batch, replacing any previous one.
func (c *SnapshotCache) Store(ctx context.Context, snapshots []domain.TicketSnapshot) error {
	if c == nil || c.client == nil {
		return nil
	}
	payload, err := json.Marshal(snapshots)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, snapshotCacheKey, payload, c.ttl).Err()
}

// Load returns the cached batch, or (nil, false, nil) when nothing usable is
// cached.
func (c *SnapshotCache) Load(ctx context.Context) ([]domain.TicketSnapshot, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	payload, err := c.client.Get(ctx, snapshotCacheKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var snapshots []domain.TicketSnapshot
	if err := json.Unmarshal(payload, &snapshots); err != nil {
		return nil, false, err
	}
	return snapshots, true, nil
}
