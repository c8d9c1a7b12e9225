package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduplicator suppresses repeat alerts for the same pick using Redis keys
// with a TTL. A pick re-detected inside the window stays quiet.
type Deduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDeduplicator creates a deduplicator with the given suppression window
func NewDeduplicator(client *redis.Client, ttlMinutes int) *Deduplicator {
	return &Deduplicator{
		client: client,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}
}

// ShouldAlert returns true when the pick was not alerted within the window,
// and marks it as alerted.
func (d *Deduplicator) ShouldAlert(ctx context.Context, gameID, team, sportsbook string) (bool, error) {
	key := fmt.Sprintf("picks:alert:dedup:%s:%s:%s", gameID, team, sportsbook)

	exists, err := d.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("notifier: checking dedup key: %w", err)
	}
	if exists > 0 {
		return false, nil
	}

	if err := d.client.Set(ctx, key, "1", d.ttl).Err(); err != nil {
		return false, fmt.Errorf("notifier: setting dedup key: %w", err)
	}
	return true, nil
}
