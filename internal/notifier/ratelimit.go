package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenKey = "picks:alert:tokens"

// TokenBucket caps alerts per minute through a Redis-backed bucket so
// multiple pipeline runs share one budget.
type TokenBucket struct {
	client    *redis.Client
	maxTokens int
}

// NewTokenBucket creates a bucket allowing maxTokens alerts per minute
func NewTokenBucket(client *redis.Client, maxTokens int) *TokenBucket {
	return &TokenBucket{client: client, maxTokens: maxTokens}
}

// Allow consumes one token; false means the caller is rate limited. The
// bucket refills by key expiry: the first consumption of a window starts a
// one-minute clock.
func (tb *TokenBucket) Allow(ctx context.Context) (bool, error) {
	count, err := tb.client.Incr(ctx, tokenKey).Result()
	if err != nil {
		return false, fmt.Errorf("notifier: incrementing token count: %w", err)
	}

	if count == 1 {
		if err := tb.client.Expire(ctx, tokenKey, time.Minute).Err(); err != nil {
			return false, fmt.Errorf("notifier: setting token window: %w", err)
		}
	}

	return count <= int64(tb.maxTokens), nil
}
