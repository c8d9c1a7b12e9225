// Package publisher pushes finished pick sheets onto the picks.sheets Redis
// stream for the serving daemon to fan out to WebSocket clients.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/beaubranton4/d1-picks/pkg/models"
)

const (
	// StreamKey is the Redis stream pick sheets are published on
	StreamKey = "picks.sheets"

	// maxLen caps the stream so old runs age out
	maxLen = 1000
)

// StreamPublisher publishes pick sheets to Redis Streams
type StreamPublisher struct {
	client *redis.Client
}

// New creates a StreamPublisher
func New(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{client: client}
}

// PublishSheet appends one sheet to the stream
func (p *StreamPublisher) PublishSheet(ctx context.Context, sheet *models.PickSheet) error {
	data, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("publisher: marshaling sheet: %w", err)
	}

	_, err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"sheet": string(data),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("publisher: publishing to %s: %w", StreamKey, err)
	}

	return nil
}
