// Package cache keeps the most recent pick sheet per date in Redis so the
// API can serve the latest run without touching Postgres.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/beaubranton4/d1-picks/pkg/models"
)

const (
	SheetTTL = 24 * time.Hour

	latestKey = "picks:latest"
)

// SheetCache reads and writes pick-sheet snapshots
type SheetCache struct {
	client *redis.Client
}

// New creates a SheetCache
func New(client *redis.Client) *SheetCache {
	return &SheetCache{client: client}
}

func sheetKey(date string) string {
	return fmt.Sprintf("picks:sheet:%s", date)
}

// WriteSheet stores a sheet under its date and points picks:latest at it
func (c *SheetCache) WriteSheet(ctx context.Context, sheet *models.PickSheet) error {
	data, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("cache: marshaling sheet: %w", err)
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, sheetKey(sheet.Date), data, SheetTTL)
	pipe.Set(ctx, latestKey, sheet.Date, SheetTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache: writing sheet: %w", err)
	}
	return nil
}

// ReadSheet retrieves the sheet for a date. A cache miss returns redis.Nil
// through the error chain; callers distinguish it from transport failures.
func (c *SheetCache) ReadSheet(ctx context.Context, date string) (*models.PickSheet, error) {
	data, err := c.client.Get(ctx, sheetKey(date)).Result()
	if err != nil {
		return nil, err
	}

	var sheet models.PickSheet
	if err := json.Unmarshal([]byte(data), &sheet); err != nil {
		return nil, fmt.Errorf("cache: unmarshaling sheet: %w", err)
	}
	return &sheet, nil
}

// ReadLatest retrieves the most recently written sheet
func (c *SheetCache) ReadLatest(ctx context.Context) (*models.PickSheet, error) {
	date, err := c.client.Get(ctx, latestKey).Result()
	if err != nil {
		return nil, err
	}
	return c.ReadSheet(ctx, date)
}
