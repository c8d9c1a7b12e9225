package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/beaubranton4/d1-picks/internal/cache"
	"github.com/beaubranton4/d1-picks/internal/config"
	"github.com/beaubranton4/d1-picks/internal/hub"
	"github.com/beaubranton4/d1-picks/internal/logger"
	"github.com/beaubranton4/d1-picks/internal/publisher"
	"github.com/beaubranton4/d1-picks/internal/server"
	"github.com/beaubranton4/d1-picks/internal/store"
	"github.com/beaubranton4/d1-picks/pkg/models"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	fmt.Println("=== D1 Picks API ===")

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis backs both the snapshot cache and the sheet stream; the API
	// cannot serve anything without it.
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		fmt.Printf("❌ Invalid redis url: %v\n", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(opts)
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		fmt.Printf("❌ Failed to connect to Redis: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Connected to Redis")

	var runs *store.Store
	if cfg.Postgres.Enabled {
		db, err := store.Open(cfg.Postgres.DSN)
		if err != nil {
			fmt.Printf("❌ Failed to connect to Postgres: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		runs = store.New(db)
		fmt.Println("✓ Connected to Postgres")
	}

	h := hub.New()
	go h.Run(ctx)

	go consumeSheets(ctx, redisClient, h)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.New(cache.New(redisClient), runs, h, cfg.Server.CORSOrigins, cfg.Server.Timeout).Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("🚀 Listening on %s\n", cfg.Server.Addr)
		fmt.Println("  Endpoints:")
		fmt.Println("    GET /health")
		fmt.Println("    GET /api/v1/picks/latest")
		fmt.Println("    GET /api/v1/picks/{date}")
		fmt.Println("    GET /api/v1/runs/{date}")
		fmt.Println("    GET /ws/picks")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		fmt.Printf("❌ Server error: %v\n", err)
		os.Exit(1)

	case <-ctx.Done():
		fmt.Println("\n🛑 Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown failed: %v", err)
			srv.Close()
		}
	}

	fmt.Println("✓ Shutdown complete")
}

// consumeSheets tails the picks.sheets stream and hands every new sheet to
// the hub for broadcast.
func consumeSheets(ctx context.Context, client *redis.Client, h *hub.Hub) {
	fmt.Printf("✓ Consuming stream: %s\n", publisher.StreamKey)

	lastID := "$" // only sheets published after startup

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{publisher.StreamKey, lastID},
			Count:   10,
			Block:   5 * time.Second,
		}).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			logger.Warn("stream read failed: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				lastID = message.ID

				raw, ok := message.Values["sheet"].(string)
				if !ok {
					logger.Warn("malformed stream message %s", message.ID)
					continue
				}

				var sheet models.PickSheet
				if err := json.Unmarshal([]byte(raw), &sheet); err != nil {
					logger.Warn("unmarshaling sheet from stream: %v", err)
					continue
				}

				logger.Info("broadcasting sheet %s (%d games)", sheet.RunID, sheet.Summary.Games)
				h.Broadcast(&sheet)
			}
		}
	}
}
