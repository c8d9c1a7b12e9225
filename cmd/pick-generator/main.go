package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/beaubranton4/d1-picks/internal/cache"
	"github.com/beaubranton4/d1-picks/internal/config"
	"github.com/beaubranton4/d1-picks/internal/engine"
	"github.com/beaubranton4/d1-picks/internal/feeds"
	"github.com/beaubranton4/d1-picks/internal/identity"
	"github.com/beaubranton4/d1-picks/internal/logger"
	"github.com/beaubranton4/d1-picks/internal/notifier"
	"github.com/beaubranton4/d1-picks/internal/predictor"
	"github.com/beaubranton4/d1-picks/internal/providers/oddsapi"
	"github.com/beaubranton4/d1-picks/internal/publisher"
	"github.com/beaubranton4/d1-picks/internal/store"
	"github.com/beaubranton4/d1-picks/pkg/models"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config file (optional)")
		dateStr    = flag.String("date", time.Now().Format("2006-01-02"), "date to generate picks for (YYYY-MM-DD)")
	)
	flag.Parse()

	fmt.Println("=== D1 Picks Generator ===")

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	if _, err := time.Parse("2006-01-02", *dateStr); err != nil {
		fmt.Printf("❌ Invalid date %q: use YYYY-MM-DD\n", *dateStr)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Step 1: alias table and resolver. A broken table is a data-integrity
	// defect, not a data gap: refuse to run on it.
	aliasTable, err := feeds.LoadAliasTable(cfg.Feeds.AliasTablePath)
	if err != nil {
		logger.Warn("alias table unavailable, names resolve by cleaning only: %v", err)
		aliasTable = map[string][]string{}
	}
	resolver, err := identity.NewResolver(aliasTable)
	if err != nil {
		fmt.Printf("❌ Alias table rejected: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Resolver ready (%d canonical teams)\n", len(aliasTable))

	// Step 2: feeds. Every gap degrades to an empty collection.
	schedule, err := feeds.LoadSchedule(cfg.Feeds.SchedulePath)
	if err != nil {
		logger.Warn("schedule feed unavailable: %v", err)
	}
	fmt.Printf("✓ Schedule: %d records\n", len(schedule))

	predictions, err := feeds.LoadPredictions(cfg.Feeds.PredictionsPath)
	if err != nil {
		logger.Warn("prediction feed unavailable: %v", err)
	}
	fmt.Printf("✓ Predictions: %d records\n", len(predictions))

	teamStats, err := feeds.LoadTeamStats(cfg.Feeds.TeamStatsPath)
	if err != nil {
		logger.Warn("team stats unavailable, fallback model uses league averages: %v", err)
	}

	// Step 3: fallback predictor. Without coefficients, uncovered games
	// simply stay unpredicted.
	var p *predictor.Predictor
	if coeffStore, err := predictor.LoadStore(cfg.Feeds.CoefficientsPath); err != nil {
		logger.Warn("coefficient store unavailable, model fallback disabled: %v", err)
	} else {
		p = predictor.NewPredictor(coeffStore)
		fmt.Printf("✓ Coefficient store loaded (%d team models)\n", len(coeffStore.Teams))
	}

	// Step 4: odds
	var odds []models.OddsEntry
	if cfg.OddsAPI.APIKey == "" {
		logger.Warn("no odds api key configured, running without odds")
	} else {
		client := oddsapi.NewClient(cfg.OddsAPI.BaseURL, cfg.OddsAPI.APIKey, cfg.OddsAPI.Bookmakers, cfg.OddsAPI.Timeout)
		odds, err = client.FetchMoneylines(ctx)
		if err != nil {
			logger.Warn("odds fetch failed, running without odds: %v", err)
			odds = nil
		}
	}
	fmt.Printf("✓ Odds: %d entries\n", len(odds))

	// Step 5: reconciliation pass
	eng := engine.New(resolver, p)
	sheet, err := eng.Run(engine.Input{
		Date:        *dateStr,
		Schedule:    schedule,
		Predictions: predictions,
		Odds:        odds,
		TeamStats:   teamStats,
	})
	if err != nil {
		fmt.Printf("❌ Reconciliation failed: %v\n", err)
		os.Exit(1)
	}

	filtered := engine.FilterPicks(sheet)

	fmt.Printf("📊 %d games | %d with odds | %d edges (%d strong, %d bets, %d leans)\n",
		sheet.Summary.Games, sheet.Summary.GamesWithOdds, sheet.Summary.Edges,
		sheet.Summary.StrongBets, sheet.Summary.Bets, sheet.Summary.Leans)

	// Step 6: emit the display sheet
	if err := writeSheet(cfg.Feeds.OutputDir, filtered); err != nil {
		fmt.Printf("❌ Failed to write output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Wrote %s\n", filepath.Join(cfg.Feeds.OutputDir, *dateStr+".json"))

	// Step 7: persistence and fan-out, each optional
	if cfg.Postgres.Enabled {
		persistRun(ctx, cfg.Postgres.DSN, sheet)
	}

	if cfg.Redis.Enabled {
		publishSheet(ctx, cfg, sheet, filtered)
	}

	fmt.Println("✅ Done")
}

func writeSheet(dir string, sheet *models.PickSheet) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sheet, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, sheet.Date+".json"), data, 0o644)
}

func persistRun(ctx context.Context, dsn string, sheet *models.PickSheet) {
	db, err := store.Open(dsn)
	if err != nil {
		logger.Warn("postgres unavailable, run not persisted: %v", err)
		return
	}
	defer db.Close()

	runs := store.New(db)
	if err := runs.SaveRun(ctx, runRecord(sheet), pickRows(sheet)); err != nil {
		logger.Warn("persisting run failed: %v", err)
		return
	}
	fmt.Println("✓ Run persisted to Postgres")
}

func publishSheet(ctx context.Context, cfg *config.Config, sheet, filtered *models.PickSheet) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Warn("invalid redis url: %v", err)
		return
	}
	client := redis.NewClient(opts)
	defer client.Close()

	if err := cache.New(client).WriteSheet(ctx, sheet); err != nil {
		logger.Warn("caching sheet failed: %v", err)
	} else {
		fmt.Println("✓ Sheet cached")
	}

	if err := publisher.New(client).PublishSheet(ctx, sheet); err != nil {
		logger.Warn("publishing sheet failed: %v", err)
	} else {
		fmt.Println("✓ Sheet published to stream")
	}

	if cfg.Telegram.Enabled {
		dedup := notifier.NewDeduplicator(client, cfg.Telegram.DedupTTLMinutes)
		bucket := notifier.NewTokenBucket(client, cfg.Telegram.MaxPerMinute)

		n, err := notifier.New(cfg.Telegram.BotToken, cfg.Telegram.ChatID, dedup, bucket)
		if err != nil {
			logger.Warn("telegram notifier unavailable: %v", err)
			return
		}
		n.NotifySheet(ctx, filtered)
		fmt.Println("✓ Alerts dispatched")
	}
}

func runRecord(sheet *models.PickSheet) store.RunRecord {
	return store.RunRecord{
		RunID:         sheet.RunID,
		Date:          sheet.Date,
		GeneratedAt:   sheet.GeneratedAt,
		Games:         sheet.Summary.Games,
		GamesWithOdds: sheet.Summary.GamesWithOdds,
		Edges:         sheet.Summary.Edges,
		StrongBets:    sheet.Summary.StrongBets,
		Bets:          sheet.Summary.Bets,
		Leans:         sheet.Summary.Leans,
		Passes:        sheet.Summary.Passes,
	}
}

func pickRows(sheet *models.PickSheet) []store.PickRow {
	var rows []store.PickRow
	for _, gp := range sheet.Games {
		for _, edge := range gp.Edges {
			opponent := gp.Game.TeamB
			if edge.Team == gp.Game.TeamB {
				opponent = gp.Game.TeamA
			}
			rows = append(rows, store.PickRow{
				GameID:         gp.Game.ID,
				Team:           edge.Team,
				Opponent:       opponent,
				Sportsbook:     edge.Sportsbook,
				Moneyline:      edge.Moneyline,
				ModelProb:      edge.ModelProb,
				ImpliedProb:    edge.ImpliedProb,
				RawEdge:        edge.RawEdge,
				AdjustedEdge:   edge.AdjustedEdge,
				ModifierReason: edge.ModifierReason,
				AIScore:        edge.AIScore,
				PickLabel:      string(edge.PickLabel),
				Classification: string(edge.Classification),
			})
		}
	}
	return rows
}
