// Package store persists pick runs to Postgres: one pick_runs row per
// reconciliation pass plus one picks row per computed edge.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Store writes and reads pick runs
type Store struct {
	db *sql.DB
}

// New wraps an open database handle
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to Postgres and configures the pool
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: pinging database: %w", err)
	}

	return db, nil
}

// RunRecord is the persisted metadata of one pick run
type RunRecord struct {
	RunID         string    `json:"run_id"`
	Date          string    `json:"date"`
	GeneratedAt   time.Time `json:"generated_at"`
	Games         int       `json:"games"`
	GamesWithOdds int       `json:"games_with_odds"`
	Edges         int       `json:"edges"`
	StrongBets    int       `json:"strong_bets"`
	Bets          int       `json:"bets"`
	Leans         int       `json:"leans"`
	Passes        int       `json:"passes"`
}

// PickRow is one persisted edge with its game context
type PickRow struct {
	GameID         string
	Team           string
	Opponent       string
	Sportsbook     string
	Moneyline      int
	ModelProb      float64
	ImpliedProb    float64
	RawEdge        float64
	AdjustedEdge   float64
	ModifierReason *string
	AIScore        float64
	PickLabel      string
	Classification string
}

// SaveRun inserts a run and its picks in one transaction
func (s *Store) SaveRun(ctx context.Context, run RunRecord, picks []PickRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin transaction: %w", err)
	}
	defer tx.Rollback()

	runQuery := `
		INSERT INTO pick_runs (
			run_id, run_date, generated_at, games, games_with_odds,
			edges, strong_bets, bets, leans, passes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if _, err := tx.ExecContext(ctx, runQuery,
		run.RunID, run.Date, run.GeneratedAt, run.Games, run.GamesWithOdds,
		run.Edges, run.StrongBets, run.Bets, run.Leans, run.Passes,
	); err != nil {
		return fmt.Errorf("store: insert run: %w", err)
	}

	pickQuery := `
		INSERT INTO picks (
			run_id, game_id, team, opponent, sportsbook, moneyline,
			model_prob, implied_prob, raw_edge, adjusted_edge,
			modifier_reason, ai_score, pick_label, classification
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	for _, p := range picks {
		if _, err := tx.ExecContext(ctx, pickQuery,
			run.RunID, p.GameID, p.Team, p.Opponent, p.Sportsbook, p.Moneyline,
			p.ModelProb, p.ImpliedProb, p.RawEdge, p.AdjustedEdge,
			p.ModifierReason, p.AIScore, p.PickLabel, p.Classification,
		); err != nil {
			return fmt.Errorf("store: insert pick: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}

	return nil
}

// LatestRun returns the most recent run for a date, or nil when none exists
func (s *Store) LatestRun(ctx context.Context, date string) (*RunRecord, error) {
	query := `
		SELECT run_id, run_date, generated_at, games, games_with_odds,
		       edges, strong_bets, bets, leans, passes
		FROM pick_runs
		WHERE run_date = $1
		ORDER BY generated_at DESC
		LIMIT 1
	`

	var run RunRecord
	err := s.db.QueryRowContext(ctx, query, date).Scan(
		&run.RunID, &run.Date, &run.GeneratedAt, &run.Games, &run.GamesWithOdds,
		&run.Edges, &run.StrongBets, &run.Bets, &run.Leans, &run.Passes,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("store: query run: %w", err)
	}

	return &run, nil
}
