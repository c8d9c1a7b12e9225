// Package engine orchestrates one reconciliation pass: canonical games from
// the schedule, prediction overlay, model fallback for uncovered games, odds
// matching, and per-team edge scoring, producing a PickSheet.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/beaubranton4/d1-picks/internal/identity"
	"github.com/beaubranton4/d1-picks/internal/logger"
	"github.com/beaubranton4/d1-picks/internal/predictor"
	"github.com/beaubranton4/d1-picks/internal/reconcile"
	"github.com/beaubranton4/d1-picks/pkg/models"
	"github.com/beaubranton4/d1-picks/pkg/oddsmath"
)

// Input is everything one pass consumes, already materialized by the
// collaborators. Any collection may be empty; the sheet just ends up with
// fewer picks.
type Input struct {
	Date        string // YYYY-MM-DD
	Schedule    []models.ScheduleRecord
	Predictions []models.PredictionRecord
	Odds        []models.OddsEntry
	TeamStats   map[string]models.TeamStatLine
}

// Engine runs reconciliation passes. The predictor is optional: without one,
// games the prediction feed missed simply stay unpredicted and produce no
// edges.
type Engine struct {
	resolver  *identity.Resolver
	predictor *predictor.Predictor
}

// New creates an Engine
func New(resolver *identity.Resolver, p *predictor.Predictor) *Engine {
	return &Engine{resolver: resolver, predictor: p}
}

// Run executes one full pass for a date. The returned sheet is unfiltered:
// every scheduled game is present, PASS edges included. Only a predictor
// precondition failure (ErrModelNotLoaded) aborts the run; every data gap
// degrades to fewer picks.
func (e *Engine) Run(input Input) (*models.PickSheet, error) {
	merger := reconcile.NewMerger(e.resolver, input.Date)

	games := merger.BuildCanonicalGames(input.Schedule)
	games = merger.OverlayPredictions(games, input.Predictions)

	games, err := e.fillModelFallback(games, input.TeamStats)
	if err != nil {
		return nil, err
	}

	matcher := reconcile.NewMatcher(e.resolver)
	picks := matcher.MatchOdds(games, input.Odds)

	for i := range picks {
		picks[i].Edges = e.GameEdges(picks[i].Game, picks[i].Odds)
		sort.SliceStable(picks[i].Edges, func(a, b int) bool {
			return picks[i].Edges[a].AdjustedEdge > picks[i].Edges[b].AdjustedEdge
		})
	}

	sort.SliceStable(picks, func(a, b int) bool {
		if picks[a].Game.StartTime != picks[b].Game.StartTime {
			return picks[a].Game.StartTime < picks[b].Game.StartTime
		}
		return picks[a].Game.ID < picks[b].Game.ID
	})

	return &models.PickSheet{
		RunID:       uuid.New().String(),
		Date:        input.Date,
		GeneratedAt: time.Now().UTC(),
		Games:       picks,
		Summary:     summarize(picks),
	}, nil
}

// fillModelFallback supplies regression probabilities to games the
// prediction feed missed. Per-game prediction errors degrade to "no
// prediction"; an unloaded coefficient store aborts the pass.
func (e *Engine) fillModelFallback(games []models.Game, stats map[string]models.TeamStatLine) ([]models.Game, error) {
	if e.predictor == nil {
		return games, nil
	}

	out := make([]models.Game, len(games))
	copy(out, games)

	for i, game := range out {
		if game.HasPrediction {
			continue
		}

		pred, err := e.predictor.PredictGame(predictor.Matchup{
			Date:      game.Date,
			TeamA:     game.TeamA,
			TeamB:     game.TeamB,
			StatsA:    stats[game.TeamA],
			StatsB:    stats[game.TeamB],
			VenueType: game.VenueType,
		})
		if err != nil {
			if errors.Is(err, predictor.ErrModelNotLoaded) {
				return nil, fmt.Errorf("engine: model fallback: %w", err)
			}
			logger.Warn("model fallback failed for %s: %v", game.ID, err)
			continue
		}

		game.ModelProbA = pred.ProbA
		game.ModelProbB = pred.ProbB
		game.HasPrediction = true
		game.PredictionSource = models.PredictionFallback
		out[i] = game
	}

	return out, nil
}

// GameEdges computes one BetEdge per team of a predicted game that has at
// least one usable moneyline: the single best (highest) line per team,
// first occurrence winning ties.
func (e *Engine) GameEdges(game models.Game, odds []models.OddsEntry) []models.BetEdge {
	if !game.HasPrediction || len(odds) == 0 {
		return nil
	}

	best := make(map[string]models.OddsEntry)
	for _, entry := range odds {
		if entry.Moneyline == 0 {
			logger.Warn("skipping zero moneyline from %s for %s", entry.Sportsbook, entry.Team)
			continue
		}
		team := e.resolver.Normalize(entry.Team)
		if current, ok := best[team]; !ok || entry.Moneyline > current.Moneyline {
			best[team] = entry
		}
	}

	sides := []struct {
		team      string
		modelProb float64
		isHome    bool
	}{
		{game.TeamA, game.ModelProbA, game.TeamAHome},
		{game.TeamB, game.ModelProbB, game.TeamBHome},
	}

	edges := make([]models.BetEdge, 0, 2)
	for _, side := range sides {
		entry, ok := best[side.team]
		if !ok {
			continue // nobody posted a line for this side
		}

		edge, err := oddsmath.CalculateEdge(side.modelProb, entry.Moneyline, side.isHome, game.VenueType == models.VenueNeutral)
		if err != nil {
			logger.Warn("edge calculation failed for %s: %v", side.team, err)
			continue
		}

		score := oddsmath.AIScore(edge.AdjustedEdge)
		edges = append(edges, models.BetEdge{
			Team:           side.team,
			Sportsbook:     entry.Sportsbook,
			Moneyline:      entry.Moneyline,
			ModelProb:      side.modelProb,
			ImpliedProb:    edge.ImpliedProb,
			RawEdge:        edge.RawEdge,
			AdjustedEdge:   edge.AdjustedEdge,
			ModifierReason: edge.ModifierReason,
			AIScore:        score,
			PickLabel:      oddsmath.PickLabelFor(score),
			Classification: oddsmath.ClassifyBet(edge.AdjustedEdge),
		})
	}

	return edges
}

// FilterPicks returns the display view of a sheet: PASS edges dropped, games
// left with no edges dropped, counts recomputed. The unfiltered sheet is
// what gets persisted; consumers choose which view they want.
func FilterPicks(sheet *models.PickSheet) *models.PickSheet {
	filtered := &models.PickSheet{
		RunID:       sheet.RunID,
		Date:        sheet.Date,
		GeneratedAt: sheet.GeneratedAt,
	}

	for _, gp := range sheet.Games {
		kept := make([]models.BetEdge, 0, len(gp.Edges))
		for _, edge := range gp.Edges {
			if edge.Classification != oddsmath.ClassPass {
				kept = append(kept, edge)
			}
		}
		if len(kept) == 0 {
			continue
		}
		filtered.Games = append(filtered.Games, models.GamePicks{
			Game:  gp.Game,
			Odds:  gp.Odds,
			Edges: kept,
		})
	}

	filtered.Summary = summarize(filtered.Games)
	return filtered
}

func summarize(picks []models.GamePicks) models.SheetSummary {
	summary := models.SheetSummary{Games: len(picks)}

	for _, gp := range picks {
		if len(gp.Odds) > 0 {
			summary.GamesWithOdds++
		}
		for _, edge := range gp.Edges {
			summary.Edges++
			switch edge.Classification {
			case oddsmath.ClassStrongBet:
				summary.StrongBets++
			case oddsmath.ClassBet:
				summary.Bets++
			case oddsmath.ClassLean:
				summary.Leans++
			default:
				summary.Passes++
			}
		}
	}

	return summary
}
