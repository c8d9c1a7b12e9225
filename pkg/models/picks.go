package models

import (
	"time"

	"github.com/beaubranton4/d1-picks/pkg/oddsmath"
)

// BetEdge is one computed betting opportunity: the best available moneyline
// for one team of one game, measured against the model probability. Both
// labelings are carried side by side; they are computed independently and
// consumers choose one.
type BetEdge struct {
	Team           string             `json:"team"`
	Sportsbook     string             `json:"sportsbook"`
	Moneyline      int                `json:"moneyline"`
	ModelProb      float64            `json:"model_prob"`
	ImpliedProb    float64            `json:"implied_prob"`
	RawEdge        float64            `json:"raw_edge"`
	AdjustedEdge   float64            `json:"adjusted_edge"`
	ModifierReason *string            `json:"modifier_reason,omitempty"`
	AIScore        float64            `json:"ai_score"`
	PickLabel      oddsmath.PickLabel `json:"pick_label"`
	Classification oddsmath.BetClass  `json:"classification"`
}

// GamePicks bundles a reconciled game with its matched odds and the edges
// computed from them. Odds may be empty; Edges may be empty.
type GamePicks struct {
	Game  Game        `json:"game"`
	Odds  []OddsEntry `json:"odds"`
	Edges []BetEdge   `json:"edges"`
}

// SheetSummary holds the per-run counts shown in pipeline output
type SheetSummary struct {
	Games         int `json:"games"`
	GamesWithOdds int `json:"games_with_odds"`
	Edges         int `json:"edges"`
	StrongBets    int `json:"strong_bets"`
	Bets          int `json:"bets"`
	Leans         int `json:"leans"`
	Passes        int `json:"passes"`
}

// PickSheet is the product of one full reconciliation pass for a date
type PickSheet struct {
	RunID       string       `json:"run_id"`
	Date        string       `json:"date"`
	GeneratedAt time.Time    `json:"generated_at"`
	Games       []GamePicks  `json:"games"`
	Summary     SheetSummary `json:"summary"`
}
