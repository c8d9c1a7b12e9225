package predictor

import (
	"math"

	"github.com/beaubranton4/d1-picks/pkg/models"
)

// Logistic steepness for converting an expected-run differential into a win
// probability, with the clamp keeping extreme blowout projections away from
// certainty.
const (
	runDiffSlope = 0.35
	minWinProb   = 0.01
	maxWinProb   = 0.99
)

// Matchup describes one game to the predictor. TeamA is the away side of
// the canonical game unless the venue is neutral. Stat lines may be nil or
// partial; missing stats fall back to league averages.
type Matchup struct {
	Date      string // YYYY-MM-DD
	TeamA     string
	TeamB     string
	StatsA    models.TeamStatLine
	StatsB    models.TeamStatLine
	VenueType models.VenueType
}

// GamePrediction is the predictor's view of one matchup: per-team expected
// runs and win probabilities, plus whether either side had to fall back to
// the global regression.
type GamePrediction struct {
	ExpectedRunsA float64 `json:"expected_runs_a"`
	ExpectedRunsB float64 `json:"expected_runs_b"`
	ProbA         float64 `json:"prob_a"`
	ProbB         float64 `json:"prob_b"`
	UsedGlobal    bool    `json:"used_global"`
}

// Predictor produces fallback win probabilities for games the prediction
// feed missed. It holds a reference to an immutable coefficient store and
// is safe for concurrent use once constructed.
type Predictor struct {
	store *Store
}

// NewPredictor wraps a loaded coefficient store. The store must be fully
// loaded before the first prediction; a nil store fails every call with
// ErrModelNotLoaded rather than panicking.
func NewPredictor(store *Store) *Predictor {
	return &Predictor{store: store}
}

// PredictGame predicts expected runs for both sides of a matchup and
// derives win probabilities from the differential.
//
// Each team's expected runs are the average of two perspectives on the same
// half of the matchup: the team's own offense regression and the opponent's
// defense (runs-allowed) regression. P(A wins) is a logistic transform of
// runsA−runsB, clamped to [0.01, 0.99]; P(B) = 1 − P(A).
func (p *Predictor) PredictGame(m Matchup) (*GamePrediction, error) {
	if p == nil || p.store == nil {
		return nil, ErrModelNotLoaded
	}

	aHome := m.VenueType == models.VenueHomeA
	bHome := m.VenueType == models.VenueHomeB
	neutral := m.VenueType == models.VenueNeutral

	offenseA, offGlobalA, err := p.store.Model(m.TeamA, KindOffense)
	if err != nil {
		return nil, err
	}
	defenseA, defGlobalA, err := p.store.Model(m.TeamA, KindDefense)
	if err != nil {
		return nil, err
	}
	offenseB, offGlobalB, err := p.store.Model(m.TeamB, KindOffense)
	if err != nil {
		return nil, err
	}
	defenseB, defGlobalB, err := p.store.Model(m.TeamB, KindDefense)
	if err != nil {
		return nil, err
	}

	scoredA := offenseA.Predict(offenseFeatures(m.StatsA, m.StatsB, m.Date, aHome, neutral))
	allowedA := defenseA.Predict(defenseFeatures(m.StatsA, m.StatsB, m.Date, aHome, neutral))
	scoredB := offenseB.Predict(offenseFeatures(m.StatsB, m.StatsA, m.Date, bHome, neutral))
	allowedB := defenseB.Predict(defenseFeatures(m.StatsB, m.StatsA, m.Date, bHome, neutral))

	// Both perspectives on the same half of the matchup: what A's offense
	// expects to score, and what B's defense expects to allow.
	runsA := (scoredA + allowedB) / 2
	runsB := (scoredB + allowedA) / 2

	probA := clampProb(1 / (1 + math.Exp(-runDiffSlope*(runsA-runsB))))

	return &GamePrediction{
		ExpectedRunsA: runsA,
		ExpectedRunsB: runsB,
		ProbA:         probA,
		ProbB:         1 - probA,
		UsedGlobal:    offGlobalA || defGlobalA || offGlobalB || defGlobalB,
	}, nil
}

func clampProb(p float64) float64 {
	if p < minWinProb {
		return minWinProb
	}
	if p > maxWinProb {
		return maxWinProb
	}
	return p
}
