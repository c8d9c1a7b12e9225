package predictor_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/beaubranton4/d1-picks/internal/predictor"
	"github.com/beaubranton4/d1-picks/pkg/models"
)

// flatModel builds a regression that ignores every feature and always
// predicts the intercept.
func flatModel(intercept float64) *predictor.Model {
	return &predictor.Model{
		Intercept:   intercept,
		Features:    map[string]float64{},
		ScalerMeans: map[string]float64{},
		ScalerStds:  map[string]float64{},
	}
}

func testStore(t *testing.T) *predictor.Store {
	t.Helper()

	return &predictor.Store{
		Global: predictor.TeamModels{
			Offense: flatModel(5.5),
			Defense: flatModel(5.5),
		},
		Teams: map[string]predictor.TeamModels{
			"lsu": {
				Offense: flatModel(7.0),
				Defense: flatModel(4.0),
			},
			"vanderbilt": {
				// Offense only: defense lookups fall through to global
				Offense: flatModel(6.0),
			},
		},
	}
}

func TestModelPredict(t *testing.T) {
	model := &predictor.Model{
		Intercept: 5.0,
		Features: map[string]float64{
			"team_ba":  2.0,
			"opp_era":  1.5,
			"constant": 3.0,
		},
		ScalerMeans: map[string]float64{
			"team_ba":  0.265,
			"opp_era":  4.50,
			"constant": 1.0,
		},
		ScalerStds: map[string]float64{
			"team_ba":  0.020,
			"opp_era":  0.80,
			"constant": 0.0, // zero std: feature contributes nothing
		},
	}

	features := map[string]float64{
		"team_ba":  0.285, // +1 std
		"opp_era":  3.70,  // -1 std
		"constant": 99.0,
	}

	// 5.0 + 2.0*1 + 1.5*(-1) + 3.0*0 = 5.5
	got := model.Predict(features)
	if math.Abs(got-5.5) > 1e-9 {
		t.Errorf("Predict = %f, want 5.5", got)
	}
}

func TestModelPredict_FloorsAtZero(t *testing.T) {
	model := flatModel(-3.2)
	if got := model.Predict(nil); got != 0 {
		t.Errorf("Predict = %f, want 0 (negative runs floored)", got)
	}
}

func TestStoreModel_TeamSpecific(t *testing.T) {
	store := testStore(t)

	model, usedGlobal, err := store.Model("lsu", predictor.KindOffense)
	if err != nil {
		t.Fatalf("Model: %v", err)
	}
	if usedGlobal {
		t.Error("usedGlobal = true, want false for team with its own model")
	}
	if model.Intercept != 7.0 {
		t.Errorf("Intercept = %f, want 7.0", model.Intercept)
	}
}

func TestStoreModel_GlobalFallback(t *testing.T) {
	store := testStore(t)

	// No team entry at all
	model, usedGlobal, err := store.Model("rice", predictor.KindOffense)
	if err != nil {
		t.Fatalf("Model: %v", err)
	}
	if !usedGlobal {
		t.Error("usedGlobal = false, want true for unknown team")
	}
	if model.Intercept != 5.5 {
		t.Errorf("Intercept = %f, want global 5.5", model.Intercept)
	}

	// Team entry exists but is missing the requested kind
	_, usedGlobal, err = store.Model("vanderbilt", predictor.KindDefense)
	if err != nil {
		t.Fatalf("Model: %v", err)
	}
	if !usedGlobal {
		t.Error("usedGlobal = false, want true for missing kind")
	}
}

func TestStoreModel_NilStore(t *testing.T) {
	var store *predictor.Store
	_, _, err := store.Model("lsu", predictor.KindOffense)
	if !errors.Is(err, predictor.ErrModelNotLoaded) {
		t.Errorf("err = %v, want ErrModelNotLoaded", err)
	}
}

func TestParseStore(t *testing.T) {
	doc := `{
		"global": {
			"offense": {"intercept": 5.5, "features": {"team_ba": 1.2}, "scaler_means": {"team_ba": 0.265}, "scaler_stds": {"team_ba": 0.02}},
			"defense": {"intercept": 5.4, "features": {}, "scaler_means": {}, "scaler_stds": {}}
		},
		"teams": {
			"lsu": {"offense": {"intercept": 7.1, "features": {}, "scaler_means": {}, "scaler_stds": {}}}
		},
		"extra_key": "ignored"
	}`

	store, err := predictor.ParseStore([]byte(doc))
	if err != nil {
		t.Fatalf("ParseStore: %v", err)
	}
	if store.Global.Offense.Intercept != 5.5 {
		t.Errorf("global offense intercept = %f, want 5.5", store.Global.Offense.Intercept)
	}
	if store.Teams["lsu"].Offense.Intercept != 7.1 {
		t.Errorf("lsu offense intercept = %f, want 7.1", store.Teams["lsu"].Offense.Intercept)
	}
}

func TestParseStore_MissingGlobal(t *testing.T) {
	_, err := predictor.ParseStore([]byte(`{"teams": {}}`))
	if !errors.Is(err, predictor.ErrModelNotLoaded) {
		t.Errorf("err = %v, want ErrModelNotLoaded", err)
	}
}

func TestLoadStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coefficients.json")
	doc := `{
		"global": {
			"offense": {"intercept": 5.5, "features": {}, "scaler_means": {}, "scaler_stds": {}},
			"defense": {"intercept": 5.4, "features": {}, "scaler_means": {}, "scaler_stds": {}}
		}
	}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	store, err := predictor.LoadStore(path)
	if err != nil {
		t.Fatalf("LoadStore: %v", err)
	}
	if store.Global.Defense.Intercept != 5.4 {
		t.Errorf("global defense intercept = %f, want 5.4", store.Global.Defense.Intercept)
	}
}

func TestPredictGame(t *testing.T) {
	store := testStore(t)
	p := predictor.NewPredictor(store)

	// lsu: offense 7.0 / defense 4.0; rice resolves to global 5.5/5.5.
	// runsA = (7.0 + 5.5)/2 = 6.25; runsB = (5.5 + 4.0)/2 = 4.75.
	// P(A) = 1/(1+e^(-0.35*1.5)) ≈ 0.6281
	pred, err := p.PredictGame(predictor.Matchup{
		Date:      "2024-04-12",
		TeamA:     "lsu",
		TeamB:     "rice",
		VenueType: models.VenueHomeB,
	})
	if err != nil {
		t.Fatalf("PredictGame: %v", err)
	}

	if math.Abs(pred.ExpectedRunsA-6.25) > 1e-9 {
		t.Errorf("ExpectedRunsA = %f, want 6.25", pred.ExpectedRunsA)
	}
	if math.Abs(pred.ExpectedRunsB-4.75) > 1e-9 {
		t.Errorf("ExpectedRunsB = %f, want 4.75", pred.ExpectedRunsB)
	}

	wantProbA := 1 / (1 + math.Exp(-0.35*1.5))
	if math.Abs(pred.ProbA-wantProbA) > 1e-9 {
		t.Errorf("ProbA = %f, want %f", pred.ProbA, wantProbA)
	}
	if math.Abs(pred.ProbA+pred.ProbB-1) > 1e-9 {
		t.Errorf("ProbA + ProbB = %f, want 1", pred.ProbA+pred.ProbB)
	}
	if !pred.UsedGlobal {
		t.Error("UsedGlobal = false, want true (rice has no team model)")
	}
}

func TestPredictGame_ClampsExtremes(t *testing.T) {
	store := &predictor.Store{
		Global: predictor.TeamModels{
			Offense: flatModel(5.5),
			Defense: flatModel(5.5),
		},
		Teams: map[string]predictor.TeamModels{
			"slugger":  {Offense: flatModel(40.0), Defense: flatModel(0.0)},
			"pushover": {Offense: flatModel(0.0), Defense: flatModel(40.0)},
		},
	}
	p := predictor.NewPredictor(store)

	pred, err := p.PredictGame(predictor.Matchup{
		Date:      "2024-04-12",
		TeamA:     "slugger",
		TeamB:     "pushover",
		VenueType: models.VenueNeutral,
	})
	if err != nil {
		t.Fatalf("PredictGame: %v", err)
	}

	if pred.ProbA != 0.99 {
		t.Errorf("ProbA = %f, want clamped 0.99", pred.ProbA)
	}
	if math.Abs(pred.ProbB-0.01) > 1e-9 {
		t.Errorf("ProbB = %f, want 0.01", pred.ProbB)
	}
}

func TestPredictGame_NotLoaded(t *testing.T) {
	p := predictor.NewPredictor(nil)
	_, err := p.PredictGame(predictor.Matchup{TeamA: "lsu", TeamB: "rice"})
	if !errors.Is(err, predictor.ErrModelNotLoaded) {
		t.Errorf("err = %v, want ErrModelNotLoaded", err)
	}
}

func TestPredictGame_NoTeamModelForRice(t *testing.T) {
	// Scenario from the reconciliation flow: a team absent from the store
	// predicts with the global regression and flags the fallback.
	store := testStore(t)

	_, usedGlobal, err := store.Model("rice", predictor.KindOffense)
	if err != nil {
		t.Fatalf("Model: %v", err)
	}
	if !usedGlobal {
		t.Error("usedGlobal = false, want true")
	}
}
