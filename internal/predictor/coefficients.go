package predictor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrModelNotLoaded is returned when a prediction is requested before the
// coefficient store has been initialized, or when the store is missing the
// global model a lookup needs to fall back to. There is no further fallback
// past the global model; callers must treat this as a fatal precondition.
var ErrModelNotLoaded = errors.New("predictor: coefficient store not loaded")

// ModelKind selects which regression a team lookup resolves
type ModelKind string

const (
	KindOffense ModelKind = "offense" // expected runs scored
	KindDefense ModelKind = "defense" // expected runs allowed
)

// Model is one standardized linear regression: runs = intercept +
// Σ weight·standardize(value). Weights, means and stds are keyed by feature
// name; the three maps share the same key set in a well-formed store.
type Model struct {
	Intercept   float64            `json:"intercept"`
	Features    map[string]float64 `json:"features"`
	ScalerMeans map[string]float64 `json:"scaler_means"`
	ScalerStds  map[string]float64 `json:"scaler_stds"`
}

// Predict evaluates the regression against a feature vector. Values are
// standardized with the stored scaler parameters ((v-mean)/std, or 0 when
// std is not positive). The result is floored at 0: runs cannot be negative.
func (m *Model) Predict(features map[string]float64) float64 {
	sum := m.Intercept

	for name, weight := range m.Features {
		value := features[name]
		mean := m.ScalerMeans[name]
		std := m.ScalerStds[name]
		sum += weight * standardize(value, mean, std)
	}

	if sum < 0 {
		return 0
	}
	return sum
}

func standardize(value, mean, std float64) float64 {
	if std > 0 {
		return (value - mean) / std
	}
	return 0
}

// TeamModels holds the per-kind regressions for one team. Either side may
// be absent for teams with too little training data; lookups then fall back
// to the global model.
type TeamModels struct {
	Offense *Model `json:"offense,omitempty"`
	Defense *Model `json:"defense,omitempty"`
}

// Store is the full coefficient document exported by model training. It is
// loaded once before any prediction, owned by the caller, and read-only
// thereafter: safe to share by reference across concurrent predictions.
type Store struct {
	Global TeamModels            `json:"global"`
	Teams  map[string]TeamModels `json:"teams"`
}

// ParseStore decodes a coefficient document. Unknown keys are ignored; a
// store whose global side is missing either model is rejected, since every
// lookup must be able to fall back to it.
func ParseStore(data []byte) (*Store, error) {
	var store Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("predictor: parsing coefficients: %w", err)
	}

	if store.Global.Offense == nil || store.Global.Defense == nil {
		return nil, fmt.Errorf("predictor: coefficient store missing global models: %w", ErrModelNotLoaded)
	}
	if store.Teams == nil {
		store.Teams = map[string]TeamModels{}
	}

	return &store, nil
}

// LoadStore reads and parses a coefficient document from disk
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("predictor: reading coefficients: %w", err)
	}
	return ParseStore(data)
}

// Model resolves the regression for a team and kind. Teams without their
// own model for the kind resolve to the global model with usedGlobal=true.
// A nil store, or a global gap, is ErrModelNotLoaded.
func (s *Store) Model(team string, kind ModelKind) (*Model, bool, error) {
	if s == nil {
		return nil, false, ErrModelNotLoaded
	}

	if tm, ok := s.Teams[team]; ok {
		switch kind {
		case KindOffense:
			if tm.Offense != nil {
				return tm.Offense, false, nil
			}
		case KindDefense:
			if tm.Defense != nil {
				return tm.Defense, false, nil
			}
		}
	}

	var global *Model
	switch kind {
	case KindOffense:
		global = s.Global.Offense
	case KindDefense:
		global = s.Global.Defense
	default:
		return nil, false, fmt.Errorf("predictor: unknown model kind %q", kind)
	}

	if global == nil {
		return nil, false, fmt.Errorf("predictor: no global %s model: %w", kind, ErrModelNotLoaded)
	}
	return global, true, nil
}
