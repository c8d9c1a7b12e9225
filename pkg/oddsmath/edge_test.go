package oddsmath_test

import (
	"errors"
	"math"
	"testing"

	"github.com/beaubranton4/d1-picks/pkg/oddsmath"
)

func TestCalculateEdge(t *testing.T) {
	tests := []struct {
		name         string
		modelProb    float64
		moneyline    int
		isHome       bool
		isNeutral    bool
		wantImplied  float64
		wantRaw      float64
		wantAdjusted float64
		wantReason   string // "" means no modifier
	}{
		{
			name:         "Slight negative edge on the road",
			modelProb:    0.43,
			moneyline:    130,
			wantImplied:  0.4348,
			wantRaw:      -0.0048,
			wantAdjusted: -0.0048,
		},
		{
			name:         "Coin flip model vs plus money at home",
			modelProb:    0.50,
			moneyline:    130,
			isHome:       true,
			wantImplied:  0.4348,
			wantRaw:      0.0652,
			wantAdjusted: 0.0702,
			wantReason:   "home: +0.5%",
		},
		{
			name:         "Neutral site modifier",
			modelProb:    0.55,
			moneyline:    -110,
			isNeutral:    true,
			wantImplied:  0.5238,
			wantRaw:      0.0262,
			wantAdjusted: 0.0287,
			wantReason:   "neutral: +0.25%",
		},
		{
			name:         "Favorite priced past the model",
			modelProb:    0.58,
			moneyline:    -200,
			wantImplied:  0.6667,
			wantRaw:      -0.0867,
			wantAdjusted: -0.0867,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.CalculateEdge(tt.modelProb, tt.moneyline, tt.isHome, tt.isNeutral)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if math.Abs(got.ImpliedProb-tt.wantImplied) > 0.0001 {
				t.Errorf("ImpliedProb = %f, want %f", got.ImpliedProb, tt.wantImplied)
			}
			if math.Abs(got.RawEdge-tt.wantRaw) > 0.0001 {
				t.Errorf("RawEdge = %f, want %f", got.RawEdge, tt.wantRaw)
			}
			if math.Abs(got.AdjustedEdge-tt.wantAdjusted) > 0.0001 {
				t.Errorf("AdjustedEdge = %f, want %f", got.AdjustedEdge, tt.wantAdjusted)
			}

			if tt.wantReason == "" {
				if got.ModifierReason != nil {
					t.Errorf("ModifierReason = %q, want nil", *got.ModifierReason)
				}
			} else {
				if got.ModifierReason == nil {
					t.Fatalf("ModifierReason = nil, want %q", tt.wantReason)
				}
				if *got.ModifierReason != tt.wantReason {
					t.Errorf("ModifierReason = %q, want %q", *got.ModifierReason, tt.wantReason)
				}
			}
		})
	}
}

func TestCalculateEdge_HomeBeatsNeutral(t *testing.T) {
	// isHome wins when both flags are set; venue construction makes this
	// unreachable but the precedence is still fixed
	got, err := oddsmath.CalculateEdge(0.5, 100, true, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(got.AdjustedEdge-got.RawEdge-oddsmath.HomeModifier) > 1e-12 {
		t.Errorf("expected home modifier %f, got %f", oddsmath.HomeModifier, got.AdjustedEdge-got.RawEdge)
	}
}

func TestCalculateEdge_InvalidInputs(t *testing.T) {
	if _, err := oddsmath.CalculateEdge(0.5, 0, false, false); !errors.Is(err, oddsmath.ErrInvalidOdds) {
		t.Errorf("moneyline 0: expected ErrInvalidOdds, got %v", err)
	}

	if _, err := oddsmath.CalculateEdge(math.NaN(), 130, false, false); !errors.Is(err, oddsmath.ErrInvalidProbability) {
		t.Errorf("NaN model prob: expected ErrInvalidProbability, got %v", err)
	}

	if _, err := oddsmath.CalculateEdge(math.Inf(-1), 130, false, false); !errors.Is(err, oddsmath.ErrInvalidProbability) {
		t.Errorf("Inf model prob: expected ErrInvalidProbability, got %v", err)
	}
}
