package oddsmath

import (
	"fmt"
	"math"
)

// Situational modifiers applied on top of the raw edge. Home field is worth
// more than a neutral site; a game is never both.
const (
	HomeModifier    = 0.005
	NeutralModifier = 0.0025
)

const (
	homeModifierReason    = "home: +0.5%"
	neutralModifierReason = "neutral: +0.25%"
)

// Edge holds the result of a single edge calculation against one moneyline
type Edge struct {
	ImpliedProb    float64 `json:"implied_prob"`
	RawEdge        float64 `json:"raw_edge"`
	AdjustedEdge   float64 `json:"adjusted_edge"`
	ModifierReason *string `json:"modifier_reason,omitempty"`
}

// CalculateEdge compares a model win probability against the implied
// probability of an offered moneyline.
// rawEdge = modelProb - impliedProb; adjustedEdge adds the situational
// modifier (+0.5% home, +0.25% neutral, mutually exclusive).
func CalculateEdge(modelProb float64, moneyline int, isHome, isNeutral bool) (*Edge, error) {
	if math.IsNaN(modelProb) || math.IsInf(modelProb, 0) {
		return nil, fmt.Errorf("oddsmath: model probability %v: %w", modelProb, ErrInvalidProbability)
	}

	impliedProb, err := MoneylineToProb(moneyline)
	if err != nil {
		return nil, err
	}

	rawEdge := modelProb - impliedProb

	modifier := 0.0
	var modifierReason *string

	if isHome {
		modifier = HomeModifier
		reason := homeModifierReason
		modifierReason = &reason
	} else if isNeutral {
		modifier = NeutralModifier
		reason := neutralModifierReason
		modifierReason = &reason
	}

	return &Edge{
		ImpliedProb:    impliedProb,
		RawEdge:        rawEdge,
		AdjustedEdge:   rawEdge + modifier,
		ModifierReason: modifierReason,
	}, nil
}
