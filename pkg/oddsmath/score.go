package oddsmath

import "math"

// PickLabel is the score-band tier assigned from the 1-10 AI score
type PickLabel string

const (
	LabelTopPick    PickLabel = "top_pick"    // score >= 8.5
	LabelStrongPlay PickLabel = "strong_play" // score >= 7
	LabelValuePlay  PickLabel = "value_play"  // score >= 5
	LabelNone       PickLabel = "none"
)

// BetClass is the legacy percentage-threshold classification of an edge
type BetClass string

const (
	ClassStrongBet BetClass = "STRONG_BET" // adjusted edge >= 7%
	ClassBet       BetClass = "BET"        // adjusted edge >= 5%
	ClassLean      BetClass = "LEAN"       // adjusted edge >= 3%
	ClassPass      BetClass = "PASS"
)

// AIScore maps an adjusted edge to a 1-10 composite rating:
// clamp(round(5 + edge*50, 1 decimal), 1, 10). Affine and monotone, so
// ranking by score preserves ranking by edge.
func AIScore(adjustedEdge float64) float64 {
	score := 5.0 + adjustedEdge*50.0
	score = math.Round(score*10.0) / 10.0

	if score < 1.0 {
		return 1.0
	}
	if score > 10.0 {
		return 10.0
	}
	return score
}

// PickLabelFor assigns the score-band tier. Band floors are inclusive.
func PickLabelFor(aiScore float64) PickLabel {
	switch {
	case aiScore >= 8.5:
		return LabelTopPick
	case aiScore >= 7.0:
		return LabelStrongPlay
	case aiScore >= 5.0:
		return LabelValuePlay
	default:
		return LabelNone
	}
}

// ClassifyBet applies the legacy edge-percentage thresholds. Kept as an
// independent labeling alongside PickLabelFor; downstream consumers pick
// whichever they were built against.
func ClassifyBet(adjustedEdge float64) BetClass {
	switch {
	case adjustedEdge >= 0.07:
		return ClassStrongBet
	case adjustedEdge >= 0.05:
		return ClassBet
	case adjustedEdge >= 0.03:
		return ClassLean
	default:
		return ClassPass
	}
}
