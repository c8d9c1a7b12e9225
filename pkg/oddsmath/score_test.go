package oddsmath_test

import (
	"math"
	"testing"

	"github.com/beaubranton4/d1-picks/pkg/oddsmath"
)

func TestAIScore(t *testing.T) {
	tests := []struct {
		name         string
		adjustedEdge float64
		want         float64
	}{
		{"Zero edge is the midpoint", 0, 5.0},
		{"Small negative edge", -0.0048, 4.8},
		{"Home boosted coin flip", 0.0702, 8.5},
		{"Strong edge", 0.07, 8.5},
		{"Modest edge", 0.03, 6.5},
		{"Deeply negative clamps to floor", -0.5, 1.0},
		{"Huge edge clamps to ceiling", 0.5, 10.0},
		{"Rounds to one decimal", 0.0333, 6.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oddsmath.AIScore(tt.adjustedEdge)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AIScore(%f) = %f, want %f", tt.adjustedEdge, got, tt.want)
			}
		})
	}
}

func TestAIScore_BoundedAndMonotone(t *testing.T) {
	prev := 0.0
	for edge := -1.0; edge <= 1.0; edge += 0.001 {
		score := oddsmath.AIScore(edge)

		if score < 1.0 || score > 10.0 {
			t.Fatalf("AIScore(%f) = %f, outside [1,10]", edge, score)
		}
		if edge > -1.0 && score < prev {
			t.Fatalf("AIScore decreased: AIScore(%f) = %f < %f", edge, score, prev)
		}
		prev = score
	}
}

func TestPickLabelFor(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  oddsmath.PickLabel
	}{
		{"Top band floor", 8.5, oddsmath.LabelTopPick},
		{"Top band", 9.4, oddsmath.LabelTopPick},
		{"Second band floor", 7.0, oddsmath.LabelStrongPlay},
		{"Second band ceiling", 8.4, oddsmath.LabelStrongPlay},
		{"Third band floor", 5.0, oddsmath.LabelValuePlay},
		{"Third band ceiling", 6.9, oddsmath.LabelValuePlay},
		{"Below all bands", 4.9, oddsmath.LabelNone},
		{"Floor score", 1.0, oddsmath.LabelNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := oddsmath.PickLabelFor(tt.score); got != tt.want {
				t.Errorf("PickLabelFor(%f) = %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}

func TestPickLabelFor_MonotoneOverEdges(t *testing.T) {
	rank := map[oddsmath.PickLabel]int{
		oddsmath.LabelNone:       0,
		oddsmath.LabelValuePlay:  1,
		oddsmath.LabelStrongPlay: 2,
		oddsmath.LabelTopPick:    3,
	}

	prev := -1
	for edge := -0.2; edge <= 0.2; edge += 0.0005 {
		label := oddsmath.PickLabelFor(oddsmath.AIScore(edge))
		if rank[label] < prev {
			t.Fatalf("label rank decreased at edge %f: %q", edge, label)
		}
		prev = rank[label]
	}
}

func TestClassifyBet(t *testing.T) {
	tests := []struct {
		name         string
		adjustedEdge float64
		want         oddsmath.BetClass
	}{
		{"Strong bet threshold", 0.07, oddsmath.ClassStrongBet},
		{"Above strong bet", 0.12, oddsmath.ClassStrongBet},
		{"Bet threshold", 0.05, oddsmath.ClassBet},
		{"Just under strong", 0.069, oddsmath.ClassBet},
		{"Lean threshold", 0.03, oddsmath.ClassLean},
		{"Just under bet", 0.049, oddsmath.ClassLean},
		{"Just under lean", 0.029, oddsmath.ClassPass},
		{"Zero edge", 0, oddsmath.ClassPass},
		{"Negative edge", -0.04, oddsmath.ClassPass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := oddsmath.ClassifyBet(tt.adjustedEdge); got != tt.want {
				t.Errorf("ClassifyBet(%f) = %q, want %q", tt.adjustedEdge, got, tt.want)
			}
		})
	}
}

func TestClassifiersAreIndependent(t *testing.T) {
	// An edge of 4% rates LEAN on the legacy scale but sits in the
	// value_play score band; neither labeling implies the other.
	edge := 0.04

	if got := oddsmath.ClassifyBet(edge); got != oddsmath.ClassLean {
		t.Errorf("ClassifyBet(%f) = %q, want %q", edge, got, oddsmath.ClassLean)
	}

	score := oddsmath.AIScore(edge)
	if got := oddsmath.PickLabelFor(score); got != oddsmath.LabelStrongPlay {
		t.Errorf("PickLabelFor(%f) = %q, want %q", score, got, oddsmath.LabelStrongPlay)
	}
}
