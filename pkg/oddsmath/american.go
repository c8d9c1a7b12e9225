package oddsmath

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidOdds is returned for a moneyline of 0, which has no meaning
	// in American odds.
	ErrInvalidOdds = errors.New("oddsmath: moneyline cannot be 0")

	// ErrInvalidProbability is returned for probability inputs that are
	// non-finite or outside the convertible range.
	ErrInvalidProbability = errors.New("oddsmath: probability must be finite and in (0, 1)")
)

// MoneylineToProb converts American moneyline odds to implied probability
// Moneyline +150 → 0.400 (40.0%)
// Moneyline -150 → 0.600 (60.0%)
func MoneylineToProb(moneyline int) (float64, error) {
	if moneyline == 0 {
		return 0, ErrInvalidOdds
	}

	if moneyline > 0 {
		// Underdog: 100 / (moneyline + 100)
		return 100.0 / (float64(moneyline) + 100.0), nil
	}

	// Favorite: |moneyline| / (|moneyline| + 100)
	abs := float64(-moneyline)
	return abs / (abs + 100.0), nil
}

// ProbToMoneyline converts implied probability back to American moneyline
// odds. Even money (0.5) quotes as +100. Round-trips MoneylineToProb within
// ±1 for every valid integer moneyline.
// 0.400 → +150
// 0.600 → -150
func ProbToMoneyline(probability float64) (int, error) {
	if math.IsNaN(probability) || math.IsInf(probability, 0) {
		return 0, ErrInvalidProbability
	}
	if probability <= 0 || probability >= 1 {
		return 0, fmt.Errorf("oddsmath: probability %v out of range: %w", probability, ErrInvalidProbability)
	}

	if probability <= 0.5 {
		// Underdog side: +100 * (1-p) / p
		return int(math.Round(100.0 * (1.0 - probability) / probability)), nil
	}

	// Favorite side: -100 * p / (1-p)
	return int(math.Round(-100.0 * probability / (1.0 - probability))), nil
}
