package reconcile

import (
	"github.com/beaubranton4/d1-picks/internal/identity"
	"github.com/beaubranton4/d1-picks/pkg/models"
)

// Matcher attaches odds-feed entries to canonical games. Odds providers use
// their own game ids, so matching goes by the unordered pair of normalized
// team names instead.
type Matcher struct {
	resolver *identity.Resolver
}

// NewMatcher creates a Matcher
func NewMatcher(resolver *identity.Resolver) *Matcher {
	return &Matcher{resolver: resolver}
}

type teamPair struct {
	lo, hi string
}

func newTeamPair(x, y string) teamPair {
	if x > y {
		x, y = y, x
	}
	return teamPair{lo: x, hi: y}
}

// MatchOdds collects, for every game, the odds entries whose normalized
// {home, away} set equals the game's {TeamA, TeamB} set. Every input game is
// emitted exactly once; games nobody posted a line for carry an empty odds
// list. Entry order within a game follows feed order.
func (m *Matcher) MatchOdds(games []models.Game, entries []models.OddsEntry) []models.GamePicks {
	index := make(map[teamPair][]models.OddsEntry)
	for _, entry := range entries {
		home := m.resolver.Normalize(entry.HomeTeam)
		away := m.resolver.Normalize(entry.AwayTeam)
		key := newTeamPair(home, away)
		index[key] = append(index[key], entry)
	}

	matched := make([]models.GamePicks, 0, len(games))
	for _, game := range games {
		matched = append(matched, models.GamePicks{
			Game: game,
			Odds: index[newTeamPair(game.TeamA, game.TeamB)],
		})
	}

	return matched
}
