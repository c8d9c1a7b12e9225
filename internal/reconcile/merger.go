package reconcile

import (
	"fmt"
	"strings"

	"github.com/beaubranton4/d1-picks/internal/identity"
	"github.com/beaubranton4/d1-picks/pkg/models"
)

// Merger builds canonical games for one date from the schedule feed and
// overlays win probabilities from the prediction feed on top of them.
type Merger struct {
	resolver *identity.Resolver
	date     string
}

// NewMerger creates a Merger for one reconciliation date (YYYY-MM-DD)
func NewMerger(resolver *identity.Resolver, date string) *Merger {
	return &Merger{resolver: resolver, date: date}
}

// BuildCanonicalGames maps schedule records to canonical games. Only records
// with status "scheduled" are kept. TeamA is the away side, TeamB the home
// side; a neutral-site flag overrides the home venue. Probabilities start at
// the uninformative 0.5/0.5 prior.
func (m *Merger) BuildCanonicalGames(records []models.ScheduleRecord) []models.Game {
	games := make([]models.Game, 0, len(records))

	for _, rec := range records {
		if !strings.EqualFold(strings.TrimSpace(rec.Status), "scheduled") {
			continue
		}

		teamA := m.resolver.Normalize(rec.AwayTeam)
		teamB := m.resolver.Normalize(rec.HomeTeam)

		game := models.Game{
			ID:               rec.ID,
			Date:             rec.Date,
			StartTime:        rec.StartTime,
			TeamA:            teamA,
			TeamB:            teamB,
			VenueType:        models.VenueHomeB,
			TeamBHome:        true,
			ModelProbA:       0.5,
			ModelProbB:       0.5,
			HasPrediction:    false,
			PredictionSource: models.PredictionNone,
			Rank:             rec.Rank,
			Venue:            rec.Venue,
			Broadcast:        rec.Broadcast,
		}

		if rec.NeutralSite {
			game.VenueType = models.VenueNeutral
			game.TeamBHome = false
		}
		if game.Date == "" {
			game.Date = m.date
		}
		if game.ID == "" {
			game.ID = gameID(game.Date, teamA, teamB)
		}

		games = append(games, game)
	}

	return games
}

// OverlayPredictions attaches prediction-feed probabilities to canonical
// games. A record's probability describes its second-named team; when the
// record's team order is reversed relative to the game, the assignment is
// swapped. Predictions with no matching game are appended as standalone
// games, so no schedule game is ever dropped and every prediction survives.
func (m *Merger) OverlayPredictions(games []models.Game, records []models.PredictionRecord) []models.Game {
	merged := make([]models.Game, len(games))
	copy(merged, games)

	for _, rec := range records {
		first := m.resolver.Normalize(rec.TeamA)
		second := m.resolver.Normalize(rec.TeamB)

		idx := -1
		for i, g := range merged {
			if sameMatchup(g.TeamA, g.TeamB, first, second) {
				idx = i
				break
			}
		}

		if idx < 0 {
			merged = append(merged, m.standaloneGame(first, second, rec))
			continue
		}

		game := merged[idx]
		if first == game.TeamA {
			// Same order: the probability belongs to the game's TeamB
			game.ModelProbB = rec.ProbTeamB
			game.ModelProbA = 1 - rec.ProbTeamB
		} else {
			// Reversed order: the record's second team is the game's TeamA
			game.ModelProbA = rec.ProbTeamB
			game.ModelProbB = 1 - rec.ProbTeamB
		}
		game.HasPrediction = true
		game.PredictionSource = models.PredictionExternal
		merged[idx] = game
	}

	return merged
}

// standaloneGame builds a game from a prediction record alone. The feed
// carries no venue information, so the game is treated as a neutral-site
// matchup.
func (m *Merger) standaloneGame(first, second string, rec models.PredictionRecord) models.Game {
	return models.Game{
		ID:               gameID(m.date, first, second),
		Date:             m.date,
		StartTime:        rec.StartTime,
		TeamA:            first,
		TeamB:            second,
		VenueType:        models.VenueNeutral,
		ModelProbA:       1 - rec.ProbTeamB,
		ModelProbB:       rec.ProbTeamB,
		HasPrediction:    true,
		PredictionSource: models.PredictionExternal,
	}
}

func sameMatchup(teamA, teamB, x, y string) bool {
	return (teamA == x && teamB == y) || (teamA == y && teamB == x)
}

func gameID(date, teamA, teamB string) string {
	id := fmt.Sprintf("%s_%s_%s", date, teamA, teamB)
	return strings.ToLower(strings.ReplaceAll(id, " ", "_"))
}
