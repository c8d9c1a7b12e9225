package predictor

import (
	"time"

	"github.com/beaubranton4/d1-picks/pkg/models"
)

// League-average substitutes for stats missing from a team's stat line.
// Taken from recent D1 season-wide numbers; an unknown team predicts as a
// perfectly average one.
var leagueAverages = map[string]float64{
	"ba":                      0.265,
	"slg":                     0.390,
	"ops":                     0.730,
	"obp":                     0.340,
	"era":                     4.50,
	"whip":                    1.35,
	"recent_runs_scored_avg":  5.5,
	"recent_runs_allowed_avg": 5.5,
	"recent_win_rate":         0.500,
}

// stat reads one value from a team stat line, substituting the league
// average when the key is absent. Stat lines are allowed to be nil.
func stat(line models.TeamStatLine, key string) float64 {
	if line != nil {
		if v, ok := line[key]; ok {
			return v
		}
	}
	return leagueAverages[key]
}

// dayOfWeek encodes a YYYY-MM-DD date as Monday=0..Sunday=6, matching the
// encoding of the training data. Unparseable dates encode as Monday.
func dayOfWeek(date string) float64 {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	return float64((int(t.Weekday()) + 6) % 7)
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// offenseFeatures builds the feature vector for a team's expected runs
// scored against a given opponent.
func offenseFeatures(team, opp models.TeamStatLine, date string, isHome, isNeutral bool) map[string]float64 {
	return map[string]float64{
		"day_of_week":                 dayOfWeek(date),
		"is_home":                     boolFeature(isHome),
		"is_neutral":                  boolFeature(isNeutral),
		"team_ba":                     stat(team, "ba"),
		"team_slg":                    stat(team, "slg"),
		"team_ops":                    stat(team, "ops"),
		"team_obp":                    stat(team, "obp"),
		"opp_era":                     stat(opp, "era"),
		"opp_whip":                    stat(opp, "whip"),
		"recent_runs_scored_avg":      stat(team, "recent_runs_scored_avg"),
		"recent_runs_allowed_avg":     stat(team, "recent_runs_allowed_avg"),
		"opp_recent_runs_allowed_avg": stat(opp, "recent_runs_allowed_avg"),
		"recent_win_rate":             stat(team, "recent_win_rate"),
	}
}

// defenseFeatures builds the feature vector for a team's expected runs
// allowed against a given opponent; the mirror of offenseFeatures.
func defenseFeatures(team, opp models.TeamStatLine, date string, isHome, isNeutral bool) map[string]float64 {
	return map[string]float64{
		"day_of_week":                dayOfWeek(date),
		"is_home":                    boolFeature(isHome),
		"is_neutral":                 boolFeature(isNeutral),
		"team_era":                   stat(team, "era"),
		"team_whip":                  stat(team, "whip"),
		"opp_ba":                     stat(opp, "ba"),
		"opp_slg":                    stat(opp, "slg"),
		"opp_ops":                    stat(opp, "ops"),
		"recent_runs_scored_avg":     stat(team, "recent_runs_scored_avg"),
		"recent_runs_allowed_avg":    stat(team, "recent_runs_allowed_avg"),
		"opp_recent_runs_scored_avg": stat(opp, "recent_runs_scored_avg"),
		"recent_win_rate":            stat(team, "recent_win_rate"),
	}
}
