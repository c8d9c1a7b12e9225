package models

// VenueType describes where a game is played relative to its two teams
type VenueType string

const (
	VenueHomeA   VenueType = "home_a"  // teamA hosts
	VenueHomeB   VenueType = "home_b"  // teamB hosts
	VenueNeutral VenueType = "neutral" // neutral site
)

// PredictionSource records where a game's win probabilities came from
type PredictionSource string

const (
	PredictionNone     PredictionSource = "none"           // uninformative 50/50 prior
	PredictionExternal PredictionSource = "external"       // prediction feed
	PredictionFallback PredictionSource = "model_fallback" // regression predictor
)

// Game is a canonical, reconciled view of one scheduled matchup.
// TeamA is the away side of the schedule record, TeamB the home side.
// Games are values: merge steps return new Games, they never mutate in place.
type Game struct {
	ID        string `json:"id"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // as given by the schedule feed

	TeamA     string    `json:"team_a"` // canonical slug
	TeamB     string    `json:"team_b"` // canonical slug
	TeamAHome bool      `json:"team_a_home"`
	TeamBHome bool      `json:"team_b_home"`
	VenueType VenueType `json:"venue_type"`

	ModelProbA       float64          `json:"model_prob_a"`
	ModelProbB       float64          `json:"model_prob_b"`
	HasPrediction    bool             `json:"has_prediction"`
	PredictionSource PredictionSource `json:"prediction_source"`

	// Optional schedule extras
	Rank      *int   `json:"rank,omitempty"`
	Venue     string `json:"venue,omitempty"`
	Broadcast string `json:"broadcast,omitempty"`
}

// ScheduleRecord is one row of the schedule feed
type ScheduleRecord struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
	NeutralSite bool   `json:"neutral_site"`
	Status      string `json:"status"` // only "scheduled" games are kept
	Rank        *int   `json:"rank,omitempty"`
	Venue       string `json:"venue,omitempty"`
	Broadcast   string `json:"broadcast,omitempty"`
}

// PredictionRecord is one row of the win-probability feed.
// ProbTeamB always describes the second-named team; reconciliation
// re-orients it against the schedule's team order.
type PredictionRecord struct {
	TeamA     string  `json:"team_a"`
	TeamB     string  `json:"team_b"`
	ProbTeamB float64 `json:"prob_team_b"`
	StartTime string  `json:"start_time"`
}

// TeamStatLine holds a team's raw season/rolling stats keyed by stat name
// (ba, slg, ops, obp, era, whip, recent_runs_scored_avg,
// recent_runs_allowed_avg, recent_win_rate). Missing keys are legal; the
// predictor substitutes league averages.
type TeamStatLine map[string]float64
