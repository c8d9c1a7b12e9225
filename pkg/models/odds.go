package models

// OddsEntry is one flattened moneyline outcome from the odds feed: one row
// per (game, sportsbook, team). GameID is the provider's id and is advisory
// only — matching against canonical games goes by team-name set, never by id.
type OddsEntry struct {
	GameID       string `json:"game_id"`
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	CommenceTime string `json:"commence_time"`
	Sportsbook   string `json:"sportsbook"`
	Team         string `json:"team"`
	Moneyline    int    `json:"moneyline"` // American odds, never 0
}
