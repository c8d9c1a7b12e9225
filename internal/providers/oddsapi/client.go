// Package oddsapi fetches NCAA baseball moneylines from The Odds API v4 and
// flattens them into one OddsEntry per (game, sportsbook, team) outcome.
package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/beaubranton4/d1-picks/internal/logger"
	"github.com/beaubranton4/d1-picks/pkg/models"
)

const (
	DefaultBaseURL = "https://api.the-odds-api.com"

	sportKey  = "baseball_ncaa"
	marketKey = "h2h"
)

// Client is an Odds API v4 HTTP client
type Client struct {
	baseURL    string
	apiKey     string
	bookmakers string
	httpClient *http.Client
}

// NewClient creates a client. baseURL falls back to the public API host;
// bookmakers is the comma-separated list the request is limited to.
func NewClient(baseURL, apiKey, bookmakers string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		bookmakers: bookmakers,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Response DTOs for the v4 odds endpoint
type apiGame struct {
	ID           string         `json:"id"`
	HomeTeam     string         `json:"home_team"`
	AwayTeam     string         `json:"away_team"`
	CommenceTime string         `json:"commence_time"`
	Bookmakers   []apiBookmaker `json:"bookmakers"`
}

type apiBookmaker struct {
	Key     string      `json:"key"`
	Markets []apiMarket `json:"markets"`
}

type apiMarket struct {
	Key      string       `json:"key"`
	Outcomes []apiOutcome `json:"outcomes"`
}

type apiOutcome struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// FetchMoneylines retrieves current American moneylines for all upcoming
// NCAA baseball games. Outcomes with a zero price are dropped at the
// boundary; they have no American-odds meaning.
func (c *Client) FetchMoneylines(ctx context.Context) ([]models.OddsEntry, error) {
	endpoint := fmt.Sprintf("%s/v4/sports/%s/odds", c.baseURL, sportKey)

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", "us")
	params.Set("markets", marketKey)
	params.Set("oddsFormat", "american")
	if c.bookmakers != "" {
		params.Set("bookmakers", c.bookmakers)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("oddsapi: creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oddsapi: making request: %w", err)
	}
	defer resp.Body.Close()

	if remaining := resp.Header.Get("x-requests-remaining"); remaining != "" {
		logger.Info("odds api quota remaining: %s", remaining)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("oddsapi: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var games []apiGame
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("oddsapi: decoding response: %w", err)
	}

	return flatten(games), nil
}

func flatten(games []apiGame) []models.OddsEntry {
	var entries []models.OddsEntry

	for _, game := range games {
		for _, bookmaker := range game.Bookmakers {
			for _, market := range bookmaker.Markets {
				if market.Key != marketKey {
					continue
				}
				for _, outcome := range market.Outcomes {
					if outcome.Price == 0 {
						continue
					}
					entries = append(entries, models.OddsEntry{
						GameID:       game.ID,
						HomeTeam:     game.HomeTeam,
						AwayTeam:     game.AwayTeam,
						CommenceTime: game.CommenceTime,
						Sportsbook:   bookmaker.Key,
						Team:         outcome.Name,
						Moneyline:    outcome.Price,
					})
				}
			}
		}
	}

	return entries
}
