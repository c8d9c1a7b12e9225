package oddsapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beaubranton4/d1-picks/internal/providers/oddsapi"
)

const sampleResponse = `[
	{
		"id": "abc123",
		"home_team": "LSU Tigers",
		"away_team": "Ole Miss Rebels",
		"commence_time": "2024-04-12T23:00:00Z",
		"bookmakers": [
			{
				"key": "draftkings",
				"markets": [
					{
						"key": "h2h",
						"outcomes": [
							{"name": "LSU Tigers", "price": -145},
							{"name": "Ole Miss Rebels", "price": 125}
						]
					},
					{
						"key": "spreads",
						"outcomes": [
							{"name": "LSU Tigers", "price": -110}
						]
					}
				]
			},
			{
				"key": "fanduel",
				"markets": [
					{
						"key": "h2h",
						"outcomes": [
							{"name": "LSU Tigers", "price": -150},
							{"name": "Ole Miss Rebels", "price": 0}
						]
					}
				]
			}
		]
	}
]`

func TestFetchMoneylines(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("x-requests-remaining", "499")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := oddsapi.NewClient(srv.URL, "test-key", "draftkings,fanduel,betmgm", 5*time.Second)

	entries, err := client.FetchMoneylines(context.Background())
	if err != nil {
		t.Fatalf("FetchMoneylines: %v", err)
	}

	if gotPath != "/v4/sports/baseball_ncaa/odds" {
		t.Errorf("path = %q", gotPath)
	}
	for key, want := range map[string]string{
		"apiKey":     "test-key",
		"regions":    "us",
		"markets":    "h2h",
		"oddsFormat": "american",
		"bookmakers": "draftkings,fanduel,betmgm",
	} {
		if len(gotQuery[key]) != 1 || gotQuery[key][0] != want {
			t.Errorf("query %s = %v, want %q", key, gotQuery[key], want)
		}
	}

	// 2 h2h outcomes from draftkings + 1 from fanduel (zero price dropped);
	// the spreads market is ignored.
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}

	first := entries[0]
	if first.GameID != "abc123" || first.Sportsbook != "draftkings" {
		t.Errorf("first entry = %+v", first)
	}
	if first.Team != "LSU Tigers" || first.Moneyline != -145 {
		t.Errorf("first entry = %+v", first)
	}
	if first.HomeTeam != "LSU Tigers" || first.AwayTeam != "Ole Miss Rebels" {
		t.Errorf("first entry teams = %+v", first)
	}

	for _, entry := range entries {
		if entry.Moneyline == 0 {
			t.Error("zero-price outcome survived flattening")
		}
	}
}

func TestFetchMoneylines_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := oddsapi.NewClient(srv.URL, "bad-key", "", 5*time.Second)

	if _, err := client.FetchMoneylines(context.Background()); err == nil {
		t.Error("expected error on 401 response")
	}
}

func TestFetchMoneylines_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := oddsapi.NewClient(srv.URL, "test-key", "", 5*time.Second)

	entries, err := client.FetchMoneylines(context.Background())
	if err != nil {
		t.Fatalf("FetchMoneylines: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}
