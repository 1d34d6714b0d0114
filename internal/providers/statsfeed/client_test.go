package statsfeed

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"scout-engine/internal/domain"
)

func TestFetchPlayByPlayHitsAPIAndMapsResponse(t *testing.T) {
	var capturedPath string
	var capturedAuth string

	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		capturedPath = req.URL.Path
		capturedAuth = req.Header.Get("Authorization")

		body := `{
			"game_id": "game-1",
			"clock": "7:30",
			"period": 2,
			"halftime": false,
			"home_score": 54,
			"away_score": 50,
			"players": [
				{
					"name": " Jane Doe ",
					"jersey": "1",
					"team": "BOS",
					"position": "PG",
					"minutes_played": 15.5,
					"points": 12,
					"rebounds": 2,
					"assists": 5,
					"personal_fouls": 3,
					"field_goal_attempts": 10,
					"threes_made": 2
				}
			]
		}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		APIKey:     "secret",
		HTTPClient: &http.Client{Transport: rt},
	})

	snap, err := client.FetchPlayByPlay(context.Background(), "game-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if capturedPath != "/games/game-1/pbp" {
		t.Fatalf("unexpected path %s", capturedPath)
	}
	if capturedAuth != "Bearer secret" {
		t.Fatalf("expected authorization header, got %s", capturedAuth)
	}
	if snap.GameClock != "7:30" || snap.Period != 2 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.HomeScore != 54 || snap.AwayScore != 50 {
		t.Fatalf("unexpected scores %+v", snap)
	}
	if len(snap.Players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(snap.Players))
	}

	line := snap.Players[0]
	if line.Name != "Jane Doe" {
		t.Fatalf("expected trimmed name, got %q", line.Name)
	}
	if line.MinutesPlayed != 15.5 || line.Points != 12 || line.Fouls != 3 || line.Threes != 2 {
		t.Fatalf("unexpected player line %+v", line)
	}
}

func TestFetchBaselinesMapsRoster(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/games/game-1/roster" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		body := `{
			"game_id": "game-1",
			"players": [
				{
					"name": "Marcus Tall",
					"jersey": "42",
					"team": "BOS",
					"position": "C",
					"fatigue_baseline": 20,
					"effort_baseline": 55,
					"speed_baseline": 40,
					"minutes_estimate": 28,
					"trend": "steady",
					"consistency": "high"
				}
			]
		}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})

	baselines, err := client.FetchBaselines(context.Background(), "game-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(baselines) != 1 {
		t.Fatalf("expected 1 baseline, got %d", len(baselines))
	}

	b := baselines[0]
	want := domain.PlayerBaseline{
		Name: "Marcus Tall", Jersey: "42", Team: "BOS", Position: "C",
		Fatigue: 20, Effort: 55, Speed: 40, MinutesEstimate: 28,
		Trend: "steady", Consistency: "high",
	}
	if b != want {
		t.Fatalf("unexpected baseline %+v", b)
	}
}

func TestFetchPlayByPlayHandlesNon200(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("boom")),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})

	if _, err := client.FetchPlayByPlay(context.Background(), "game-1"); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestFetchPlayByPlayHandlesDecodeError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("{bad json")),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})

	if _, err := client.FetchPlayByPlay(context.Background(), "game-1"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNewClientSetsDefaultHTTPClient(t *testing.T) {
	c := NewClient(Config{})
	httpClient, ok := c.httpClient.(*http.Client)
	if !ok {
		t.Fatalf("expected default http client")
	}
	if httpClient.Timeout == 0 {
		t.Fatalf("expected timeout to be set on default http client")
	}
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
