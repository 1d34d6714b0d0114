package statsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"scout-engine/internal/domain"
)

// Config controls how the statsfeed client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client fetches play-by-play snapshots and pre-game rosters from the
// statsfeed API and maps them to domain models.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
}

// NewClient constructs a statsfeed client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// FetchPlayByPlay retrieves the current play-by-play snapshot for a game.
func (c *Client) FetchPlayByPlay(ctx context.Context, gameID string) (domain.PlayByPlaySnapshot, error) {
	var payload pbpResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/games/%s/pbp", url.PathEscape(gameID)), &payload); err != nil {
		return domain.PlayByPlaySnapshot{}, err
	}
	return mapSnapshot(payload), nil
}

// FetchBaselines retrieves the pre-game roster with baseline condition scores.
func (c *Client) FetchBaselines(ctx context.Context, gameID string) ([]domain.PlayerBaseline, error) {
	var payload rosterResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/games/%s/roster", url.PathEscape(gameID)), &payload); err != nil {
		return nil, err
	}

	baselines := make([]domain.PlayerBaseline, 0, len(payload.Players))
	for _, row := range payload.Players {
		baselines = append(baselines, mapBaseline(row))
	}
	return baselines, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: unexpected status %d: %s", providerName, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
