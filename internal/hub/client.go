package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const userAgent = "QwickyBot/1.0"

// Client reads game rows from the hub database and downloads ktxstats
// payloads from the demo CDN. It keeps no state between calls: repeated
// fetches for the same game ID hit the network every time.
type Client struct {
	dbURL      string
	demoURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a hub client. dbURL is the games table REST endpoint,
// demoURL the base URL of the demo CDN.
func NewClient(dbURL, demoURL, apiKey string) *Client {
	return &Client{
		dbURL:   dbURL,
		demoURL: demoURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// gameRow is the subset of the hub games table needed to locate a stats
// payload.
type gameRow struct {
	ID            json.Number `json:"id"`
	DemoSHA256    string      `json:"demo_sha256"`
	DemoSourceURL string      `json:"demo_source_url"`
	URL           string      `json:"url"`
}

// FetchGameData looks up a game row by ID, derives the ktxstats location
// and downloads the payload. No retries: the first failure aborts with
// that step's error.
func (c *Client) FetchGameData(ctx context.Context, gameID string) (*GameRecord, error) {
	row, err := c.lookupGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	statsURL := c.statsLocation(row)
	if statsURL == "" {
		return nil, fmt.Errorf("%w %s", ErrNoSource, gameID)
	}

	return c.fetchStats(ctx, statsURL)
}

func (c *Client) lookupGame(ctx context.Context, gameID string) (*gameRow, error) {
	endpoint := fmt.Sprintf("%s?id=eq.%s&select=*", c.dbURL, url.QueryEscape(gameID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hub db request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	var rows []gameRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode hub db response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, gameID)
	}

	return &rows[0], nil
}

// statsLocation derives the ktxstats URL for a game row. Hashed demos live
// on the CDN sharded by the first three hex characters of the digest; older
// rows fall back to an explicit source URL. Empty means no usable source.
func (c *Client) statsLocation(row *gameRow) string {
	if len(row.DemoSHA256) >= 3 {
		return fmt.Sprintf("%s/%s/%s.mvd.ktxstats.json", c.demoURL, row.DemoSHA256[:3], row.DemoSHA256)
	}
	if row.DemoSourceURL != "" {
		return row.DemoSourceURL
	}
	return row.URL
}

func (c *Client) fetchStats(ctx context.Context, statsURL string) (*GameRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &StatsFetchError{URL: statsURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatsFetchError{Status: resp.StatusCode, URL: statsURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats payload: %w", err)
	}

	var record GameRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("failed to decode stats payload: %w", err)
	}
	record.Raw = body

	return &record, nil
}
