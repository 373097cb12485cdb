// Package store is a thin PostgREST client for the QWICKY Supabase
// project. All durable state lives there; the bot caches nothing.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	registrationsTable = "tournament_channels"
	submissionsTable   = "match_submissions"

	// Postgres unique_violation, surfaced verbatim in PostgREST error
	// bodies. The sole expected insert failure.
	uniqueViolationCode = "23505"
)

// Client talks to the Supabase REST API with the service key.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a store client for a Supabase project URL.
func NewClient(projectURL, serviceKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(projectURL, "/") + "/rest/v1",
		serviceKey: serviceKey,
		httpClient: &http.Client{},
	}
}

// pgrstError is the JSON error body PostgREST returns on failures.
type pgrstError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// requestError is a non-success store response, keeping the PostgREST
// error code so callers can recognize constraint violations.
type requestError struct {
	status int
	pgrst  pgrstError
}

func (e *requestError) Error() string {
	if e.pgrst.Message != "" {
		return fmt.Sprintf("store request failed (%d): %s", e.status, e.pgrst.Message)
	}
	return fmt.Sprintf("store request failed (%d)", e.status)
}

// do performs one PostgREST request. A non-nil out decodes the response
// body; prefer sets the Prefer header when non-empty.
func (c *Client) do(ctx context.Context, method, endpoint, prefer string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("store request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &requestError{status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(&reqErr.pgrst)
		return reqErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode store response: %w", err)
		}
	}

	return nil
}

// nullable maps an empty optional to SQL null so upserts clear stale
// values instead of leaving the old ones in place.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
