package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// InsertSubmission records a pending submission. No read-before-write: the
// store's unique constraint on (channel, game) is the only duplicate
// check, so two near-simultaneous submissions of the same game race
// safely. A unique violation reports duplicate=true instead of an error.
func (c *Client) InsertSubmission(ctx context.Context, p SubmissionParams) (*Submission, bool, error) {
	payload := map[string]any{
		"tournament_id":           p.TournamentID,
		"division_id":             nullable(p.DivisionID),
		"hub_url":                 p.HubURL,
		"game_id":                 p.GameID,
		"game_data":               p.GameData,
		"submitted_by_discord_id": p.SubmittedByID,
		"submitted_by_name":       p.SubmittedByName,
		"discord_channel_id":      p.ChannelID,
		"status":                  "pending",
	}

	var rows []Submission
	err := c.do(ctx, http.MethodPost, "/"+submissionsTable,
		"return=representation", payload, &rows)
	if err != nil {
		var reqErr *requestError
		if errors.As(err, &reqErr) && reqErr.pgrst.Code == uniqueViolationCode {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("failed to insert submission: %w", err)
	}
	if len(rows) == 0 {
		return nil, false, fmt.Errorf("submission insert returned no row")
	}

	return &rows[0], false, nil
}
