package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// GetRegistration returns the registration for a channel, or nil when the
// channel is not linked. Zero rows is not an error; only transport and
// query failures are.
func (c *Client) GetRegistration(ctx context.Context, channelID string) (*ChannelRegistration, error) {
	endpoint := fmt.Sprintf("/%s?discord_channel_id=eq.%s&select=*",
		registrationsTable, url.QueryEscape(channelID))

	var rows []ChannelRegistration
	if err := c.do(ctx, http.MethodGet, endpoint, "", nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}

// UpsertRegistration creates or replaces the registration for a channel,
// keyed on the channel ID.
func (c *Client) UpsertRegistration(ctx context.Context, p RegisterParams) (*ChannelRegistration, error) {
	endpoint := fmt.Sprintf("/%s?on_conflict=discord_channel_id", registrationsTable)
	payload := map[string]any{
		"discord_guild_id":   p.GuildID,
		"discord_channel_id": p.ChannelID,
		"tournament_id":      p.TournamentID,
		"division_id":        nullable(p.DivisionID),
		"registered_by":      p.RegisteredBy,
	}

	var rows []ChannelRegistration
	err := c.do(ctx, http.MethodPost, endpoint,
		"resolution=merge-duplicates,return=representation", payload, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert registration: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("registration upsert returned no row")
	}

	return &rows[0], nil
}

// DeleteRegistration unlinks a channel. Deleting an unregistered channel
// is a no-op.
func (c *Client) DeleteRegistration(ctx context.Context, channelID string) error {
	endpoint := fmt.Sprintf("/%s?discord_channel_id=eq.%s",
		registrationsTable, url.QueryEscape(channelID))

	if err := c.do(ctx, http.MethodDelete, endpoint, "", nil, nil); err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	return nil
}
