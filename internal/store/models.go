package store

import (
	"encoding/json"
	"time"
)

// ChannelRegistration links a Discord channel to a QWICKY tournament. One
// active registration exists per channel; re-registering replaces it.
type ChannelRegistration struct {
	GuildID      string    `json:"discord_guild_id"`
	ChannelID    string    `json:"discord_channel_id"`
	TournamentID string    `json:"tournament_id"`
	DivisionID   string    `json:"division_id"`
	RegisteredBy string    `json:"registered_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterParams are the inputs for registering a channel. An empty
// DivisionID means the registration covers the whole tournament.
type RegisterParams struct {
	GuildID      string
	ChannelID    string
	TournamentID string
	DivisionID   string
	RegisteredBy string
}

// Submission is a recorded match submission row.
type Submission struct {
	ID           int64     `json:"id"`
	TournamentID string    `json:"tournament_id"`
	DivisionID   string    `json:"division_id"`
	HubURL       string    `json:"hub_url"`
	GameID       string    `json:"game_id"`
	ChannelID    string    `json:"discord_channel_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// SubmissionParams are the inputs for recording a submission. GameData is
// the opaque stats payload captured at fetch time.
type SubmissionParams struct {
	TournamentID    string
	DivisionID      string
	HubURL          string
	GameID          string
	GameData        json.RawMessage
	SubmittedByID   string
	SubmittedByName string
	ChannelID       string
}
