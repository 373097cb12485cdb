package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/Xerialen/qwicky-discord-bot/internal/hub"
	"github.com/Xerialen/qwicky-discord-bot/internal/ktxstats"
	"github.com/Xerialen/qwicky-discord-bot/internal/store"
)

// Embed colors for link outcomes
const (
	colorSubmitted = 0xFFB300
	colorDuplicate = 0xFFA500
	colorError     = 0xFF3366
)

// handleMessageCreate scans every non-bot message for hub links and turns
// each one into a submission attempt. Links are processed independently:
// a failing link reports its own error and never aborts its siblings.
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	links := hub.ExtractLinks(m.Content)
	if len(links) == 0 {
		return
	}

	embeds := b.submissionEmbeds(context.Background(), m, links)
	if len(embeds) == 0 {
		return
	}

	_, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:    embeds,
		Reference: m.Reference(),
	})
	if err != nil {
		slog.Error("Failed to send submission reply", "channelID", m.ChannelID, "error", err)
	}
}

// submissionEmbeds gates on the channel registration and turns each link
// into its own outcome embed, with the summary footer on the last one.
// Nil when the channel is not registered or the lookup fails.
func (b *Bot) submissionEmbeds(ctx context.Context, m *discordgo.MessageCreate, links []hub.Link) []*discordgo.MessageEmbed {
	reg, err := b.store.GetRegistration(ctx, m.ChannelID)
	if err != nil {
		slog.Error("Failed to look up channel registration", "channelID", m.ChannelID, "error", err)
		return nil
	}
	if reg == nil {
		return nil
	}

	embeds := make([]*discordgo.MessageEmbed, 0, len(links))
	for _, link := range links {
		embeds = append(embeds, b.processLink(ctx, reg, link, m))
	}

	// Footer only on the last embed
	embeds[len(embeds)-1].Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d map(s) submitted | Pending review in QWICKY | Tournament: %s",
			len(embeds), reg.TournamentID),
	}

	return embeds
}

// processLink runs the fetch/record pipeline for one extracted link and
// renders the outcome as an embed.
func (b *Bot) processLink(ctx context.Context, reg *store.ChannelRegistration, link hub.Link, m *discordgo.MessageCreate) *discordgo.MessageEmbed {
	record, err := b.hub.FetchGameData(ctx, link.GameID)
	if err != nil {
		slog.Error("Failed to fetch game data", "gameID", link.GameID, "error", err)
		return errorEmbed(link.GameID, err)
	}

	sub, duplicate, err := b.store.InsertSubmission(ctx, store.SubmissionParams{
		TournamentID:    reg.TournamentID,
		DivisionID:      reg.DivisionID,
		HubURL:          "https://" + link.URL,
		GameID:          link.GameID,
		GameData:        record.Raw,
		SubmittedByID:   m.Author.ID,
		SubmittedByName: displayName(m.Author),
		ChannelID:       m.ChannelID,
	})
	if err != nil {
		slog.Error("Failed to record submission", "gameID", link.GameID, "error", err)
		return errorEmbed(link.GameID, err)
	}
	if duplicate {
		slog.Info("Duplicate submission", "gameID", link.GameID, "channelID", m.ChannelID)
		return duplicateEmbed(link.GameID)
	}

	slog.Info("Recorded submission",
		"gameID", link.GameID, "tournament", reg.TournamentID, "status", sub.Status)
	return submittedEmbed(link.GameID, record)
}

func submittedEmbed(gameID string, record *hub.GameRecord) *discordgo.MessageEmbed {
	sb := ktxstats.Normalize(record)

	mapName := record.Map
	if mapName == "" {
		mapName = "unknown"
	}
	mode := record.Mode
	if mode == "" {
		mode = "?"
	}

	return &discordgo.MessageEmbed{
		Color: colorSubmitted,
		Title: fmt.Sprintf("%s vs %s — %s", sb.Team1Name, sb.Team2Name, mapName),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Score", Value: fmt.Sprintf("%s - %s", sb.Team1Score, sb.Team2Score), Inline: true},
			{Name: "Mode", Value: mode, Inline: true},
			{Name: "Game ID", Value: gameID, Inline: true},
		},
	}
}

func duplicateEmbed(gameID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorDuplicate,
		Title:       fmt.Sprintf("Game %s — Duplicate", gameID),
		Description: "This game has already been submitted.",
	}
}

func errorEmbed(gameID string, err error) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorError,
		Title:       fmt.Sprintf("Game %s — Error", gameID),
		Description: err.Error(),
	}
}

// displayName prefers the account's global display name over the username.
func displayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}
