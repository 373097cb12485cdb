package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/Xerialen/qwicky-discord-bot/internal/store"
)

var manageChannels int64 = discordgo.PermissionManageChannels

// Slash command definitions
func (b *Bot) getCommandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     "register",
			Description:              "Link this channel to a QWICKY tournament",
			DefaultMemberPermissions: &manageChannels,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "tournament-id",
					Description: "The QWICKY tournament ID",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "division-id",
					Description: "Optionally scope to a specific division",
					Required:    false,
				},
			},
		},
		{
			Name:        "status",
			Description: "Show which QWICKY tournament this channel is linked to",
		},
		{
			Name:                     "unregister",
			Description:              "Unlink this channel from its QWICKY tournament",
			DefaultMemberPermissions: &manageChannels,
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	slog.Info("Registering slash commands")

	commandDefinitions := b.getCommandDefinitions()
	registeredCommands := make([]*discordgo.ApplicationCommand, 0, len(commandDefinitions))

	for _, cmd := range commandDefinitions {
		registered, err := b.session.ApplicationCommandCreate(
			b.session.State.User.ID,
			"", // Empty string = global command
			cmd,
		)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		registeredCommands = append(registeredCommands, registered)
		slog.Debug("Registered command", "name", cmd.Name)
	}

	b.commands = registeredCommands
	slog.Info("Slash commands registered", "count", len(registeredCommands))
	return nil
}

// handleRegister handles the /register command
func (b *Bot) handleRegister(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Acknowledge before touching the store: the store call has no latency
	// bound, and Discord expires unacknowledged interactions after 3s.
	deferResponse(s, i)
	editResponse(s, i, b.registerReply(context.Background(), i))
}

func (b *Bot) registerReply(ctx context.Context, i *discordgo.InteractionCreate) string {
	var tournamentID, divisionID string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "tournament-id":
			tournamentID = opt.StringValue()
		case "division-id":
			divisionID = opt.StringValue()
		}
	}

	reg, err := b.store.UpsertRegistration(ctx, store.RegisterParams{
		GuildID:      i.GuildID,
		ChannelID:    i.ChannelID,
		TournamentID: tournamentID,
		DivisionID:   divisionID,
		RegisteredBy: interactionUserID(i),
	})
	if err != nil {
		slog.Error("Failed to register channel", "channelID", i.ChannelID, "error", err)
		return "Failed to register channel. Check bot logs."
	}

	scope := ""
	if reg.DivisionID != "" {
		scope = fmt.Sprintf(" (division: %s)", reg.DivisionID)
	}
	return fmt.Sprintf(
		"This channel is now linked to tournament **%s**%s.\nHub URLs posted here will be tracked as match submissions.",
		reg.TournamentID, scope)
}

// handleStatus handles the /status command
func (b *Bot) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	deferResponse(s, i)
	editResponse(s, i, b.statusReply(context.Background(), i))
}

func (b *Bot) statusReply(ctx context.Context, i *discordgo.InteractionCreate) string {
	reg, err := b.store.GetRegistration(ctx, i.ChannelID)
	if err != nil {
		slog.Error("Failed to fetch status", "channelID", i.ChannelID, "error", err)
		return "Failed to fetch status. Check bot logs."
	}
	if reg == nil {
		return "This channel is not linked to any tournament.\nUse `/register <tournament-id>` to link it."
	}

	division := ""
	if reg.DivisionID != "" {
		division = fmt.Sprintf("\nDivision: **%s**", reg.DivisionID)
	}
	return fmt.Sprintf(
		"Tournament: **%s**%s\nRegistered by: <@%s>\nSince: %s",
		reg.TournamentID, division, reg.RegisteredBy, reg.CreatedAt.Format("2006-01-02"))
}

// handleUnregister handles the /unregister command
func (b *Bot) handleUnregister(s *discordgo.Session, i *discordgo.InteractionCreate) {
	deferResponse(s, i)
	editResponse(s, i, b.unregisterReply(context.Background(), i))
}

func (b *Bot) unregisterReply(ctx context.Context, i *discordgo.InteractionCreate) string {
	reg, err := b.store.GetRegistration(ctx, i.ChannelID)
	if err != nil {
		slog.Error("Failed to unregister channel", "channelID", i.ChannelID, "error", err)
		return "Failed to unregister channel. Check bot logs."
	}
	if reg == nil {
		return "This channel is not linked to any tournament."
	}

	if err := b.store.DeleteRegistration(ctx, i.ChannelID); err != nil {
		slog.Error("Failed to unregister channel", "channelID", i.ChannelID, "error", err)
		return "Failed to unregister channel. Check bot logs."
	}

	return fmt.Sprintf(
		"Channel unlinked from tournament **%s**. Hub URLs will no longer be tracked here.",
		reg.TournamentID)
}

// Helper functions

func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		slog.Error("Failed to acknowledge interaction", "error", err)
	}
}

func editResponse(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
	if err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

// interactionUserID resolves the invoking user for both guild and DM
// interactions.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
