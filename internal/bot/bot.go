package bot

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"

	"github.com/Xerialen/qwicky-discord-bot/internal/config"
	"github.com/Xerialen/qwicky-discord-bot/internal/hub"
	"github.com/Xerialen/qwicky-discord-bot/internal/store"
)

// Bot represents the Discord bot instance
type Bot struct {
	config   *config.Config
	session  *discordgo.Session
	store    *store.Client
	hub      *hub.Client
	commands []*discordgo.ApplicationCommand
	ready    atomic.Bool
}

// New creates a new Bot instance with its dependencies injected
func New(cfg *config.Config, st *store.Client, hubClient *hub.Client) (*Bot, error) {
	// Create Discord session
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Set intents: message content is needed for the hub link listener
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		config:  cfg,
		session: session,
		store:   st,
		hub:     hubClient,
	}

	// Register command handlers
	b.registerHandlers()

	return b, nil
}

// Start opens the Discord connection and registers slash commands
func (b *Bot) Start() error {
	// Open Discord connection
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	slog.Info("Connected to Discord", "user", b.session.State.User.Username)

	// Register slash commands
	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	return nil
}

// Stop gracefully shuts down the bot
func (b *Bot) Stop() error {
	// Close Discord session
	if b.session != nil {
		return b.session.Close()
	}

	return nil
}

// Ready reports whether the gateway connection is live
func (b *Bot) Ready() bool {
	return b.ready.Load()
}

// registerHandlers sets up Discord event handlers
func (b *Bot) registerHandlers() {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(b.handleMessageCreate)
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.ready.Store(true)
		slog.Info("Bot is ready", "guilds", len(r.Guilds))
	})
	b.session.AddHandler(func(s *discordgo.Session, d *discordgo.Disconnect) {
		b.ready.Store(false)
		slog.Warn("Gateway disconnected")
	})
}

// handleInteraction processes slash command interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	slog.Debug("Received command", "command", data.Name, "guild", i.GuildID)

	switch data.Name {
	case "register":
		b.handleRegister(s, i)
	case "status":
		b.handleStatus(s, i)
	case "unregister":
		b.handleUnregister(s, i)
	default:
		slog.Warn("Unknown command", "command", data.Name)
	}
}
