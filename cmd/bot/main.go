package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Xerialen/qwicky-discord-bot/internal/bot"
	"github.com/Xerialen/qwicky-discord-bot/internal/config"
	"github.com/Xerialen/qwicky-discord-bot/internal/health"
	"github.com/Xerialen/qwicky-discord-bot/internal/hub"
	"github.com/Xerialen/qwicky-discord-bot/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Set up logging
	setupLogging(cfg.LogLevel)

	slog.Info("Starting QWICKY bot")

	// External clients, constructed once and injected
	storeClient := store.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey)
	hubClient := hub.NewClient(cfg.HubDBURL, cfg.DemoCDNURL, cfg.HubSupabaseKey)

	// Create and start the bot
	b, err := bot.New(cfg, storeClient, hubClient)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	if err := b.Start(); err != nil {
		slog.Error("Failed to start bot", "error", err)
		os.Exit(1)
	}

	// Health endpoint for the hosting platform
	healthServer := health.NewServer(cfg.HealthPort, b.Ready)
	healthServer.Start()

	slog.Info("Bot is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")

	// Release the Discord connection before exiting
	if err := b.Stop(); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error stopping health server", "error", err)
	}

	slog.Info("Bot stopped")
}

func setupLogging(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
