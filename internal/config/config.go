package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultHubDBURL   = "https://ncsphkjfominimxztjip.supabase.co/rest/v1/v1_games"
	defaultDemoCDNURL = "https://d.quake.world"
)

// Config holds all configuration values for the bot
type Config struct {
	// Discord
	DiscordToken string

	// QWICKY Supabase project (registrations and submissions)
	SupabaseURL        string
	SupabaseServiceKey string

	// Hub database and demo CDN (game rows and ktxstats payloads)
	HubDBURL       string
	HubSupabaseKey string
	DemoCDNURL     string

	// Health endpoint
	HealthPort int

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:       os.Getenv("DISCORD_TOKEN"),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		HubDBURL:           getEnvOrDefault("HUB_DB_URL", defaultHubDBURL),
		HubSupabaseKey:     os.Getenv("HUB_SUPABASE_KEY"),
		DemoCDNURL:         getEnvOrDefault("DEMO_CDN_URL", defaultDemoCDNURL),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
	}

	// Parse health port
	portStr := getEnvOrDefault("HEALTH_PORT", "3000")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HEALTH_PORT: %w", err)
	}
	cfg.HealthPort = port

	// Validate required fields
	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}
	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.SupabaseServiceKey == "" {
		return nil, fmt.Errorf("SUPABASE_SERVICE_KEY is required")
	}
	if cfg.HubSupabaseKey == "" {
		return nil, fmt.Errorf("HUB_SUPABASE_KEY is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
