package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Token         string
	GuildID       string
	OpenStatesKey string
}

// Load reads bot configuration from the environment, optionally
// seeded from a local .env file (existing environment values win).
// The bot token is required; the process refuses to start without it.
func Load() Config {
	_ = godotenv.Load()

	token := os.Getenv("DISCORD_BOT_TOKEN")
	if token == "" {
		log.Fatal("DISCORD_BOT_TOKEN not set in environment or .env")
	}

	return Config{
		Token:         token,
		GuildID:       os.Getenv("GUILD_ID"),
		OpenStatesKey: os.Getenv("OPENSTATES_KEY"),
	}
}
