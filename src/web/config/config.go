package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	OpenStatesKey  string
	GoogleCivicKey string
	TemplatesGlob  string
	StaticDir      string
}

// Load reads configuration from the environment, optionally seeded
// from a local .env file. Existing environment values win over file
// values. API keys may be empty here; their absence is reported at
// first use, not at startup.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           getenv("PORT", "8080"),
		OpenStatesKey:  os.Getenv("OPENSTATES_KEY"),
		GoogleCivicKey: os.Getenv("GOOGLE_CIVIC_KEY"),
		TemplatesGlob:  getenv("TEMPLATES_GLOB", "templates/*.html"),
		StaticDir:      getenv("STATIC_DIR", "static"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
