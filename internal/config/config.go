package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		DBName:    envOr("DB_NAME", ""),
		Port:      getEnv("PORT"),
		ProjectID: envOr("GCP_PROJECT", ""),
		Turso: TursoConfig{
			PrimaryURL: envOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  envOr("TURSO_AUTH_TOKEN", ""),
		},
		Storage: StorageConfig{
			Driver:         envOr("STORAGE_DRIVER", DriverSQLite),
			ReservationKey: envOr("RESERVATIONS_KEY", "reservations"),
		},
		Redis: RedisConfig{
			Addr:     envOr("REDIS_ADDR", "localhost:6379"),
			Password: envOr("REDIS_PASSWORD", ""),
			DB:       envInt("REDIS_DB", 0),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_URL"),
			Token:   envOr("BACKEND_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:     envOr("SLACK_BOT_TOKEN", ""),
			ChannelID: envOr("SLACK_CHANNEL_ID", ""),
			DryRun:    envBool("SLACK_DRY_RUN", false),
		},
	}
	if cfg.Storage.Driver != DriverSQLite && cfg.Storage.Driver != DriverRedis {
		log.Fatalf("Error: STORAGE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverRedis, cfg.Storage.Driver)
	}
	if cfg.Storage.Driver == DriverSQLite && cfg.DBName == "" {
		log.Fatalf("Error: Required environment variable DB_NAME is not set for the %s driver.", DriverSQLite)
	}
	// Without a token there is nobody to post as.
	if cfg.Slack.Token == "" {
		cfg.Slack.DryRun = true
	}
	return cfg
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn("Ignoring non-numeric environment variable", "key", key, "value", value)
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn("Ignoring non-boolean environment variable", "key", key, "value", value)
		return fallback
	}
	return b
}
