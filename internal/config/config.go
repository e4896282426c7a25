package config

import (
	"os"
	"strconv"

	"github.com/MikeSquared-Agency/scribe/internal/faults"
)

type Config struct {
	Port              int
	NatsURL           string
	NatsToken         string
	DatabaseURL       string
	LogLevel          string
	AnthropicAPIKey   string
	Model             string
	ConnectAPIURL     string
	ConnectInstanceID string
}

func Load() Config {
	return Config{
		Port:              envInt("SCRIBE_PORT", 8760),
		NatsURL:           envStr("NATS_URL", "nats://hermes:4222"),
		NatsToken:         envStr("NATS_TOKEN", ""),
		DatabaseURL:       envStr("DATABASE_URL", ""),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		AnthropicAPIKey:   envStr("ANTHROPIC_API_KEY", ""),
		Model:             envStr("SCRIBE_MODEL", "claude-sonnet-4-20250514"),
		ConnectAPIURL:     envStr("CONNECT_API_URL", ""),
		ConnectInstanceID: envStr("CONNECT_INSTANCE_ID", ""),
	}
}

// Validate reports every missing required key as one ConfigurationError.
// Checked at startup, before any external service is touched, so a bad
// deployment fails fast for the whole batch rather than per record.
func (c Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.AnthropicAPIKey == "" {
		missing = append(missing, "ANTHROPIC_API_KEY")
	}
	if c.ConnectAPIURL == "" {
		missing = append(missing, "CONNECT_API_URL")
	}
	if c.ConnectInstanceID == "" {
		missing = append(missing, "CONNECT_INSTANCE_ID")
	}
	if len(missing) > 0 {
		return &faults.ConfigurationError{Missing: missing}
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
