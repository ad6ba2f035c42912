package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config captures runtime configuration sourced from environment variables.
type Config struct {
	Environment  string
	HTTPPort     string
	DatabasePath string
	LogDir       string

	// JWTSecret signs bearer tokens. The default is for development only.
	JWTSecret string
	// TokenTTL bounds token lifetime; 24h unless overridden.
	TokenTTL time.Duration

	// AlertURL is an optional shoutrrr destination for failed-login alerts.
	// Empty disables alerting.
	AlertURL string
}

// Load reads env vars and falls back to defaults so the server can boot with zero configuration.
func Load() (Config, error) {
	cfg := Config{
		Environment:  getEnv("PISTAS_ENV", "development"),
		HTTPPort:     getEnv("PISTAS_HTTP_PORT", "8080"),
		DatabasePath: getEnv("PISTAS_DB_PATH", filepath.Join("data", "pistas.db")),
		LogDir:       getEnv("PISTAS_LOG_DIR", filepath.Join("data", "logs")),
		JWTSecret:    getEnv("PISTAS_JWT_SECRET", "pistas-dev-secret-cambiar-en-produccion"),
		TokenTTL:     24 * time.Hour,
		AlertURL:     getEnv("PISTAS_ALERT_URL", ""),
	}

	if raw := os.Getenv("PISTAS_JWT_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return Config{}, fmt.Errorf("invalid PISTAS_JWT_TTL_HOURS %q", raw)
		}
		cfg.TokenTTL = time.Duration(hours) * time.Hour
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return Config{}, fmt.Errorf("ensure data directory: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}
