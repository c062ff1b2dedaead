package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is loaded once at startup and treated as immutable afterwards.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret       string
	JWTIssuer       string
	AccessTTLMin    int
	RefreshTTLHours int

	// Both EmailAPIURL and EmailFrom must be set to enable outbound mail;
	// otherwise the service runs with notifications disabled.
	EmailAPIURL string
	EmailFrom   string

	CORSOrigins string
}

var ErrMissingSecret = errors.New("JWT_SECRET is not set")

// Load reads environment variables, optionally from a .env file if present.
// A missing signing secret is the one fatal condition.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:            getEnv("PORT", "3000"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTIssuer:       getEnv("JWT_ISSUER", "agenda-accounts"),
		AccessTTLMin:    getEnvInt("ACCESS_TOKEN_TTL_MINUTES", 60),
		RefreshTTLHours: getEnvInt("REFRESH_TOKEN_TTL_HOURS", 168),
		EmailAPIURL:     os.Getenv("EMAIL_API_URL"),
		EmailFrom:       os.Getenv("EMAIL_FROM"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "https://agenda-pj.vercel.app"),
	}
	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingSecret
	}
	return cfg, nil
}

// EmailEnabled reports whether the notifier has enough configuration to send.
func (c Config) EmailEnabled() bool {
	return c.EmailAPIURL != "" && c.EmailFrom != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
