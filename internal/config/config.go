package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
// It is built once at startup and injected into each component; request
// logic never reads the environment directly.
type Config struct {
	HTTPAddr          string
	DBConnString      string
	FrontendURL       string
	AllowedOrigins    []string
	JWTSecret         string
	AdminEmail        string
	AdminPassword     string
	AdminPasswordHash string
	StripeKey         string
	Currency          string
	ShutdownTimeout   time.Duration
}

// FromEnv builds Config with defaults, overridden by environment
// variables. An empty DB_DSN is valid and disables order persistence.
func FromEnv() Config {
	frontend := envOrDefault("FRONTEND_URL", "http://biomedpharmas.com")
	return Config{
		HTTPAddr:          envOrDefault("HTTP_ADDR", ":5000"),
		DBConnString:      os.Getenv("DB_DSN"),
		FrontendURL:       frontend,
		AllowedOrigins:    envList("ALLOWED_ORIGINS", []string{frontend}),
		JWTSecret:         envOrDefault("JWT_SECRET", "change-me-in-production"),
		AdminEmail:        envOrDefault("ADMIN_EMAIL", "admin@biomed.com"),
		AdminPassword:     envOrDefault("ADMIN_PASSWORD", "admin123"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		StripeKey:         os.Getenv("STRIPE_SECRET_KEY"),
		Currency:          envOrDefault("CURRENCY", "pkr"),
		ShutdownTimeout:   envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
