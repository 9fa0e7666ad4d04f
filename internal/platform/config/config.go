package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// devJWTSecret is the fallback signing key for local development. Production
// boots refuse to run with it.
const devJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds everything the backend reads from the environment.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	FrontendBaseURL    string

	PosthogAPIKey string
}

// LoadConfig reads configuration from environment variables, with a .env
// file as a convenience for local development. Optional settings fall back
// to development defaults with a logged warning; settings that would be
// unsafe in production fail the boot instead.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real environments set variables directly.
	_ = godotenv.Load()
	viper.AutomaticEnv()

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		slog.Warn("JWT_SECRET not set, using an insecure development key")
		jwtSecret = devJWTSecret
	}

	cfg := &Config{
		DatabaseURL:   viper.GetString("PGSQL_URL"),
		Port:          stringOr("PORT", "8080"),
		IsProduction:  viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck: viper.GetBool("ENABLE_DB_CHECK"),

		JWTSecret:         jwtSecret,
		JWTExpiryDuration: durationOr("JWT_EXPIRY_DURATION", time.Hour),
		JWTIssuer:         stringOr("JWT_ISSUER", "lodgebook-app"),

		RefreshTokenExpiryDuration: durationOr("REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour),
		RefreshTokenCookieName:     stringOr("REFRESH_TOKEN_COOKIE_NAME", "rtid"),
		RefreshTokenCookiePath:     stringOr("REFRESH_TOKEN_COOKIE_PATH", "/api/v1/auth"),

		GoogleClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  viper.GetString("GOOGLE_REDIRECT_URL"),
		FrontendBaseURL:    stringOr("FRONTEND_BASE_URL", "http://localhost:3000"),

		PosthogAPIKey: viper.GetString("POSTHOG_API_KEY"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL is not set; database connections will fail")
	}
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		slog.Warn("Google OAuth is not fully configured; Google login will not function")
	}
	if cfg.IsProduction && cfg.JWTSecret == devJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set when IS_PRODUCTION is true")
	}

	return cfg, nil
}

// stringOr returns the value of an environment variable, or the fallback
// with a warning when it is unset.
func stringOr(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	slog.Warn("Config value not set, using default",
		slog.String("key", key),
		slog.String("default", fallback))
	return fallback
}

// durationOr parses an environment variable as a time.Duration, or returns
// the fallback when it is unset or unparsable.
func durationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("Config value is not a valid duration, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Duration("default", fallback))
		return fallback
	}
	return d
}
