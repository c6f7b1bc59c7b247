package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	ViewsDir   string
	StaticDir  string

	// Model
	ModelPath string // serialized forest, read once at startup

	// Optional backing services
	DatabaseURL string // outcome tallies; empty keeps counters in memory
	RedisURL    string // rate limiter storage; empty keeps it in memory

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// CORS
	CORSOrigins string // Comma-separated allowed origins, empty disables CORS

	// Rate limiting
	RateLimitMax int // requests per minute per IP

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "HR Employee Attrition Predictor"
	SiteTagline string // env: SITE_TAGLINE
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:          getEnv("ENV", "development"),
		ServerAddr:   getEnv("SERVER_ADDR", ":3000"),
		ViewsDir:     getEnv("VIEWS_DIR", "./views"),
		StaticDir:    getEnv("STATIC_DIR", "./static"),
		ModelPath:    getEnv("MODEL_PATH", "model/rfc.json"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		RedisURL:     getEnv("REDIS_URL", ""),
		TLSEnabled:   getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:  getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:   getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:    getEnv("TLS_CA_FILE", ""),
		CORSOrigins:  getEnv("CORS_ORIGINS", ""),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 100),

		SiteTitle:   getEnv("SITE_TITLE", "HR Employee Attrition Predictor"),
		SiteTagline: getEnv("SITE_TAGLINE", "Predicting whether an employee will stay or leave using your Random Forest model."),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}
