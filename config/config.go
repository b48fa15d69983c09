// Package config loads the process-wide settings once at startup. The resulting
// Config is passed explicitly to the modules that need it.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret is the signing key used when JWT_SECRET is not set.
// Deployments must override it.
const DefaultJWTSecret = "super-secret-key-replace-in-production"

// Config holds the application configuration.
type Config struct {
	Port       int
	Production bool
	WebRoot    string

	JWTSecret  string
	SessionTTL time.Duration
	BcryptCost int

	DBPath  string
	DBDebug bool

	RedisAddr     string
	RedisPassword string
	UserCacheTTL  time.Duration

	EnforceTaskOwnership bool
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		Port:         3000,
		JWTSecret:    DefaultJWTSecret,
		SessionTTL:   7 * 24 * time.Hour,
		BcryptCost:   10,
		DBPath:       "taskboard.db",
		UserCacheTTL: 5 * time.Minute,
	}
}

// Load reads the configuration from environment variables.
// Malformed values fall back to their defaults.
func Load() Config {
	cfg := Default()

	cfg.Port = readInt("PORT", cfg.Port)
	cfg.Production = isProduction(os.Getenv("APP_ENV")) || isProduction(os.Getenv("NODE_ENV"))
	cfg.WebRoot = os.Getenv("WEB_ROOT")

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = secret
	}
	cfg.BcryptCost = readInt("BCRYPT_COST", cfg.BcryptCost)

	if path := os.Getenv("DB_PATH"); path != "" {
		cfg.DBPath = path
	}
	cfg.DBDebug = readBool("DB_DEBUG", false)

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.UserCacheTTL = readDuration("USER_CACHE_TTL", cfg.UserCacheTTL)

	cfg.EnforceTaskOwnership = readBool("TASKS_ENFORCE_OWNERSHIP", false)

	return cfg
}

// UsesDefaultSecret reports whether the fallback signing key is in use.
func (c Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func isProduction(env string) bool {
	return strings.EqualFold(strings.TrimSpace(env), "production")
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func readBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
