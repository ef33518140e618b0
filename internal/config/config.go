package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the development fallback for JWT_SECRET.
const DefaultJWTSecret = "change-me"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	Env             string
	ShutdownTimeout time.Duration

	StorageDriver string
	DatabaseDSN   string
	ResetDB       bool

	SessionBackend       string
	SessionTTL           time.Duration
	SessionPruneSchedule string
	SessionCookie        string
	CookieSecure         bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret          string
	CORSAllowedOrigins []string
	SwaggerHost        string
}

// Load builds Config from environment with sensible defaults. A .env file in the
// working directory is read first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "memory")),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		ResetDB:       getEnvBool("RESET_DB", false),

		SessionBackend:       strings.ToLower(getEnv("SESSION_BACKEND", "memory")),
		SessionTTL:           getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionPruneSchedule: getEnv("SESSION_PRUNE_SCHEDULE", "@every 24h"),
		SessionCookie:        getEnv("SESSION_COOKIE", "sid"),
		CookieSecure:         getEnvBool("COOKIE_SECURE", false),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:          getEnv("JWT_SECRET", DefaultJWTSecret),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		SwaggerHost:        os.Getenv("SWAGGER_HOST"),
	}
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

// UsesDefaultSecret reports whether tokens would be signed with DefaultJWTSecret.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// Validate rejects settings that are unsafe to serve with.
func (c *Config) Validate() error {
	if c.IsProduction() && c.UsesDefaultSecret() {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
