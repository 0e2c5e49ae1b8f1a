package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv          string
	Port            string
	LogFormat       string
	LogLevel        string
	DatabaseURL     string
	RedisURL        string
	PreviewCacheTTL time.Duration
	OutputDir       string
	OpenAIAPIKey    string
	OpenAIModel     string
	AllowedOrigins  []string
	EscapeHTML      bool
}

// Load reads configuration from environment variables and an optional .env file.
// DATABASE_URL and REDIS_URL are optional: without them the file history is kept
// in memory and previews are not cached.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load()
}

func load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:          valueOrDefault(k.String("APP_ENV"), "development"),
		Port:            valueOrDefault(k.String("PORT"), "8080"),
		LogFormat:       valueOrDefault(k.String("LOG_FORMAT"), "json"),
		LogLevel:        valueOrDefault(k.String("LOG_LEVEL"), "info"),
		DatabaseURL:     strings.TrimSpace(k.String("DATABASE_URL")),
		RedisURL:        strings.TrimSpace(k.String("REDIS_URL")),
		PreviewCacheTTL: parseDuration(k.String("PREVIEW_CACHE_TTL"), "10m"),
		OutputDir:       valueOrDefault(k.String("OUTPUT_DIR"), "output"),
		OpenAIAPIKey:    strings.TrimSpace(k.String("OPENAI_API_KEY")),
		OpenAIModel:     valueOrDefault(k.String("OPENAI_MODEL"), "gpt-4o-mini"),
		AllowedOrigins:  splitAndTrim(valueOrDefault(k.String("ALLOWED_ORIGINS"), "http://localhost:3000")),
		EscapeHTML:      parseBool(k.String("ESCAPE_HTML")),
	}

	if cfg.PreviewCacheTTL <= 0 {
		return nil, errors.New("PREVIEW_CACHE_TTL must be positive")
	}
	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// AIEnabled reports whether an OpenAI key is configured.
func (c *Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
