package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	JWT      JWTConfig
	Cache    CacheConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// UpstreamConfig points at the HRIS backend that owns the attendance data.
type UpstreamConfig struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
	PageSize int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// CacheConfig controls the report cache and its background maintenance.
type CacheConfig struct {
	TTL               time.Duration
	WarmOrganizations []string
	WarmInterval      time.Duration
}

func Load() (*Config, error) {
	// A .env file is a development convenience; in production everything
	// comes from the environment.
	_ = godotenv.Load()

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// Upstream configuration
	upstreamTimeout, err := time.ParseDuration(getEnv("UPSTREAM_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
	}

	pageSize, err := strconv.Atoi(getEnv("UPSTREAM_PAGE_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_PAGE_SIZE: %w", err)
	}

	config.Upstream = UpstreamConfig{
		BaseURL:  getEnv("UPSTREAM_BASE_URL", ""),
		APIToken: getEnv("UPSTREAM_API_TOKEN", ""),
		Timeout:  upstreamTimeout,
		PageSize: pageSize,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Cache configuration
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	warmInterval, err := time.ParseDuration(getEnv("WARM_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid WARM_INTERVAL: %w", err)
	}

	config.Cache = CacheConfig{
		TTL:               cacheTTL,
		WarmOrganizations: getEnvSlice("WARM_ORGANIZATIONS"),
		WarmInterval:      warmInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Upstream.PageSize <= 0 {
		return fmt.Errorf("UPSTREAM_PAGE_SIZE must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
