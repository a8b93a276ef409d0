package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr           = ":8080"
	defaultDatabaseURL    = "sic.db"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTAccessTTL   = "24h"
	defaultResetCodeTTL   = "15m"
	defaultResetBlock     = "30m"
	defaultStorageDir     = "uploads"
	defaultPublicBaseURL  = "http://localhost:8080"
	defaultNotifyDebounce = "200ms"
)

type Config struct {
	AppEnv         string
	Addr           string
	DatabaseURL    string
	JWTSecret      string
	JWTAccessTTL   time.Duration
	ResetCodeTTL   time.Duration
	ResetBlock     time.Duration
	StorageDir     string
	PublicBaseURL  string
	NotifyDebounce time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Addr = strings.TrimSpace(getEnv("ADDR", defaultAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.StorageDir = strings.TrimSpace(getEnv("STORAGE_DIR", defaultStorageDir))
	cfg.PublicBaseURL = strings.TrimRight(strings.TrimSpace(getEnv("PUBLIC_BASE_URL", defaultPublicBaseURL)), "/")

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.ResetCodeTTL, err = parseDurationEnv("RESET_CODE_TTL", defaultResetCodeTTL)
	if err != nil {
		return nil, err
	}

	cfg.ResetBlock, err = parseDurationEnv("RESET_BLOCK_DURATION", defaultResetBlock)
	if err != nil {
		return nil, err
	}

	cfg.NotifyDebounce, err = parseDurationEnv("NOTIFY_DEBOUNCE", defaultNotifyDebounce)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.ResetCodeTTL <= 0 {
		return fmt.Errorf("RESET_CODE_TTL must be > 0")
	}
	if cfg.StorageDir == "" {
		return fmt.Errorf("STORAGE_DIR must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
