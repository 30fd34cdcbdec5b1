package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config is loaded once in main and passed down by value. The JWT secret has
// no fallback: a process without one must not start.
type Config struct {
	Port        string
	JWTSecret   []byte
	TokenTTL    time.Duration
	DatabaseURL string
	GinMode     string
}

func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   []byte(secret),
		TokenTTL:    time.Hour,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		GinMode:     getEnv("GIN_MODE", "debug"),
	}

	if raw := os.Getenv("JWT_TTL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, errors.New("JWT_TTL_SECONDS must be a positive integer")
		}
		cfg.TokenTTL = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
