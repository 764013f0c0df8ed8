package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment,
// loading a .env file first when one exists in the working directory.
//
// Recognized variables:
//
//	ARENA_BASE_URL       — API base URL
//	ARENA_SESSION_DB     — session database path
//	ARENA_HTTP_TIMEOUT   — per-request timeout, Go duration string
//	ARENA_PAGE_LIMIT     — articles per page
//	ARENA_DEBUG          — "true" enables debug logging
func parseEnv(cfg *Config) {
	// Absence of a .env file is not an error.
	_ = godotenv.Load()

	if v := os.Getenv("ARENA_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("ARENA_SESSION_DB"); v != "" {
		cfg.SessionDBPath = v
	}
	if v := os.Getenv("ARENA_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	if v := os.Getenv("ARENA_PAGE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PageLimit = n
		}
	}
	if v := os.Getenv("ARENA_DEBUG"); v != "" {
		cfg.Debug = v == "true" || v == "1"
	}
}
