package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment,
// loading a .env file first when one exists. Missing variables leave the
// current value untouched; malformed durations are ignored.
//
// Recognized variables:
//
//	IMAGEPROOF_API_BASE_URL    base endpoint of the backend
//	IMAGEPROOF_TIMEOUT         request timeout, e.g. "30s"
//	IMAGEPROOF_CACHE_DSN       session cache SQLite DSN
//	IMAGEPROOF_WEB_ADDR        web UI listen address
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("IMAGEPROOF_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("IMAGEPROOF_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("IMAGEPROOF_CACHE_DSN"); v != "" {
		cfg.CacheDSN = v
	}
	if v := os.Getenv("IMAGEPROOF_WEB_ADDR"); v != "" {
		cfg.WebAddr = v
	}
}
