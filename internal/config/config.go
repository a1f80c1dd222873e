package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the console needs at startup. All values come from
// the environment so the same binary can front staging and production APIs.
type Config struct {
	Port            string
	APIBaseURL      string
	SessionSecret   string
	SessionTTL      time.Duration
	LoginRatePerMin int
	LoginRateBurst  int
	MaxUploadBytes  int64
}

const defaultAPIBaseURL = "https://api.automan.solutions/api/admin"

func Load() Config {
	port := os.Getenv("CONSOLE_PORT")
	if port == "" {
		port = "6080"
	}

	baseURL := os.Getenv("CONSOLE_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}

	return Config{
		Port:            port,
		APIBaseURL:      baseURL,
		SessionSecret:   os.Getenv("CONSOLE_SESSION_SECRET"),
		SessionTTL:      readDuration("CONSOLE_SESSION_TTL", 12*time.Hour),
		LoginRatePerMin: readInt("CONSOLE_LOGIN_RATE_PER_MIN", 30),
		LoginRateBurst:  readInt("CONSOLE_LOGIN_RATE_BURST", 10),
		MaxUploadBytes:  int64(readInt("CONSOLE_MAX_UPLOAD_BYTES", 2<<20)),
	}
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
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
	if err != nil {
		return fallback
	}
	return value
}
