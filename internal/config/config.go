package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Preference store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Geocoder choices.
const (
	GeocoderOpenWeather = "openweather"
	GeocoderGoogle      = "google"
)

type AppConfig struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	// Geocoder selects the city lookup: "openweather" (default) or "google".
	Geocoder             string
	GoogleGeocoderAPIKey string

	// HTTPTimeout bounds outbound calls; 0 leaves the transport defaults.
	HTTPTimeout time.Duration

	// Circuit breaker per provider endpoint (0 failures disables it).
	BreakerFailures    int
	BreakerOpenTimeout time.Duration

	// Preference persistence.
	PrefsBackend       string
	PrefsSQLitePath    string
	RedisURL           string
	PrefsRedisHash     string
	PrefsFlushInterval time.Duration

	// TimeZone decides which calendar day a forecast sample belongs to.
	TimeZone *time.Location

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = os.Getenv("OPENWEATHER_BASE_URL")
	cfg.GoogleGeocoderAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")

	cfg.Geocoder = strings.ToLower(getenvDefault("GEOCODER", GeocoderOpenWeather))
	switch cfg.Geocoder {
	case GeocoderOpenWeather, GeocoderGoogle:
	default:
		return nil, fmt.Errorf("invalid GEOCODER %q", cfg.Geocoder)
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "0s"); err != nil {
		return nil, err
	}

	if cfg.BreakerFailures, err = getenvInt("BREAKER_FAILURES", 5); err != nil {
		return nil, err
	}
	if cfg.BreakerOpenTimeout, err = getenvDuration("BREAKER_OPEN_TIMEOUT", "1m"); err != nil {
		return nil, err
	}

	cfg.PrefsBackend = strings.ToLower(getenvDefault("PREFS_BACKEND", BackendSQLite))
	switch cfg.PrefsBackend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("invalid PREFS_BACKEND %q", cfg.PrefsBackend)
	}
	cfg.PrefsSQLitePath = getenvDefault("PREFS_SQLITE_PATH", "weather-dashboard.db")
	cfg.RedisURL = getenvDefault("REDIS_URL", "redis://localhost:6379/0")
	cfg.PrefsRedisHash = getenvDefault("PREFS_REDIS_NAMESPACE", "weather-dashboard:prefs")

	if cfg.PrefsFlushInterval, err = getenvDuration("PREFS_FLUSH_INTERVAL", "1s"); err != nil {
		return nil, err
	}

	tz, err := time.LoadLocation(getenvDefault("DASHBOARD_TZ", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_TZ: %w", err)
	}
	cfg.TimeZone = tz

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
