package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEOCODER", "")
	t.Setenv("PREFS_BACKEND", "")
	t.Setenv("PREFS_FLUSH_INTERVAL", "")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("BREAKER_FAILURES", "")
	t.Setenv("BREAKER_OPEN_TIMEOUT", "")
	t.Setenv("DASHBOARD_TZ", "UTC")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Geocoder != GeocoderOpenWeather || cfg.PrefsBackend != BackendSQLite {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.HTTPTimeout != 0 || cfg.PrefsFlushInterval != time.Second {
		t.Errorf("unexpected durations: timeout=%v flush=%v", cfg.HTTPTimeout, cfg.PrefsFlushInterval)
	}
	if cfg.BreakerFailures != 5 || cfg.BreakerOpenTimeout != time.Minute {
		t.Errorf("unexpected breaker settings: failures=%d open=%v", cfg.BreakerFailures, cfg.BreakerOpenTimeout)
	}
	if cfg.TimeZone != time.UTC || cfg.Port != "8080" {
		t.Errorf("unexpected tz/port: %v %s", cfg.TimeZone, cfg.Port)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"GEOCODER":             "bing",
		"PREFS_BACKEND":        "cookies",
		"PREFS_FLUSH_INTERVAL": "soon",
		"DASHBOARD_TZ":         "Mars/Olympus",
		"BREAKER_FAILURES":     "many",
		"BREAKER_OPEN_TIMEOUT": "later",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}
