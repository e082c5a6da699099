package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/prefs"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

func main() {
	// Load configuration (also reads .env).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls. A zero timeout keeps
	// the transport defaults.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	openWeather := providers.NewOpenWeatherClient(httpClient, cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, providers.BreakerConfig{
		ConsecutiveFailures: uint32(max(cfg.BreakerFailures, 0)),
		OpenTimeout:         cfg.BreakerOpenTimeout,
	})

	var geocoder weather.Geocoder = openWeather
	if cfg.Geocoder == config.GeocoderGoogle {
		geocoder = providers.NewGoogleGeocoder(cfg.GoogleGeocoderAPIKey)
	}

	// Preference storage.
	kv, err := openPrefsStore(cfg)
	if err != nil {
		log.Fatalf("failed to open preference store: %v", err)
	}
	defer kv.Close()

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 5*time.Second)
	initial := prefs.Load(loadCtx, kv, time.Now())
	cancelLoad()
	log.Printf("INFO: preferences loaded: unit=%s theme=%s", initial.Unit, initial.Theme)

	persister := prefs.NewPersister(kv)

	// Writes are deferred to the scheduler so toggles never wait on storage.
	sched := scheduler.New(cfg.PrefsFlushInterval, persister)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	dash := dashboard.NewStore(geocoder, openWeather, weather.NewNormalizer(cfg.TimeZone), initial, persister)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, dash)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

func openPrefsStore(cfg *config.AppConfig) (store.KV, error) {
	switch cfg.PrefsBackend {
	case config.BackendRedis:
		return store.NewRedis(cfg.RedisURL, cfg.PrefsRedisHash)
	case config.BackendMemory:
		log.Println("INFO: preferences kept in memory only")
		return store.NewMemoryStore(), nil
	default:
		return store.NewSQLite(cfg.PrefsSQLitePath)
	}
}
