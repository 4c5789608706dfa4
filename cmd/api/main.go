package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"resort_proforma/pkg/api/bridge"
	"resort_proforma/pkg/api/covenants"
	"resort_proforma/pkg/api/model"
	"resort_proforma/pkg/api/sensitivity"
	"resort_proforma/pkg/core/cache"
	"resort_proforma/pkg/core/pipeline"
	platformconfig "resort_proforma/pkg/platform/config"
	platformotel "resort_proforma/pkg/platform/otel"
	"resort_proforma/pkg/runner"
)

// AppConfig is the API host's environment configuration.
type AppConfig struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisAddr   string `env:"REDIS_ADDR"`
	CacheDir    string `env:"CACHE_DIR"`
	Verbose     bool   `env:"PROFORMA_VERBOSE"`
}

func main() {
	// Load .env file if it exists (local dev)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg AppConfig
	if err := platformconfig.ParseEnv(&cfg); err != nil {
		log.Fatalf("Failed to parse environment: %v", err)
	}

	ctx := context.Background()

	shutdownOtel, err := platformotel.Setup(ctx, "proforma-api")
	if err != nil {
		log.Printf("Warning: OTel setup failed, continuing without tracing: %v", err)
	} else {
		defer shutdownOtel(ctx)
	}

	store, cleanup, err := selectStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize cache store: %v", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	orch := pipeline.New(cache.New(store))
	orch.Verbose = cfg.Verbose
	run := runner.New(orch)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				log.Printf("%d %s", v.Status, v.URI)
			} else {
				log.Printf("%d %s - %v", v.Status, v.URI, v.Error)
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	model.NewHandler(run).Register(api)
	sensitivity.NewHandler().Register(api)
	bridge.NewHandler().Register(api)
	covenants.NewHandler(orch).Register(api)

	log.Printf("Starting proforma API on :%s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// selectStore picks the cache backend from the environment: Postgres if
// DATABASE_URL is set, else Redis if REDIS_ADDR, else files if
// CACHE_DIR, else process memory.
func selectStore(ctx context.Context, cfg AppConfig) (cache.Store, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		store := cache.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Println("Stage cache: postgres")
		return store, pool.Close, nil

	case cfg.RedisAddr != "":
		log.Println("Stage cache: redis")
		return cache.NewRedisStore(cfg.RedisAddr), nil, nil

	case cfg.CacheDir != "":
		store, err := cache.NewFileStore(cfg.CacheDir)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Stage cache: files under %s", cfg.CacheDir)
		return store, nil, nil

	default:
		log.Println("Stage cache: in-memory (set DATABASE_URL, REDIS_ADDR, or CACHE_DIR to persist)")
		return cache.NewMemoryStore(), nil, nil
	}
}
