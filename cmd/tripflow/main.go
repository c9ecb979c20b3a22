package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"tripflow/internal/config"
	tfhttp "tripflow/internal/http"
	"tripflow/internal/observability"
	"tripflow/internal/planner"
	"tripflow/internal/planner/llm"
	"tripflow/internal/storage"
	"tripflow/internal/storage/postgres"
	"tripflow/internal/storage/sqlite"
	"tripflow/internal/weather"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	logger := observability.NewLogger(observability.ConfigFromEnv())

	configPath := flag.String("config", os.Getenv("TRIPFLOW_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// Initialize Sentry if DSN is provided
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      envOr("TRIPFLOW_ENVIRONMENT", "production"),
			Release:          envOr("APP_VERSION", "dev"),
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			logger.Warn("sentry initialization failed", "error", err)
		} else {
			logger.Info("sentry initialized")
			defer sentry.Flush(2 * time.Second)
		}
	}

	metrics := observability.NewMetrics("tripflow")

	trips, closeStore, err := selectTripStore(cfg.Store, logger)
	if err != nil {
		logger.Error("store initialization failed", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	weatherSvc := buildWeatherService(cfg.Weather, logger, metrics)

	llmCfg := llm.ConfigFromEnv()
	var provider llm.Provider
	if llmCfg.APIKey != "" {
		provider = llm.NewOpenAIProvider(llmCfg)
		logger.Info("llm planning enabled", "model", llmCfg.Model, "endpoint", llmCfg.Endpoint)
	} else {
		logger.Info("llm planning disabled, using built-in planner (set TRIPFLOW_LLM_API_KEY to enable)")
	}

	plannerSvc := planner.NewService(provider, llmCfg, weatherSvc, logger, metrics)

	mux := http.NewServeMux()
	srv := tfhttp.NewServer(mux, plannerSvc, weatherSvc, trips, logger, metrics)
	srv.RegisterRoutes()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	})

	handler := tfhttp.ApplyMiddlewares(
		mux,
		func(h http.Handler) http.Handler { return corsHandler.Handler(h) },
		tfhttp.RequestIDMiddleware(),
		tfhttp.LoggingMiddleware(logger, metrics),
		tfhttp.RateLimitMiddleware(tfhttp.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		}, logger),
	)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("tripflow listening", "addr", cfg.Addr, "store", cfg.Store.Backend)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("shutdown complete")
}

// selectTripStore builds the configured backend and returns a close func.
func selectTripStore(cfg config.StoreConfig, logger observability.Logger) (storage.TripStore, func(), error) {
	switch cfg.Backend {
	case "sqlite":
		store, err := sqlite.New(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using sqlite trip store", "dsn", cfg.DSN)
		return store, func() { _ = store.Close() }, nil
	case "postgres":
		store, err := postgres.New(context.Background(), cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using postgres trip store")
		return store, func() { _ = store.Close() }, nil
	default:
		logger.Info("using in-memory trip store (data is lost on restart)")
		return storage.NewMemoryTripStore(), func() {}, nil
	}
}

// buildWeatherService wires the weather proxy, or returns nil when no
// upstream API key is configured.
func buildWeatherService(cfg config.WeatherConfig, logger observability.Logger, metrics *observability.Metrics) *weather.Service {
	if cfg.APIKey == "" {
		logger.Info("weather lookups disabled (set TRIPFLOW_WEATHER_API_KEY to enable)")
		return nil
	}

	var cache weather.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cache = weather.NewRedisCache(rdb, cfg.CacheTTL)
		logger.Info("weather cache backed by redis", "addr", cfg.RedisAddr)
	} else {
		cache = weather.NewMemoryCache(cfg.CacheTTL)
	}

	return weather.NewService(weather.NewClient(cfg.BaseURL, cfg.APIKey), cache, logger, metrics)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
