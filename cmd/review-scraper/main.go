package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/webharvest/review-scraper/internal/api"
	"github.com/webharvest/review-scraper/internal/browser"
	"github.com/webharvest/review-scraper/internal/config"
	"github.com/webharvest/review-scraper/internal/extract"
	"github.com/webharvest/review-scraper/internal/llm"
	"github.com/webharvest/review-scraper/internal/ratelimit"
	"github.com/webharvest/review-scraper/internal/scraper"
	"github.com/webharvest/review-scraper/internal/selectorcache"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b, err := browser.New(&browser.Options{
		Headless:       cfg.Browser.Headless,
		Timeout:        cfg.Browser.Timeout,
		UserAgent:      cfg.Browser.UserAgent,
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		Locale:         cfg.Browser.Locale,
	})
	if err != nil {
		logger.Error("failed to initialize browser", "error", err)
		os.Exit(1)
	}
	defer b.Close()

	var discoverer extract.Discoverer
	if cfg.OpenAI.APIKey != "" {
		discoverer = llm.NewOpenAIDiscoverer(llm.Options{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
		}, logger)
	} else {
		logger.Warn("OPENAI_API_KEY not set, selector discovery disabled")
	}

	cacheEnabled := false
	if discoverer != nil && cfg.SelectorCache.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.SelectorCache.Addr,
			Password: cfg.SelectorCache.Password,
			DB:       cfg.SelectorCache.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("failed to connect to selector cache, caching disabled", "error", err)
		} else {
			store := selectorcache.NewRedisStore(redisClient, cfg.SelectorCache.TTL, logger)
			discoverer = selectorcache.NewCachingDiscoverer(discoverer, store, logger)
			cacheEnabled = true
		}
	}

	combiner := extract.NewCombiner(discoverer, logger)
	limiter := ratelimit.NewSimpleRateLimiter(cfg.Harvest.PageDelayMin, cfg.Harvest.PageDelayMax)
	harvester := scraper.NewHarvester(b, combiner, limiter, scraper.Options{
		MaxPages:          cfg.Harvest.MaxPages,
		LoadMoreMaxClicks: cfg.Harvest.LoadMoreMaxClicks,
	}, logger)

	handlers := api.NewHandlers(harvester, cfg.Harvest.DefaultMaxReviews, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":         "ok",
			"selector_cache": cacheEnabled,
			"discovery":      discoverer != nil,
		})
	})

	r.Get("/api/reviews", handlers.GetReviews)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("server starting", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
