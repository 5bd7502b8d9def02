// Package main is the entry point for the sitesmith server.
// It loads configuration, connects to the optional backends, sets up
// routing, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"sitesmith/internal/ai"
	"sitesmith/internal/cache"
	"sitesmith/internal/catalog"
	"sitesmith/internal/config"
	"sitesmith/internal/database"
	"sitesmith/internal/generator"
	"sitesmith/internal/handlers"
	"sitesmith/internal/middleware"
	"sitesmith/internal/router"
	"sitesmith/internal/sse"
	"sitesmith/internal/storage"
	"sitesmith/internal/store"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"version", version,
	)

	// Generation history (optional).
	var db *sql.DB
	var history *store.GenerationStore
	if cfg.DBEnabled() {
		db, err = database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		history = store.NewGenerationStore(db)
	} else {
		slog.Warn("POSTGRES_HOST not set, generation history disabled")
	}

	// Generated-site cache (optional).
	var valkeyClient *redis.Client
	var sites *cache.SiteCache
	if cfg.CacheEnabled() {
		valkeyClient, err = cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		sites = cache.NewSiteCache(valkeyClient, cfg.SiteCacheTTL)
	} else {
		slog.Warn("VALKEY_HOST not set, site preview and publishing disabled")
	}

	// Publishing to S3-compatible storage (optional).
	publisher, err := storage.New(storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if publisher != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", publisher.Bucket())
	} else {
		slog.Warn("s3 storage not configured, publishing disabled")
	}

	// AI provider registry. Providers without an API key are skipped.
	registry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})
	slog.Info("ai providers initialized",
		"active", registry.ActiveName(),
		"available", registry.Available(),
	)
	if !registry.HasProvider(cfg.AIProvider) {
		slog.Warn("active AI provider has no API key, generation requests will fail", "provider", cfg.AIProvider)
	}

	templates, err := catalog.Load()
	if err != nil {
		slog.Error("failed to load template catalog", "error", err)
		os.Exit(1)
	}

	retry := ai.DefaultRetryPolicy()
	retry.MaxAttempts = cfg.MaxAttempts

	events := sse.NewManager(cfg.HeartbeatInterval, slog.Default())

	genDeps := generator.Deps{
		Model:        registry,
		Events:       events,
		Retry:        retry,
		Logger:       slog.Default(),
		IncludeStack: cfg.IsDev(),
	}
	apiDeps := handlers.Deps{
		Events:    events,
		Assistant: registry,
		Catalog:   templates,
		Retry:     retry,
		Version:   version,
	}
	// Optional backends are only assigned when present so the interfaces
	// stay nil when disabled.
	if history != nil {
		genDeps.History = history
		apiDeps.History = history
	}
	if sites != nil {
		genDeps.Cache = sites
		apiDeps.Sites = sites
	}
	if publisher != nil && sites != nil {
		apiDeps.Publisher = publisher
	}

	orchestrator := generator.New(genDeps)
	apiDeps.Generator = orchestrator

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	defer limiter.Stop()

	r := router.New(handlers.New(apiDeps), router.Options{
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     limiter,
	})

	// WriteTimeout must accommodate /chat waiting on the model through its
	// retries. The SSE handler clears its own write deadline.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	srv.RegisterOnShutdown(events.Close)

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests and in-flight generations up to 30 seconds.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	if err := orchestrator.Wait(ctx); err != nil {
		slog.Warn("in-flight generations abandoned", "count", len(orchestrator.Active()), "error", err)
	}

	slog.Info("server stopped gracefully")
}
