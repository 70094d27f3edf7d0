package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"cryptopulse/internal/engine"
	"cryptopulse/internal/engine/engineobs"
	"cryptopulse/internal/interfaces"
	"cryptopulse/internal/logger"
	"cryptopulse/internal/market"
	"cryptopulse/internal/market/marketobs"
	"cryptopulse/internal/news"
	"cryptopulse/internal/news/newsobs"
	"cryptopulse/internal/reportlog"
	"cryptopulse/internal/store"
	"cryptopulse/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem initializes the logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// compressOldLogs compresses old report log files if retention is configured
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("PULSE_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := reportlog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

// initializeStories builds the story provider pipeline with observability
func initializeStories(ctx context.Context, cfg *store.Config) interfaces.StoryProvider {
	client := news.NewAlgoliaClient(cfg.News.Sources, cfg.News.Keywords)

	svcCfg := news.DefaultServiceConfig()
	svcCfg.CacheDuration = time.Duration(cfg.News.CacheMinutes) * time.Minute
	svcCfg.ScrapeFallback = cfg.News.ScrapeFallback

	svc := news.NewService(client, svcCfg)

	if cfg.News.ScrapeFallback {
		logger.Info(ctx, "Publisher scrape fallback enabled")
	}

	// Wrap with observability middleware
	return newsobs.Wrap(svc)
}

// initializePrices builds the market data provider with observability
func initializePrices(ctx context.Context) interfaces.PriceProvider {
	client := market.NewBinanceClient(os.Getenv("BINANCE_BASE_URL"))
	logger.Info(ctx, "Market data provider initialized")

	// Wrap with observability middleware
	return marketobs.Wrap(client)
}

// initializeEngine builds the analysis engine with observability
func initializeEngine(cfg *store.Config, stories interfaces.StoryProvider, prices interfaces.PriceProvider) interfaces.Engine {
	eng := engine.New(cfg, stories, prices)

	// Wrap with observability middleware
	return engineobs.Wrap(eng)
}
