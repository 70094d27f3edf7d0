package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryptopulse/internal/digest"
	"cryptopulse/internal/logger"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	must(initializeSystem())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	must(err)

	compressOldLogs(ctx)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	stories := initializeStories(ctx, cfg)
	prices := initializePrices(ctx)
	eng := initializeEngine(cfg, stories, prices)

	tick := time.NewTicker(time.Duration(cfg.PollSeconds) * time.Second)
	defer tick.Stop()
	digestTick := time.NewTicker(60 * time.Second)
	defer digestTick.Stop()

	logger.Info(ctx, "Pulse started",
		"assets", len(cfg.Assets),
		"timeframe", cfg.Timeframe,
		"poll_seconds", cfg.PollSeconds)

	for {
		select {
		case <-tick.C:
			for _, asset := range cfg.Assets {
				report, err := eng.Step(ctx, asset)
				if err != nil {
					logger.ErrorWithErr(ctx, "Step failed", err, "asset", asset.ID)
					continue
				}
				if report != nil {
					b, _ := json.Marshal(report)
					fmt.Println(string(b))
				}
			}
		case <-digestTick.C:
			if ok, _ := digest.ShouldRunNow(); ok {
				if p, err := digest.SummarizeToday(); err == nil && p != "" {
					logger.Info(ctx, "Daily digest written", "path", p)
				}
			}
		case <-sigc:
			logger.Info(ctx, "Shutting down")
			if p, err := digest.SummarizeToday(); err == nil && p != "" {
				logger.Info(ctx, "Daily digest written", "path", p)
			}
			return
		case <-ctx.Done():
			return
		}
	}
}
