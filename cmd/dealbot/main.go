package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lmittmann/tint"

	"dealbot/internal/config"
	"dealbot/internal/notify"
	"dealbot/internal/scheduler"
	"dealbot/internal/storage"
	"dealbot/internal/storefront"
	"dealbot/internal/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	cache := storage.OpenJSONFile(cfg.PostedDealsFile, log)
	if cfg.ResetCacheOnStartup {
		// Reset clears the in-memory cache even when the rewrite fails,
		// so a save error is not fatal.
		if err := cache.Reset(); err != nil {
			log.Error("reset deal cache", "path", cfg.PostedDealsFile, "error", err)
		} else {
			log.Info("deal cache reset on startup")
		}
	}

	httpClient := http.DefaultClient

	stores := []scheduler.StoreClient{
		storefront.NewSteam(httpClient, log),
		storefront.NewEpic(httpClient, log),
	}
	summarizer := summary.New(httpClient, cfg.OpenAIAPIKey, log)
	sender := notify.NewWebhook(httpClient, cfg.WebhookURL, log)

	sched := scheduler.New(stores, cache, summarizer, sender, log)
	sched.SetInterval(cfg.CheckInterval())
	sched.SetResetInterval(cfg.CacheResetInterval())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting deal bot",
		"interval_hours", cfg.CheckIntervalHours,
		"cache", cfg.PostedDealsFile,
		"ai_summaries", cfg.OpenAIAPIKey != "")

	sched.Run(ctx)

	log.Info("deal bot stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: lvl}))
}
