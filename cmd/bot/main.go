package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"PoolSentinel/internal/collector"
	"PoolSentinel/internal/config"
	"PoolSentinel/internal/logger"
	"PoolSentinel/internal/notifier"
	"PoolSentinel/internal/recorder"
	"PoolSentinel/internal/scheduler"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		boot, _ := logger.New("info", "console")
		boot.Fatal("load config", zap.Error(err))
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		log.Fatal("config validation", zap.Error(err))
	}
	log.Info("PoolSentinel starting", zap.String("pairs_file", cfg.PairsFile))

	fetcher := collector.NewGeckoFetcher(cfg.DataSource.BaseURL, cfg.Proxy, cfg.Timeout())
	log.Info("data source", zap.String("name", fetcher.Name()))

	// Alert sink
	var sender notifier.Sender
	if cfg.TelegramEnabled() {
		sender = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	} else {
		log.Warn("telegram credentials not set, alerts are logged only")
		sender = &notifier.LogNotifier{Log: log}
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn("init sqlite recorder failed, using noop", zap.Error(err))
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(
		scheduler.FileSource(cfg.PairsFile),
		fetcher,
		sender,
		rec,
		log,
		scheduler.Options{
			PairPause:  cfg.PairPause(),
			CyclePause: cfg.CyclePause(),
			Digest:     cfg.DigestSchedule(),
		},
	)

	log.Info("PoolSentinel is running. Press Ctrl+C to stop.")
	if err := sched.Run(ctx); err != nil {
		log.Error("polling loop", zap.Error(err))
	}
	log.Info("Bot stopped.")
}
