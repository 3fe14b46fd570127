package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	migrationapp "github.com/storesync/migrator/internal/application/migration"
	"github.com/storesync/migrator/internal/infrastructure/config"
	"github.com/storesync/migrator/internal/infrastructure/logger"
	"github.com/storesync/migrator/internal/infrastructure/notify"
	"github.com/storesync/migrator/internal/infrastructure/runlog"
	"github.com/storesync/migrator/internal/infrastructure/scheduler"
	"github.com/storesync/migrator/internal/infrastructure/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting catalog migrator",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	source, err := store.NewClient(&store.Config{
		StoreHash:      cfg.Source.StoreHash,
		AccessToken:    cfg.Source.AccessToken,
		APIBaseURL:     cfg.Source.APIBaseURL,
		TimeoutSeconds: int(cfg.Source.Timeout.Seconds()),
	})
	if err != nil {
		log.Fatal("Failed to configure source store", zap.Error(err))
	}

	destination, err := store.NewClient(&store.Config{
		StoreHash:      cfg.Destination.StoreHash,
		AccessToken:    cfg.Destination.AccessToken,
		APIBaseURL:     cfg.Destination.APIBaseURL,
		TimeoutSeconds: int(cfg.Destination.Timeout.Seconds()),
	})
	if err != nil {
		log.Fatal("Failed to configure destination store", zap.Error(err))
	}

	mailer, err := notify.NewMailer(&notify.Config{
		APIBaseURL:     cfg.Mail.APIBaseURL,
		APIKey:         cfg.Mail.APIKey,
		From:           cfg.Mail.From,
		To:             cfg.Mail.To,
		TimeoutSeconds: int(cfg.Mail.Timeout.Seconds()),
	})
	if err != nil {
		log.Fatal("Failed to configure mail dispatch", zap.Error(err))
	}

	sink, err := runlog.NewFileSink(cfg.RunLog.Path)
	if err != nil {
		log.Fatal("Failed to open run log file", zap.Error(err))
	}
	defer sink.Close()

	service := migrationapp.NewService(source, destination, mailer, sink, log)

	trigger := scheduler.NewDailyTrigger(scheduler.Config{
		UTCHour:       cfg.Scheduler.UTCHour,
		UTCMinute:     cfg.Scheduler.UTCMinute,
		CheckInterval: cfg.Scheduler.CheckInterval,
		RunOnStart:    cfg.Scheduler.RunOnStart,
	}, service, log)

	ctx := context.Background()
	if err := trigger.Start(ctx); err != nil {
		log.Fatal("Failed to start daily trigger", zap.Error(err))
	}

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	stopCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := trigger.Stop(stopCtx); err != nil {
		log.Error("Trigger shutdown timed out", zap.Error(err))
	}
}
