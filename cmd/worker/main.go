package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Mansoorkhan799/latex-studio-backend/config"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/bootstrap"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/logger"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/versions/repository"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/versions/service"
)

// The worker prunes stale auto-save versions so the history of every
// document stays dominated by deliberate saves.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", true)
		logger.Fatal("load config", logger.Err(err))
	}

	logger.Init(cfg.App.LogLevel, cfg.App.Environment != "production")

	rdb, err := bootstrap.OpenRedis(context.Background(), cfg.Redis)
	if err != nil {
		logger.Fatal("open redis", logger.Err(err))
	}
	defer rdb.Close()

	history := service.NewHistoryService(repository.NewVersionRepository(rdb))
	retention := time.Duration(cfg.App.AutoSaveRetentionHours) * time.Hour

	c := cron.New()
	_, err = c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := history.PruneStaleAutoSaves(ctx, retention); err != nil {
			logger.Error("prune auto-saves", logger.Err(err))
			return
		}
		logger.Info("pruned stale auto-saves")
	})
	if err != nil {
		logger.Fatal("schedule prune job", logger.Err(err))
	}

	c.Start()
	logger.Info("worker started", logger.String("retention", retention.String()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-c.Stop().Done()
	logger.Info("worker stopped")
}
