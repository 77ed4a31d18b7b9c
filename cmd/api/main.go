package main

import (
	"context"
	"time"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/Mansoorkhan799/latex-studio-backend/config"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/auth"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/bootstrap"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", true)
		logger.Fatal("load config", logger.Err(err))
	}

	logger.Init(cfg.App.LogLevel, cfg.App.Environment != "production")
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:       cfg.Database.DSN,
		ConnectTO: 5 * time.Second,
		PingTO:    2 * time.Second,
	})
	if err != nil {
		logger.Fatal("open database", logger.Err(err))
	}
	defer db.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("open redis", logger.Err(err))
	}
	defer rdb.Close()

	var authClient *fbauth.Client
	if cfg.Firebase.CredentialsPath != "" {
		authClient, err = auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			logger.Fatal("init firebase", logger.Err(err))
		}
	} else {
		logger.Warn("firebase credentials not configured, using development auth")
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "latex-studio-backend",
		Version:     cfg.App.Version,
		CompilerURL: cfg.Compiler.BaseURL,
		DB:          db,
		Redis:       rdb,
		AuthClient:  authClient,
	})

	logger.Info("listening", logger.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", logger.Err(err))
	}
}
