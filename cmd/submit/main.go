package main

import (
	"VirtualCard/internal/config"
	"VirtualCard/internal/handlers"
	"VirtualCard/internal/media"
	"VirtualCard/internal/middleware"
	"VirtualCard/internal/repo"
	"VirtualCard/internal/service"
	"net/http"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	middleware.SetLogger(sugar)
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	images, err := media.NewImageProcessor(cfg.MediaPath)
	if err != nil {
		sugar.Fatalw("failed to initialize media storage", "error", err)
	}
	videos, err := media.NewVideoProcessor(cfg.MediaPath, cfg.FFmpegPath, time.Duration(cfg.FFmpegTimeoutSec)*time.Second)
	if err != nil {
		sugar.Fatalw("failed to initialize media storage", "error", err)
	}

	invites := repo.NewInviteRepository(gormDB)
	messages := repo.NewMessageRepository(gormDB)
	settings := repo.NewSettingsRepository(gormDB)

	submissionService := service.NewSubmissionService(invites, messages, images, videos)
	settingsService := service.NewSettingsService(settings)

	h := handlers.NewSubmitHandler(submissionService, settingsService, sugar, cfg)

	sugar.Infow("Starting submit service",
		"addr", cfg.SubmitAddr,
		"media", cfg.MediaPath,
	)

	if err := http.ListenAndServe(cfg.SubmitAddr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
