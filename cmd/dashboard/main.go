package main

import (
	"VirtualCard/internal/config"
	"VirtualCard/internal/handlers"
	"VirtualCard/internal/media"
	"VirtualCard/internal/middleware"
	"VirtualCard/internal/repo"
	"VirtualCard/internal/service"
	"net/http"

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

	messageService := service.NewMessageService(repo.NewMessageRepository(gormDB))
	inviteService := service.NewInviteLinkService(repo.NewInviteRepository(gormDB))
	coverService := service.NewCoverService(repo.NewCoverRepository(gormDB), images)
	settingsService := service.NewSettingsService(repo.NewSettingsRepository(gormDB))

	h := handlers.NewDashboardHandler(messageService, inviteService, coverService, settingsService, sugar, cfg)

	sugar.Infow("Starting dashboard service",
		"addr", cfg.DashboardAddr,
	)

	if err := http.ListenAndServe(cfg.DashboardAddr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
